package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gatherly-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Activity{},
		&models.ActivityAttendee{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Prevent duplicate attendance
	if err := db.Exec("ALTER TABLE activity_attendees ADD CONSTRAINT uk_attendees_activity_user UNIQUE (activity_id, user_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for activity_attendees: %v\n", err)
	}

	// At most one host per activity
	if err := db.Exec("CREATE UNIQUE INDEX uk_attendees_single_host ON activity_attendees(activity_id, (CASE WHEN is_host THEN 1 ELSE NULL END))").Error; err != nil {
		fmt.Printf("Warning: Could not add single-host index for activity_attendees: %v\n", err)
	}

	return nil
}

// SeedData populates demo users and activities for development
func SeedData(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil // Already seeded
	}

	password, err := bcrypt.GenerateFromPassword([]byte("Pa$$w0rd"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	bob := models.User{
		ID:          uuid.New().String(),
		Username:    "bob",
		DisplayName: "Bob",
		Email:       "bob@test.com",
		Password:    string(password),
	}
	tom := models.User{
		ID:          uuid.New().String(),
		Username:    "tom",
		DisplayName: "Tom",
		Email:       "tom@test.com",
		Password:    string(password),
	}
	jane := models.User{
		ID:          uuid.New().String(),
		Username:    "jane",
		DisplayName: "Jane",
		Email:       "jane@test.com",
		Password:    string(password),
	}

	for _, u := range []models.User{bob, tom, jane} {
		if err := db.Create(&u).Error; err != nil {
			return err
		}
	}

	now := time.Now()
	seeds := []struct {
		host     models.User
		activity models.Activity
		guests   []models.User
	}{
		{
			host: bob,
			activity: models.Activity{
				ID:          uuid.New().String(),
				Title:       "Future Activity 1",
				Description: "Activity one month in the future",
				Category:    "music",
				Date:        now.AddDate(0, 1, 0),
				City:        "London",
				Venue:       "O2 Arena",
				Latitude:    51.5025,
				Longitude:   0.0031,
			},
			guests: []models.User{tom},
		},
		{
			host: tom,
			activity: models.Activity{
				ID:          uuid.New().String(),
				Title:       "Future Activity 2",
				Description: "Activity two months in the future",
				Category:    "food",
				Date:        now.AddDate(0, 2, 0),
				City:        "London",
				Venue:       "Covent Garden",
				Latitude:    51.5117,
				Longitude:   -0.1240,
			},
			guests: []models.User{bob, jane},
		},
		{
			host: jane,
			activity: models.Activity{
				ID:          uuid.New().String(),
				Title:       "Past Activity 1",
				Description: "Activity two months ago",
				Category:    "drinks",
				Date:        now.AddDate(0, -2, 0),
				City:        "London",
				Venue:       "Pub",
				Latitude:    51.5118,
				Longitude:   -0.0902,
			},
		},
	}

	for _, seed := range seeds {
		if err := db.Create(&seed.activity).Error; err != nil {
			return err
		}

		host := models.ActivityAttendee{
			ActivityID: seed.activity.ID,
			UserID:     seed.host.ID,
			Username:   seed.host.Username,
			IsHost:     true,
			DateJoined: now,
		}
		if err := db.Create(&host).Error; err != nil {
			return err
		}

		for _, guest := range seed.guests {
			link := models.ActivityAttendee{
				ActivityID: seed.activity.ID,
				UserID:     guest.ID,
				Username:   guest.Username,
				DateJoined: now,
			}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

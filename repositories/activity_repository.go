package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gatherly-api/models"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
	ErrNoHost           = errors.New("activity has no host")
	ErrAlreadyAttending = errors.New("already attending this activity")
	ErrNotAttending     = errors.New("not attending this activity")
)

type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// List returns upcoming-first activities ordered by date ascending.
// An empty category returns everything.
func (r *ActivityRepository) List(ctx context.Context, category string) ([]models.Activity, error) {
	var activities []models.Activity

	query := r.db.WithContext(ctx).Preload("Attendees")
	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Order("date ASC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}

func (r *ActivityRepository) GetByID(ctx context.Context, id string) (*models.Activity, error) {
	var activity models.Activity
	err := r.db.WithContext(ctx).Preload("Attendees").First(&activity, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrActivityNotFound
		}
		return nil, err
	}
	return &activity, nil
}

// Create persists the activity and seeds its host attendee link in one
// transaction. An activity must never exist without a host.
func (r *ActivityRepository) Create(ctx context.Context, activity *models.Activity, host *models.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(activity).Error; err != nil {
			return err
		}

		link := models.ActivityAttendee{
			ActivityID: activity.ID,
			UserID:     host.ID,
			Username:   host.Username,
			IsHost:     true,
			DateJoined: time.Now(),
		}
		return tx.Create(&link).Error
	})
}

func (r *ActivityRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrActivityNotFound
	}
	return nil
}

// Delete removes the activity and all of its attendee links.
func (r *ActivityRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", id).Delete(&models.ActivityAttendee{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Activity{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrActivityNotFound
		}
		return nil
	})
}

// HostUsername resolves the username recorded as host of the activity.
// Returns ErrActivityNotFound when the activity does not exist and
// ErrNoHost when it exists without a host link.
func (r *ActivityRepository) HostUsername(ctx context.Context, activityID string) (string, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Where("id = ?", activityID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", ErrActivityNotFound
	}

	var link models.ActivityAttendee
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND is_host = ?", activityID, true).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoHost
		}
		return "", err
	}
	return link.Username, nil
}

func (r *ActivityRepository) AddAttendee(ctx context.Context, activityID string, user *models.User) error {
	var existing models.ActivityAttendee
	err := r.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, user.ID).
		First(&existing).Error
	if err == nil {
		return ErrAlreadyAttending
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	link := models.ActivityAttendee{
		ActivityID: activityID,
		UserID:     user.ID,
		Username:   user.Username,
		IsHost:     false,
		DateJoined: time.Now(),
	}
	return r.db.WithContext(ctx).Create(&link).Error
}

// RemoveAttendee withdraws a non-host attendee. Host links are only ever
// removed through Delete, so the host row is excluded here.
func (r *ActivityRepository) RemoveAttendee(ctx context.Context, activityID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ? AND is_host = ?", activityID, userID, false).
		Delete(&models.ActivityAttendee{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotAttending
	}
	return nil
}

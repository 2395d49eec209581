package models

import (
	"time"
)

type Activity struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Category    string    `json:"category" gorm:"not null;size:50"`
	Date        time.Time `json:"date" gorm:"not null;index"`
	City        string    `json:"city" gorm:"size:255"`
	Venue       string    `json:"venue" gorm:"size:255"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Attendees []ActivityAttendee `json:"attendees" gorm:"foreignKey:ActivityID"`
}

// ActivityAttendee links a user to an activity. Exactly one attendee per
// activity carries IsHost; that user is the only one allowed to mutate it.
type ActivityAttendee struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ActivityID string    `json:"activity_id" gorm:"not null;size:191;index"`
	UserID     string    `json:"user_id" gorm:"not null;size:191"`
	Username   string    `json:"username" gorm:"not null;size:50"`
	IsHost     bool      `json:"is_host" gorm:"default:false"`
	DateJoined time.Time `json:"date_joined"`

	Activity Activity `json:"-" gorm:"foreignKey:ActivityID"`
	User     User     `json:"-" gorm:"foreignKey:UserID"`
}

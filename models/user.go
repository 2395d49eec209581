package models

import (
	"time"
)

type User struct {
	ID          string    `json:"id" gorm:"primaryKey;size:191"`
	Username    string    `json:"username" gorm:"uniqueIndex;not null;size:50"`
	DisplayName string    `json:"display_name" gorm:"not null;size:255"`
	Email       string    `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password    string    `json:"-" gorm:"not null;size:255"`
	Bio         *string   `json:"bio" gorm:"size:500"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Attendances []ActivityAttendee `json:"-" gorm:"foreignKey:UserID"`
}

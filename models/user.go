package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered member. Passwords are stored as bcrypt hashes only.
// Counters start at zero and are mutated exclusively inside the check-in and
// merit transactions.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"size:64;uniqueIndex;not null" json:"username"`
	PasswordHash  string         `gorm:"size:255" json:"-"`
	Age           *int           `json:"age"`
	AvatarURL     string         `gorm:"size:512" json:"avatar_url"`
	Merit         int            `gorm:"default:0" json:"merit"`
	CurrentStreak int            `gorm:"default:0" json:"current_streak"`
	MaxStreak     int            `gorm:"default:0" json:"max_streak"`
	TotalTakeoffs int            `gorm:"default:0" json:"total_takeoffs"`
	StartDate     time.Time      `json:"start_date"`
	LastCheckIn   *time.Time     `json:"last_check_in"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Posts         []Post         `json:"-"`
	DailyRecords  []DailyRecord  `json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.StartDate.IsZero() {
		u.StartDate = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

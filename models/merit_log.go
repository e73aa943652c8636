package models

import "time"

// MeritLog records one wooden-fish tap batch. The client accumulates taps
// and flushes them as a single count.
type MeritLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Count     int       `gorm:"not null" json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

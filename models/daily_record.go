package models

import "time"

// Record status values. A user has at most one PERSIST record per calendar
// day; TAKEOFF records are unlimited.
const (
	StatusPersist = "PERSIST"
	StatusTakeoff = "TAKEOFF"
)

// DailyRecord stores one row per check-in action. Rows are append-only and
// never updated or deleted.
type DailyRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Date      time.Time `gorm:"index;not null" json:"date"`
	Status    string    `gorm:"size:16;not null" json:"status"`
	Duration  *int      `json:"duration"` // minutes, TAKEOFF only
	Method    string    `gorm:"size:32" json:"method"`
	Note      string    `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

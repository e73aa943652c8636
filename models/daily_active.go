package models

import "time"

// DailyActive stores one row per user per day, upserted by the activity
// middleware. It feeds the public daily-active count.
type DailyActive struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"index:idx_daily_active_date_user,unique;type:date;not null" json:"date"`
	UserID    uint      `gorm:"index:idx_daily_active_date_user,unique;not null" json:"user_id"`
	Hits      int64     `gorm:"not null;default:0" json:"hits"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

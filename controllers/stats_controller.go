package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jiefei/models"
	"jiefei/services"
	"jiefei/utils"
)

// StatsController provides public aggregate statistics.
type StatsController struct {
	db       *gorm.DB
	location *time.Location
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, location *time.Location) *StatsController {
	return &StatsController{db: db, location: location}
}

// GetStats returns aggregate counts for the landing page.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var postCount int64
	var recordCount int64
	var dailyActive int64

	// Fall back to 0 instead of failing the whole endpoint.
	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}
	if err := s.db.Model(&models.DailyRecord{}).Count(&recordCount).Error; err != nil {
		recordCount = 0
	}

	today := services.DateAtLocation(time.Now(), s.location)
	if err := s.db.Model(&models.DailyActive{}).
		Where("date = ?", today).
		Count(&dailyActive).Error; err != nil {
		dailyActive = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":         userCount,
		"post_count":         postCount,
		"record_count":       recordCount,
		"daily_active_count": dailyActive,
	})
}

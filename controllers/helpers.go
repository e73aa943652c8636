package controllers

import (
	"github.com/gin-gonic/gin"

	"jiefei/middleware"
	"jiefei/models"
)

func getUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}

// publicUser strips credentials and soft-delete metadata from a user row.
func publicUser(user models.User) gin.H {
	return gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"age":            user.Age,
		"avatar_url":     user.AvatarURL,
		"merit":          user.Merit,
		"current_streak": user.CurrentStreak,
		"max_streak":     user.MaxStreak,
		"total_takeoffs": user.TotalTakeoffs,
		"start_date":     user.StartDate,
		"last_check_in":  user.LastCheckIn,
		"created_at":     user.CreatedAt,
	}
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jiefei/models"
	"jiefei/services"
	"jiefei/utils"
)

const rankingCacheKey = "cache:ranking:boards"

// RankingController serves the three leaderboards.
type RankingController struct {
	db *gorm.DB
}

// NewRankingController creates a new controller instance.
func NewRankingController(db *gorm.DB) *RankingController {
	return &RankingController{db: db}
}

type rankEntry struct {
	ID            uint   `json:"id"`
	Username      string `json:"username"`
	AvatarURL     string `json:"avatar_url"`
	Merit         int    `json:"merit,omitempty"`
	CurrentStreak int    `json:"current_streak,omitempty"`
	TotalTakeoffs int    `json:"total_takeoffs"`
	LevelTitle    string `json:"level_title"`
}

// GetRanking returns the top 50 users by streak, merit and takeoffs. The
// response is identical for every caller, so it sits in redis for a minute.
func (r *RankingController) GetRanking(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(rankingCacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	streakRank, err := r.topUsers("current_streak DESC")
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load ranking")
		return
	}
	meritRank, err := r.topUsers("merit DESC")
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load ranking")
		return
	}
	takeoffRank, err := r.topUsers("total_takeoffs DESC")
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to load ranking")
		return
	}

	data := gin.H{
		"streakRank":  streakRank,
		"meritRank":   meritRank,
		"takeoffRank": takeoffRank,
	}
	utils.CacheSetJSON(rankingCacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: data}, time.Minute)
	utils.Success(ctx, data)
}

func (r *RankingController) topUsers(order string) ([]rankEntry, error) {
	var users []models.User
	if err := r.db.Order(order).Limit(50).Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]rankEntry, 0, len(users))
	for _, user := range users {
		entries = append(entries, rankEntry{
			ID:            user.ID,
			Username:      user.Username,
			AvatarURL:     user.AvatarURL,
			Merit:         user.Merit,
			CurrentStreak: user.CurrentStreak,
			TotalTakeoffs: user.TotalTakeoffs,
			LevelTitle:    services.LevelFor(user.TotalTakeoffs).Title,
		})
	}
	return entries, nil
}

package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"jiefei/middleware"
	"jiefei/models"
	"jiefei/services"
	"jiefei/utils"
)

// newTestRouter wires the API against an in-memory database, mirroring the
// production route layout without the logging and CORS layers.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.DailyRecord{},
		&models.Post{},
		&models.PostLike{},
		&models.MeritLog{},
		&models.DailyActive{},
	))

	checkinService := services.NewCheckinService(db, time.UTC, 10, 1)
	meritService := services.NewMeritService(db)

	authController := NewAuthController(db)
	checkinController := NewCheckinController(checkinService)
	communityController := NewCommunityController(db)
	profileController := NewProfileController(db, checkinService)
	meritController := NewMeritController(meritService)
	rankingController := NewRankingController(db)
	statsController := NewStatsController(db, time.UTC)

	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/auth/register", authController.Register)
	api.POST("/auth/login", authController.Login)
	api.GET("/auth/me", middleware.AuthRequired(), authController.Me)
	api.GET("/stats", statsController.GetStats)
	api.GET("/ranking", rankingController.GetRanking)
	api.GET("/community/posts", middleware.AuthOptional(), communityController.ListPosts)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/checkin", checkinController.SubmitAction)
	protected.GET("/user/stats", profileController.GetStats)
	protected.GET("/user/calendar", profileController.GetCalendar)
	protected.GET("/user/profile", profileController.GetProfile)
	protected.POST("/user/woodfish", meritController.WoodenFish)
	protected.POST("/community/posts", communityController.CreatePost)
	protected.POST("/community/like", communityController.ToggleLike)

	return r, db
}

func newTestUserToken(t *testing.T, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{Username: username, PasswordHash: hash}
	require.NoError(t, db.Create(user).Error)
	token, err := utils.GenerateToken(user.ID, user.Username, time.Hour)
	require.NoError(t, err)
	return user, token
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return w, env
}

func decodeData(t *testing.T, env envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out))
}

package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jiefei/config"
	"jiefei/controllers"
	"jiefei/middleware"
	"jiefei/services"
	"jiefei/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())

	// Replace the default console logger with a file-based zap logger.
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	location := cfg.Location()
	// Record daily active users once the handler chain resolved an identity.
	r.Use(middleware.ActivityRecorder(db, location))

	checkinService := services.NewCheckinService(db, location, cfg.PersistMeritReward, cfg.TakeoffMeritReward)
	meritService := services.NewMeritService(db)

	authController := controllers.NewAuthController(db)
	checkinController := controllers.NewCheckinController(checkinService)
	communityController := controllers.NewCommunityController(db)
	rankingController := controllers.NewRankingController(db)
	profileController := controllers.NewProfileController(db, checkinService)
	meritController := controllers.NewMeritController(meritService)
	statsController := controllers.NewStatsController(db, location)

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public endpoints
	api.GET("/stats", statsController.GetStats)
	api.GET("/ranking", rankingController.GetRanking)
	api.GET("/community/posts", middleware.AuthOptional(), communityController.ListPosts)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/checkin", checkinController.SubmitAction)
	protected.GET("/user/stats", profileController.GetStats)
	protected.GET("/user/calendar", profileController.GetCalendar)
	protected.GET("/user/profile", profileController.GetProfile)
	protected.POST("/user/woodfish", meritController.WoodenFish)
	protected.POST("/community/posts", communityController.CreatePost)
	protected.POST("/community/like", communityController.ToggleLike)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}

package main

import (
	"jiefei/config"
	"jiefei/models"
	"jiefei/routes"
	"jiefei/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.DailyRecord{},
		&models.Post{},
		&models.PostLike{},
		&models.MeritLog{},
		&models.DailyActive{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

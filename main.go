package main

import (
	"time"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/routes"
	"github.com/harvestra/krishikhel/stores"
	"github.com/harvestra/krishikhel/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.PointEvent{},
		&models.StreakRecord{},
		&models.ModuleProgress{},
		&models.Quiz{},
		&models.QuizAttempt{},
		&models.Reward{},
		&models.RewardRedemption{},
		&models.Mission{},
		&models.MissionSubmission{},
		&models.CommunityPost{},
		&models.Achievement{},
		&models.UploadedFile{},
	)

	if err := stores.SeedCatalogs(db); err != nil {
		utils.Sugar.Fatalf("failed to seed catalogs: %v", err)
	}

	r := routes.SetupRouter(db)

	// Best-effort reclamation of unclaimed proof uploads
	utils.StartUploadCleaner(5 * time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

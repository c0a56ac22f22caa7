package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/controllers"
	"github.com/harvestra/krishikhel/middleware"
	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/stores"
	"github.com/harvestra/krishikhel/utils"
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
	// Replace default console logger with file-based zap logger
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
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(middleware.Metrics())

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	pointsStore := stores.NewPointsStore(db)
	streakStore := stores.NewStreakStore(db)
	progressStore := stores.NewProgressStore(db)
	quizStore := stores.NewQuizStore(db)
	rewardsStore := stores.NewRewardsStore(db)
	missionsStore := stores.NewMissionsStore(db)
	communityStore := stores.NewCommunityStore(db)
	achievementsStore := stores.NewAchievementsStore(db)

	ledger := services.NewLedger(pointsStore)
	streaks := services.NewStreaks(streakStore)
	quizzes := services.NewQuizzes(quizStore, progressStore, achievementsStore, ledger, streaks,
		cfg.QuizBasePoints, cfg.QuizPassingThreshold)
	rewards := services.NewRewards(rewardsStore, ledger, progressStore)
	missions := services.NewMissions(missionsStore)
	community := services.NewCommunity(communityStore, ledger)
	stats := services.NewStats(ledger, streaks, progressStore, achievementsStore)

	pointsController := controllers.NewPointsController(ledger)
	streakController := controllers.NewStreakController(streaks)
	quizController := controllers.NewQuizController(quizzes)
	rewardsController := controllers.NewRewardsController(rewards)
	missionsController := controllers.NewMissionsController(missions)
	communityController := controllers.NewCommunityController(community)
	statsController := controllers.NewStatsController(stats, ledger)
	uploadController := controllers.NewUploadController(db)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware())

	// Public reads
	api.GET("/rewards/catalog", rewardsController.Catalog)
	api.GET("/missions", missionsController.Catalog)
	api.GET("/leaderboard", statsController.Leaderboard)
	api.GET("/community/posts", communityController.ListPosts)
	api.GET("/community/posts/:id", communityController.GetPost)

	auth := api.Group("")
	auth.Use(middleware.AuthRequired())

	auth.POST("/points", pointsController.AddPoints)
	auth.GET("/points/total", pointsController.Total)
	auth.GET("/points/history", pointsController.History)

	auth.POST("/streak", streakController.Record)
	auth.GET("/streak", streakController.Get)

	auth.POST("/quiz/submit", quizController.Submit)
	auth.GET("/quiz/attempts", quizController.Attempts)
	auth.GET("/progress", quizController.Progress)

	auth.POST("/rewards/redeem", rewardsController.Redeem)
	auth.GET("/rewards/redemptions", rewardsController.Redemptions)
	auth.PATCH("/rewards/redemptions/:id/status", rewardsController.UpdateStatus)

	auth.POST("/missions/submit", missionsController.Submit)
	auth.GET("/missions/submissions", missionsController.Submissions)
	auth.POST("/missions/submissions/:id/verify", missionsController.Verify)

	auth.POST("/community/posts", communityController.CreatePost)
	auth.PUT("/community/posts/:id", communityController.UpdatePost)
	auth.DELETE("/community/posts/:id", communityController.DeletePost)
	auth.POST("/community/posts/:id/actions", communityController.Action)

	auth.GET("/users/stats", statsController.UserStats)
	auth.GET("/users/achievements", statsController.Achievements)

	auth.POST("/upload", uploadController.Upload)

	return r
}

package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

const leaderboardCacheKey = "leaderboard:top"

// StatsController serves aggregate profiles, achievements, and the
// leaderboard.
type StatsController struct {
	stats  *services.Stats
	ledger *services.Ledger
}

func NewStatsController(stats *services.Stats, ledger *services.Ledger) *StatsController {
	return &StatsController{stats: stats, ledger: ledger}
}

// UserStats returns the caller's dashboard aggregates.
func (s *StatsController) UserStats(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	stats, err := s.stats.ForUser(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err, 50070)
		return
	}
	utils.Success(ctx, stats)
}

// Achievements lists the caller's unlocked achievements.
func (s *StatsController) Achievements(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	rows, err := s.stats.Achievements(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err, 50071)
		return
	}
	utils.Success(ctx, gin.H{"achievements": rows})
}

// Leaderboard ranks users by total points. Cached briefly in Redis and
// invalidated whenever any controller writes a point event.
func (s *StatsController) Leaderboard(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(leaderboardCacheKey); ok {
		var entries []models.LeaderboardEntry
		if err := json.Unmarshal(b, &entries); err == nil {
			utils.Success(ctx, gin.H{"leaderboard": entries})
			return
		}
	}

	entries, err := s.ledger.Leaderboard(ctx.Request.Context(), config.Get().LeaderboardSize)
	if err != nil {
		serviceError(ctx, err, 50072)
		return
	}
	utils.CacheSetJSON(leaderboardCacheKey, entries, time.Minute)
	utils.Success(ctx, gin.H{"leaderboard": entries})
}

package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

// StreakController exposes the daily activity streak.
type StreakController struct {
	streaks *services.Streaks
}

func NewStreakController(streaks *services.Streaks) *StreakController {
	return &StreakController{streaks: streaks}
}

// Record applies one activity day to the caller's streak. The date is
// optional and defaults to today.
func (s *StreakController) Record(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ActivityDate string `json:"activity_date"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.ActivityDate == "" {
		req.ActivityDate = time.Now().Format(models.DateLayout)
	}

	rec, err := s.streaks.Record(ctx.Request.Context(), userID, req.ActivityDate)
	if err != nil {
		serviceError(ctx, err, 50020)
		return
	}
	utils.Success(ctx, rec)
}

// Get returns the caller's streak record.
func (s *StreakController) Get(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	rec, err := s.streaks.Get(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err, 50021)
		return
	}
	utils.Success(ctx, rec)
}

package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

const missionsCatalogCacheKey = "missions:catalog"

// MissionsController exposes the mission catalog and the proof lifecycle.
type MissionsController struct {
	missions *services.Missions
}

func NewMissionsController(missions *services.Missions) *MissionsController {
	return &MissionsController{missions: missions}
}

// Catalog lists active missions. The catalog is seeded reference data, so
// a short Redis cache is safe.
func (m *MissionsController) Catalog(ctx *gin.Context) {
	if b, ok := utils.CacheGetBytes(missionsCatalogCacheKey); ok {
		var missions []models.Mission
		if err := json.Unmarshal(b, &missions); err == nil {
			utils.Success(ctx, gin.H{"missions": missions})
			return
		}
	}

	missions, err := m.missions.Catalog(ctx.Request.Context())
	if err != nil {
		serviceError(ctx, err, 50050)
		return
	}
	utils.CacheSetJSON(missionsCatalogCacheKey, missions, 10*time.Minute)
	utils.Success(ctx, gin.H{"missions": missions})
}

// Submit files the caller's proof for a mission.
func (m *MissionsController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		MissionID        string `json:"mission_id" binding:"required"`
		ProofDescription string `json:"proof_description" binding:"required"`
		ProofURL         string `json:"proof_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	sub, err := m.missions.Submit(ctx.Request.Context(), userID, req.MissionID,
		utils.Sanitize(req.ProofDescription), req.ProofURL)
	if err != nil {
		serviceError(ctx, err, 50051)
		return
	}
	utils.Success(ctx, sub)
}

// Submissions lists the caller's submissions.
func (m *MissionsController) Submissions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	subs, total, err := m.missions.Submissions(ctx.Request.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		serviceError(ctx, err, 50052)
		return
	}
	utils.Success(ctx, gin.H{
		"submissions": subs,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// Verify settles a pending submission. Admin only.
func (m *MissionsController) Verify(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin privileges required")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid submission id")
		return
	}
	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	sub, err := m.missions.Verify(ctx.Request.Context(), uint(id), *req.Approve)
	if err != nil {
		serviceError(ctx, err, 50053)
		return
	}
	if sub.Status == models.SubmissionVerified {
		utils.InvalidateByPrefix("leaderboard:")
	}
	utils.Success(ctx, sub)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

// PointsController exposes the points ledger.
type PointsController struct {
	ledger *services.Ledger
}

func NewPointsController(ledger *services.Ledger) *PointsController {
	return &PointsController{ledger: ledger}
}

// AddPoints records a point event. Callers may record events for
// themselves; granting to another user requires admin.
func (p *PointsController) AddPoints(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		UserID      string `json:"user_id"`
		Amount      int    `json:"amount" binding:"required"`
		Source      string `json:"source" binding:"required"`
		Description string `json:"description"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	if req.UserID == "" {
		req.UserID = userID
	}
	if req.UserID != userID && !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin privileges required")
		return
	}

	ev, err := p.ledger.AddPoints(ctx.Request.Context(), req.UserID, req.Amount, req.Source, utils.Sanitize(req.Description))
	if err != nil {
		serviceError(ctx, err, 50010)
		return
	}
	utils.InvalidateByPrefix("leaderboard:")
	utils.Success(ctx, ev)
}

// Total returns the caller's current balance.
func (p *PointsController) Total(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	total, err := p.ledger.Balance(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err, 50011)
		return
	}
	utils.Success(ctx, gin.H{"user_id": userID, "total_points": total})
}

// History returns the caller's point events, newest first.
func (p *PointsController) History(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	events, total, err := p.ledger.History(ctx.Request.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		serviceError(ctx, err, 50012)
		return
	}
	utils.Success(ctx, gin.H{
		"events":    events,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

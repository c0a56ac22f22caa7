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

const rewardsCatalogCacheKey = "rewards:catalog"

// RewardsController exposes the reward catalog and redemption flow.
type RewardsController struct {
	rewards *services.Rewards
}

func NewRewardsController(rewards *services.Rewards) *RewardsController {
	return &RewardsController{rewards: rewards}
}

// Catalog lists redeemable rewards, with optional `category` and
// `user_level` filters. Only the unfiltered listing is cached in Redis;
// the cache is dropped whenever a redemption changes stock.
func (r *RewardsController) Catalog(ctx *gin.Context) {
	category := ctx.Query("category")
	userLevel, _ := strconv.Atoi(ctx.Query("user_level"))
	unfiltered := category == "" && userLevel <= 0

	if unfiltered {
		if b, ok := utils.CacheGetBytes(rewardsCatalogCacheKey); ok {
			var rewards []models.Reward
			if err := json.Unmarshal(b, &rewards); err == nil {
				utils.Success(ctx, gin.H{"rewards": rewards})
				return
			}
		}
	}

	rewards, err := r.rewards.Catalog(ctx.Request.Context(), category, userLevel)
	if err != nil {
		serviceError(ctx, err, 50040)
		return
	}
	if unfiltered {
		utils.CacheSetJSON(rewardsCatalogCacheKey, rewards, 5*time.Minute)
	}
	utils.Success(ctx, gin.H{"rewards": rewards})
}

// Redeem spends the caller's points on a reward.
func (r *RewardsController) Redeem(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		RewardID string `json:"reward_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	red, err := r.rewards.Redeem(ctx.Request.Context(), userID, req.RewardID)
	if err != nil {
		serviceError(ctx, err, 50041)
		return
	}
	utils.InvalidateByPrefix(rewardsCatalogCacheKey)
	utils.InvalidateByPrefix("leaderboard:")
	utils.Success(ctx, red)
}

// Redemptions lists the caller's redemption history.
func (r *RewardsController) Redemptions(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	reds, total, err := r.rewards.Redemptions(ctx.Request.Context(), userID, pageSize, (page-1)*pageSize)
	if err != nil {
		serviceError(ctx, err, 50042)
		return
	}
	utils.Success(ctx, gin.H{
		"redemptions": reds,
		"total":       total,
		"page":        page,
		"page_size":   pageSize,
	})
}

// UpdateStatus moves a redemption through fulfillment. Admin only.
func (r *RewardsController) UpdateStatus(ctx *gin.Context) {
	if !isAdmin(ctx) {
		utils.Error(ctx, http.StatusForbidden, 40310, "admin privileges required")
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid redemption id")
		return
	}
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	red, err := r.rewards.UpdateStatus(ctx.Request.Context(), uint(id), req.Status)
	if err != nil {
		serviceError(ctx, err, 50043)
		return
	}
	utils.Success(ctx, red)
}

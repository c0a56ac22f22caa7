package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/config"
	"github.com/harvestra/krishikhel/middleware"
	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

func getUserID(ctx *gin.Context) (string, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, _ := value.(string)
	return id, id != ""
}

func isAdmin(ctx *gin.Context) bool {
	id, ok := getUserID(ctx)
	if !ok {
		return false
	}
	cfg := config.Get()
	for _, admin := range cfg.AdminUserIDs {
		if strings.TrimSpace(admin) == id {
			return true
		}
	}
	return false
}

func parsePagination(pageStr, sizeStr string) (int, int) {
	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
		page = p
	}
	if s, err := strconv.Atoi(sizeStr); err == nil && s > 0 && s <= 100 {
		pageSize = s
	}
	return page, pageSize
}

// serviceError maps business-rule failures to their response code. Unknown
// errors become a 500 with a generic message; details go to the log only.
func serviceError(ctx *gin.Context, err error, fallbackCode int) {
	var vErr *services.ValidationError
	var ipErr *services.InsufficientPointsError
	var lvlErr *services.LevelTooLowError

	switch {
	case errors.As(err, &vErr):
		utils.Error(ctx, http.StatusBadRequest, 40020, vErr.Reason)
	case errors.As(err, &ipErr):
		utils.Respond(ctx, http.StatusBadRequest, 40041, ipErr.Error(), gin.H{
			"required": ipErr.Required,
			"balance":  ipErr.Balance,
			"shortfall": ipErr.Shortfall(),
		})
	case errors.As(err, &lvlErr):
		utils.Respond(ctx, http.StatusForbidden, 40042, lvlErr.Error(), gin.H{
			"required_level": lvlErr.Required,
			"current_level":  lvlErr.Level,
		})
	case errors.Is(err, services.ErrRewardNotFound),
		errors.Is(err, services.ErrMissionNotFound),
		errors.Is(err, services.ErrSubmissionNotFound),
		errors.Is(err, services.ErrPostNotFound):
		utils.Error(ctx, http.StatusNotFound, 40440, err.Error())
	case errors.Is(err, services.ErrOutOfStock):
		utils.Error(ctx, http.StatusConflict, 40940, err.Error())
	case errors.Is(err, services.ErrDuplicateSubmission):
		utils.Error(ctx, http.StatusConflict, 40950, err.Error())
	case errors.Is(err, services.ErrInvalidState):
		utils.Error(ctx, http.StatusConflict, 40951, err.Error())
	default:
		utils.Sugar.Errorw("request failed", "path", ctx.FullPath(), "error", err)
		utils.Error(ctx, http.StatusInternalServerError, fallbackCode, "internal server error")
	}
}

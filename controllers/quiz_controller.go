package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

// QuizController grades quiz submissions and serves learning progress.
type QuizController struct {
	quizzes *services.Quizzes
}

func NewQuizController(quizzes *services.Quizzes) *QuizController {
	return &QuizController{quizzes: quizzes}
}

// Submit grades the caller's quiz answers and applies rewards.
func (q *QuizController) Submit(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		QuizID           string `json:"quiz_id" binding:"required"`
		ModuleID         string `json:"module_id"`
		Answers          []int  `json:"answers"`
		TimeTakenSeconds int    `json:"time_taken_seconds"`
		Score            int    `json:"score"`
		TotalQuestions   int    `json:"total_questions"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	result, err := q.quizzes.Submit(ctx.Request.Context(), userID, services.QuizSubmission{
		QuizID:           req.QuizID,
		ModuleID:         req.ModuleID,
		Answers:          req.Answers,
		TimeTakenSeconds: req.TimeTakenSeconds,
		ReportedScore:    req.Score,
		ReportedTotal:    req.TotalQuestions,
	})
	if err != nil {
		serviceError(ctx, err, 50030)
		return
	}
	if result.Passed {
		utils.InvalidateByPrefix("leaderboard:")
	}
	utils.Success(ctx, result)
}

// Attempts returns the caller's attempt history.
func (q *QuizController) Attempts(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	attempts, total, err := q.quizzes.Attempts(ctx.Request.Context(), userID, ctx.Query("module_id"), pageSize, (page-1)*pageSize)
	if err != nil {
		serviceError(ctx, err, 50031)
		return
	}
	utils.Success(ctx, gin.H{
		"attempts":  attempts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// Progress returns the caller's per-module learning progress.
func (q *QuizController) Progress(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	rows, err := q.quizzes.Progress(ctx.Request.Context(), userID)
	if err != nil {
		serviceError(ctx, err, 50032)
		return
	}
	utils.Success(ctx, gin.H{"modules": rows})
}

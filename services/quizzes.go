package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/utils"
	"gorm.io/gorm"
)

// QuizStore reads the quiz catalog and persists graded attempts.
type QuizStore interface {
	GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error)
	CreateAttempt(ctx context.Context, at *models.QuizAttempt) error
	ListAttempts(ctx context.Context, userID, moduleID string, limit, offset int) ([]models.QuizAttempt, int64, error)
}

// ProgressStore persists per-module learning progress.
type ProgressStore interface {
	UpsertProgress(ctx context.Context, userID, moduleID string, percentage int, completed bool) (*models.ModuleProgress, error)
	ListProgress(ctx context.Context, userID string) ([]models.ModuleProgress, error)
	CountCompleted(ctx context.Context, userID string) (int, error)
}

// AchievementStore records unlocked achievements, at most once per user.
type AchievementStore interface {
	Unlock(ctx context.Context, ua *models.Achievement) (bool, error)
	ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error)
	CountPassedQuizzes(ctx context.Context, userID string) (int, error)
	AverageQuizScore(ctx context.Context, userID string) (float64, error)
}

// Achievement identifiers and their one-time point grants.
const (
	AchievementQuizMaster   = "quiz_master"
	AchievementPerfectScore = "perfect_score"

	quizMasterTarget = 5
	quizMasterPoints = 100
	perfectScorePoints = 25
)

// QuizSubmission is one user's answers for a quiz.
type QuizSubmission struct {
	QuizID           string
	ModuleID         string
	Answers          []int
	TimeTakenSeconds int
	// Client-reported grade, trusted only when the quiz is not in the
	// catalog and no answer key exists to re-grade against.
	ReportedScore int
	ReportedTotal int
}

// QuizResult is the graded outcome returned to the submitter.
type QuizResult struct {
	Attempt       *models.QuizAttempt   `json:"attempt"`
	Passed        bool                  `json:"passed"`
	PointsEarned  int                   `json:"points_earned"`
	Progress      *models.ModuleProgress `json:"progress,omitempty"`
	NewAchievements []models.Achievement `json:"new_achievements,omitempty"`
}

// Quizzes grades submissions and applies their downstream effects: points,
// module progress, the daily streak, and quiz achievements.
type Quizzes struct {
	store        QuizStore
	progress     ProgressStore
	achievements AchievementStore
	ledger       *Ledger
	streaks      *Streaks
	basePoints   int
	threshold    int
}

func NewQuizzes(store QuizStore, progress ProgressStore, achievements AchievementStore, ledger *Ledger, streaks *Streaks, basePoints, threshold int) *Quizzes {
	return &Quizzes{
		store:        store,
		progress:     progress,
		achievements: achievements,
		ledger:       ledger,
		streaks:      streaks,
		basePoints:   basePoints,
		threshold:    threshold,
	}
}

// Submit grades one quiz submission. When the quiz exists in the catalog the
// server re-grades from its answer key and ignores the reported score.
func (q *Quizzes) Submit(ctx context.Context, userID string, sub QuizSubmission) (*QuizResult, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}
	if sub.QuizID == "" {
		return nil, errValidation("quiz_id is required")
	}

	score, total, threshold := sub.ReportedScore, sub.ReportedTotal, q.threshold
	quiz, err := q.store.GetQuiz(ctx, sub.QuizID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if score < 0 || score > 100 {
			return nil, errValidation("score must be between 0 and 100")
		}
	case err != nil:
		return nil, err
	default:
		key, kerr := quiz.CorrectIndices()
		if kerr != nil {
			return nil, fmt.Errorf("quiz %s has a malformed answer key: %w", quiz.ID, kerr)
		}
		score, total = GradeQuiz(sub.Answers, key)
		if quiz.PassingThreshold > 0 {
			threshold = quiz.PassingThreshold
		}
		if sub.ModuleID == "" {
			sub.ModuleID = quiz.ModuleID
		}
	}

	passed := QuizPassed(score, threshold)
	answersJSON, err := json.Marshal(sub.Answers)
	if err != nil {
		return nil, err
	}
	attempt := &models.QuizAttempt{
		UserID:           userID,
		QuizID:           sub.QuizID,
		ModuleID:         sub.ModuleID,
		Score:            score,
		TotalQuestions:   total,
		TimeTakenSeconds: sub.TimeTakenSeconds,
		Answers:          string(answersJSON),
		Passed:           passed,
	}
	if err := q.store.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	result := &QuizResult{Attempt: attempt, Passed: passed}
	if !passed {
		return result, nil
	}

	result.PointsEarned = QuizPointsEarned(q.basePoints, score, passed)
	desc := fmt.Sprintf("Passed quiz %s with %d%%", sub.QuizID, score)
	if _, err := q.ledger.AddPoints(ctx, userID, result.PointsEarned, models.SourceQuizCompletion, desc); err != nil {
		return nil, err
	}
	if sub.ModuleID != "" {
		prog, err := q.progress.UpsertProgress(ctx, userID, sub.ModuleID, 100, true)
		if err != nil {
			return nil, err
		}
		result.Progress = prog
	}

	today := time.Now().Format(models.DateLayout)
	if _, err := q.streaks.Record(ctx, userID, today); err != nil {
		utils.Sugar.Warnw("quiz streak update failed", "user_id", userID, "error", err)
	}

	unlocked, err := q.checkAchievements(ctx, userID, score)
	if err != nil {
		utils.Sugar.Warnw("quiz achievement check failed", "user_id", userID, "error", err)
	} else {
		result.NewAchievements = unlocked
	}
	return result, nil
}

func (q *Quizzes) checkAchievements(ctx context.Context, userID string, score int) ([]models.Achievement, error) {
	var unlocked []models.Achievement

	if score == 100 {
		ua, err := q.unlock(ctx, userID, AchievementPerfectScore, "Perfect Score", perfectScorePoints)
		if err != nil {
			return unlocked, err
		}
		if ua != nil {
			unlocked = append(unlocked, *ua)
		}
	}

	passed, err := q.achievements.CountPassedQuizzes(ctx, userID)
	if err != nil {
		return unlocked, err
	}
	if passed >= quizMasterTarget {
		ua, err := q.unlock(ctx, userID, AchievementQuizMaster, "Quiz Master", quizMasterPoints)
		if err != nil {
			return unlocked, err
		}
		if ua != nil {
			unlocked = append(unlocked, *ua)
		}
	}
	return unlocked, nil
}

func (q *Quizzes) unlock(ctx context.Context, userID, achievementID, title string, points int) (*models.Achievement, error) {
	ua := &models.Achievement{
		UserID:        userID,
		AchievementID: achievementID,
		Title:         title,
		PointsAwarded: points,
	}
	created, err := q.achievements.Unlock(ctx, ua)
	if err != nil || !created {
		return nil, err
	}
	if _, err := q.ledger.AddPoints(ctx, userID, points, models.SourceAchievement, "Achievement unlocked: "+title); err != nil {
		return nil, err
	}
	return ua, nil
}

// Attempts returns a user's attempt history, newest first, optionally
// filtered to one module.
func (q *Quizzes) Attempts(ctx context.Context, userID, moduleID string, limit, offset int) ([]models.QuizAttempt, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return q.store.ListAttempts(ctx, userID, moduleID, limit, offset)
}

// Progress lists the user's per-module progress records.
func (q *Quizzes) Progress(ctx context.Context, userID string) ([]models.ModuleProgress, error) {
	return q.progress.ListProgress(ctx, userID)
}

package services

import (
	"context"

	"github.com/harvestra/krishikhel/models"
)

// UserStats is the aggregate profile surface: everything the client needs
// to render a user's dashboard in one call.
type UserStats struct {
	UserID           string  `json:"user_id"`
	TotalPoints      int     `json:"total_points"`
	Level            int     `json:"level"`
	CurrentStreak    int     `json:"current_streak"`
	LongestStreak    int     `json:"longest_streak"`
	ModulesCompleted int     `json:"modules_completed"`
	QuizzesPassed    int     `json:"quizzes_passed"`
	AverageQuizScore float64 `json:"average_quiz_score"`
	AchievementCount int     `json:"achievement_count"`
}

// Stats assembles read-only aggregates from the other services' stores.
type Stats struct {
	ledger       *Ledger
	streaks      *Streaks
	progress     ProgressStore
	achievements AchievementStore
}

func NewStats(ledger *Ledger, streaks *Streaks, progress ProgressStore, achievements AchievementStore) *Stats {
	return &Stats{ledger: ledger, streaks: streaks, progress: progress, achievements: achievements}
}

// ForUser gathers one user's aggregates. Users with no activity get a
// well-formed zero profile at level 1.
func (s *Stats) ForUser(ctx context.Context, userID string) (*UserStats, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}

	total, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	streak, err := s.streaks.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.progress.CountCompleted(ctx, userID)
	if err != nil {
		return nil, err
	}
	passed, err := s.achievements.CountPassedQuizzes(ctx, userID)
	if err != nil {
		return nil, err
	}
	avgScore, err := s.achievements.AverageQuizScore(ctx, userID)
	if err != nil {
		return nil, err
	}
	achieved, err := s.achievements.ListAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserStats{
		UserID:           userID,
		TotalPoints:      total,
		Level:            UserLevel(completed),
		CurrentStreak:    streak.CurrentStreak,
		LongestStreak:    streak.LongestStreak,
		ModulesCompleted: completed,
		QuizzesPassed:    passed,
		AverageQuizScore: avgScore,
		AchievementCount: len(achieved),
	}, nil
}

// Achievements lists a user's unlocked achievements.
func (s *Stats) Achievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	return s.achievements.ListAchievements(ctx, userID)
}

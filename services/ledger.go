package services

import (
	"context"

	"github.com/harvestra/krishikhel/models"
)

// PointsStore persists the append-only point event log.
type PointsStore interface {
	CreateEvent(ctx context.Context, ev *models.PointEvent) error
	SumPoints(ctx context.Context, userID string) (int, error)
	ListEvents(ctx context.Context, userID string, limit, offset int) ([]models.PointEvent, int64, error)
	TopEarners(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

// Ledger owns the point event log. Balances are never stored; they are the
// sum of a user's events, so history and balance cannot drift apart.
type Ledger struct {
	store PointsStore
}

func NewLedger(store PointsStore) *Ledger {
	return &Ledger{store: store}
}

var validSources = map[string]bool{
	models.SourceQuizCompletion:   true,
	models.SourceDailyCheckin:     true,
	models.SourceModuleCompletion: true,
	models.SourceRewardRedemption: true,
	models.SourceMissionCompletion: true,
	models.SourceCommunityPost:    true,
	models.SourceAchievement:      true,
}

// AddPoints appends one event. Amount may be negative (redemptions) but
// never zero, and the source must be one of the known categories.
func (l *Ledger) AddPoints(ctx context.Context, userID string, amount int, source, description string) (*models.PointEvent, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}
	if amount == 0 {
		return nil, errValidation("amount must be non-zero")
	}
	if !validSources[source] {
		return nil, errValidation("unknown point source %q", source)
	}
	ev := &models.PointEvent{
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		Description: description,
	}
	if err := l.store.CreateEvent(ctx, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// Balance returns the sum of all events for a user; zero for unknown users.
func (l *Ledger) Balance(ctx context.Context, userID string) (int, error) {
	return l.store.SumPoints(ctx, userID)
}

// History returns events newest-first plus the total event count.
func (l *Ledger) History(ctx context.Context, userID string, limit, offset int) ([]models.PointEvent, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return l.store.ListEvents(ctx, userID, limit, offset)
}

// Leaderboard ranks users by total points, highest first.
func (l *Ledger) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return l.store.TopEarners(ctx, limit)
}

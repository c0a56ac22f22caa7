package services

import (
	"context"
	"errors"
	"time"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/utils"
	"gorm.io/gorm"
)

// StreakStore persists one streak record per user.
type StreakStore interface {
	GetStreak(ctx context.Context, userID string) (*models.StreakRecord, error)
	SaveStreak(ctx context.Context, rec *models.StreakRecord) error
}

// Streaks tracks consecutive-day activity per user.
type Streaks struct {
	store StreakStore
}

func NewStreaks(store StreakStore) *Streaks {
	return &Streaks{store: store}
}

// Record applies one activity date to the user's streak and returns the
// updated record. The transition depends on how the date relates to the
// last recorded day: the same day is a no-op, the next day extends the
// streak, any later day resets it to one, and an earlier (backdated) day
// is ignored with a warning so replayed events cannot corrupt the counter.
func (s *Streaks) Record(ctx context.Context, userID, activityDate string) (*models.StreakRecord, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}
	day, err := time.Parse(models.DateLayout, activityDate)
	if err != nil {
		return nil, errValidation("activity_date must be formatted as %s", models.DateLayout)
	}

	rec, err := s.store.GetStreak(ctx, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		rec = &models.StreakRecord{
			UserID:           userID,
			CurrentStreak:    1,
			LongestStreak:    1,
			LastActivityDate: activityDate,
		}
		if err := s.store.SaveStreak(ctx, rec); err != nil {
			return nil, err
		}
		return rec, nil
	case err != nil:
		return nil, err
	}

	last, err := time.Parse(models.DateLayout, rec.LastActivityDate)
	if err != nil {
		return nil, err
	}

	diff := int(day.Sub(last).Hours() / 24)
	switch {
	case diff == 0:
		return rec, nil
	case diff == 1:
		rec.CurrentStreak++
		if rec.CurrentStreak > rec.LongestStreak {
			rec.LongestStreak = rec.CurrentStreak
		}
	case diff > 1:
		rec.CurrentStreak = 1
	default:
		utils.Sugar.Warnw("ignoring backdated streak activity",
			"user_id", userID, "activity_date", activityDate, "last", rec.LastActivityDate)
		return rec, nil
	}
	rec.LastActivityDate = activityDate
	if err := s.store.SaveStreak(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Get returns the user's streak, or a zero-valued record if none exists yet.
func (s *Streaks) Get(ctx context.Context, userID string) (*models.StreakRecord, error) {
	rec, err := s.store.GetStreak(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.StreakRecord{UserID: userID}, nil
	}
	return rec, err
}

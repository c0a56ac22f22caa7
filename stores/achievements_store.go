package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harvestra/krishikhel/models"
)

// AchievementsStore is the gorm-backed achievement store.
type AchievementsStore struct {
	db *gorm.DB
}

func NewAchievementsStore(db *gorm.DB) *AchievementsStore {
	return &AchievementsStore{db: db}
}

// Unlock inserts the achievement if the user does not already hold it.
// Returns true only when this call created the row, so the caller can make
// the point grant exactly-once.
func (s *AchievementsStore) Unlock(ctx context.Context, ua *models.Achievement) (bool, error) {
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(ua)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *AchievementsStore) ListAchievements(ctx context.Context, userID string) ([]models.Achievement, error) {
	var rows []models.Achievement
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&rows).Error
	return rows, err
}

func (s *AchievementsStore) CountPassedQuizzes(ctx context.Context, userID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&n).Error
	return int(n), err
}

// AverageQuizScore averages all of a user's attempt scores; 0 with no rows.
func (s *AchievementsStore) AverageQuizScore(ctx context.Context, userID string) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Select("COALESCE(AVG(score), 0)").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	return avg, err
}

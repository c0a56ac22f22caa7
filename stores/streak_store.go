package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// StreakStore is the gorm-backed streak record store.
type StreakStore struct {
	db *gorm.DB
}

func NewStreakStore(db *gorm.DB) *StreakStore {
	return &StreakStore{db: db}
}

func (s *StreakStore) GetStreak(ctx context.Context, userID string) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *StreakStore) SaveStreak(ctx context.Context, rec *models.StreakRecord) error {
	return s.db.WithContext(ctx).Save(rec).Error
}

package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// PointsStore is the gorm-backed point event log.
type PointsStore struct {
	db *gorm.DB
}

func NewPointsStore(db *gorm.DB) *PointsStore {
	return &PointsStore{db: db}
}

func (s *PointsStore) CreateEvent(ctx context.Context, ev *models.PointEvent) error {
	return s.db.WithContext(ctx).Create(ev).Error
}

// SumPoints computes the balance straight from the ledger. COALESCE keeps
// users with no events at zero instead of NULL.
func (s *PointsStore) SumPoints(ctx context.Context, userID string) (int, error) {
	var total int
	err := s.db.WithContext(ctx).
		Model(&models.PointEvent{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

func (s *PointsStore) ListEvents(ctx context.Context, userID string, limit, offset int) ([]models.PointEvent, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.PointEvent{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var events []models.PointEvent
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

func (s *PointsStore) TopEarners(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	err := s.db.WithContext(ctx).
		Model(&models.PointEvent{}).
		Select("user_id, SUM(amount) AS total").
		Group("user_id").
		Order("total DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}

package stores

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harvestra/krishikhel/models"
)

// ProgressStore is the gorm-backed module progress store.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// UpsertProgress inserts or advances one (user, module) row. Progress is
// monotonic: the percentage never drops and completed never reverts, even
// if a later call reports less.
func (s *ProgressStore) UpsertProgress(ctx context.Context, userID, moduleID string, percentage int, completed bool) (*models.ModuleProgress, error) {
	if percentage < 0 {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}
	row := models.ModuleProgress{
		UserID:             userID,
		ModuleID:           moduleID,
		ProgressPercentage: percentage,
		Completed:          completed,
	}
	if completed {
		now := time.Now()
		row.CompletedAt = &now
	}

	assignments := map[string]any{
		"progress_percentage": gorm.Expr("GREATEST(progress_percentage, ?)", percentage),
		"completed":           gorm.Expr("completed OR ?", completed),
		"updated_at":          time.Now(),
	}
	if completed {
		assignments["completed_at"] = gorm.Expr("COALESCE(completed_at, ?)", row.CompletedAt)
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	// Re-read: on conflict the in-memory row does not reflect GREATEST/OR.
	var out models.ModuleProgress
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND module_id = ?", userID, moduleID).
		First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ProgressStore) ListProgress(ctx context.Context, userID string) ([]models.ModuleProgress, error) {
	var rows []models.ModuleProgress
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("module_id ASC").
		Find(&rows).Error
	return rows, err
}

func (s *ProgressStore) CountCompleted(ctx context.Context, userID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.ModuleProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&n).Error
	return int(n), err
}

package stores

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// MissionsStore is the gorm-backed mission catalog and submission store.
type MissionsStore struct {
	db *gorm.DB
}

func NewMissionsStore(db *gorm.DB) *MissionsStore {
	return &MissionsStore{db: db}
}

func (s *MissionsStore) GetMission(ctx context.Context, missionID string) (*models.Mission, error) {
	var mission models.Mission
	if err := s.db.WithContext(ctx).First(&mission, "id = ?", missionID).Error; err != nil {
		return nil, err
	}
	return &mission, nil
}

func (s *MissionsStore) ListMissions(ctx context.Context) ([]models.Mission, error) {
	var missions []models.Mission
	err := s.db.WithContext(ctx).Where("active = ?", true).Order("id ASC").Find(&missions).Error
	return missions, err
}

// HasOpenSubmission reports whether the user already has a pending or
// verified submission for the mission. Rejected ones do not count, so the
// user may try again after a rejection.
func (s *MissionsStore) HasOpenSubmission(ctx context.Context, userID, missionID string) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.MissionSubmission{}).
		Where("user_id = ? AND mission_id = ? AND status IN ?",
			userID, missionID, []string{models.SubmissionPending, models.SubmissionVerified}).
		Count(&n).Error
	return n > 0, err
}

func (s *MissionsStore) CreateSubmission(ctx context.Context, sub *models.MissionSubmission) error {
	return s.db.WithContext(ctx).Create(sub).Error
}

func (s *MissionsStore) GetSubmission(ctx context.Context, submissionID uint) (*models.MissionSubmission, error) {
	var sub models.MissionSubmission
	if err := s.db.WithContext(ctx).First(&sub, submissionID).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *MissionsStore) ListSubmissions(ctx context.Context, userID string, limit, offset int) ([]models.MissionSubmission, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.MissionSubmission{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var subs []models.MissionSubmission
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&subs).Error
	return subs, total, err
}

// SettleSubmission conditionally moves a pending submission to its verdict
// and, when a point event is given, writes it in the same transaction so an
// approved submission can never be verified without its grant. Returns false
// when the row was no longer pending.
func (s *MissionsStore) SettleSubmission(ctx context.Context, submissionID uint, status string, points int, verifiedAt time.Time, ev *models.PointEvent) (bool, error) {
	settled := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.MissionSubmission{}).
			Where("id = ? AND status = ?", submissionID, models.SubmissionPending).
			Updates(map[string]any{
				"status":         status,
				"points_awarded": points,
				"verified_at":    verifiedAt,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		settled = true
		if ev != nil {
			return tx.Create(ev).Error
		}
		return nil
	})
	return settled, err
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harvestra/krishikhel/models"
	"gorm.io/gorm"
)

// MissionStore reads the mission catalog and persists submissions.
type MissionStore interface {
	GetMission(ctx context.Context, missionID string) (*models.Mission, error)
	ListMissions(ctx context.Context) ([]models.Mission, error)
	// HasOpenSubmission reports whether a pending or verified submission
	// exists for the mission; rejected submissions do not count.
	HasOpenSubmission(ctx context.Context, userID, missionID string) (bool, error)
	CreateSubmission(ctx context.Context, sub *models.MissionSubmission) error
	GetSubmission(ctx context.Context, submissionID uint) (*models.MissionSubmission, error)
	ListSubmissions(ctx context.Context, userID string, limit, offset int) ([]models.MissionSubmission, int64, error)
	// SettleSubmission flips a pending submission to its verdict and
	// writes the point event, when given, in the same transaction. The
	// update is conditional on status still being pending, so concurrent
	// reviewers cannot both settle the same submission.
	SettleSubmission(ctx context.Context, submissionID uint, status string, points int, verifiedAt time.Time, ev *models.PointEvent) (bool, error)
}

// Missions runs the submit/verify lifecycle for real-world tasks.
type Missions struct {
	store MissionStore
}

func NewMissions(store MissionStore) *Missions {
	return &Missions{store: store}
}

// Catalog lists active missions.
func (m *Missions) Catalog(ctx context.Context) ([]models.Mission, error) {
	return m.store.ListMissions(ctx)
}

// Submit files proof for a mission. A mission can be earned once: a second
// submission is rejected while one is pending or already verified, but
// resubmitting after a rejection is fine.
func (m *Missions) Submit(ctx context.Context, userID, missionID, proofDescription, proofURL string) (*models.MissionSubmission, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}
	if missionID == "" {
		return nil, errValidation("mission_id is required")
	}
	if proofDescription == "" {
		return nil, errValidation("proof_description is required")
	}

	if _, err := m.store.GetMission(ctx, missionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMissionNotFound
		}
		return nil, err
	}

	open, err := m.store.HasOpenSubmission(ctx, userID, missionID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, ErrDuplicateSubmission
	}

	sub := &models.MissionSubmission{
		UserID:           userID,
		MissionID:        missionID,
		ProofDescription: proofDescription,
		ProofURL:         proofURL,
		Status:           models.SubmissionPending,
	}
	if err := m.store.CreateSubmission(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// Submissions lists a user's submissions, newest first.
func (m *Missions) Submissions(ctx context.Context, userID string, limit, offset int) ([]models.MissionSubmission, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return m.store.ListSubmissions(ctx, userID, limit, offset)
}

// Verify settles a pending submission. An approved verdict grants the
// mission's point reward; a rejected one grants nothing. Either way the
// submission is terminal afterwards.
func (m *Missions) Verify(ctx context.Context, submissionID uint, approve bool) (*models.MissionSubmission, error) {
	sub, err := m.store.GetSubmission(ctx, submissionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubmissionPending {
		return nil, ErrInvalidState
	}

	status := models.SubmissionRejected
	points := 0
	if approve {
		mission, err := m.store.GetMission(ctx, sub.MissionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrMissionNotFound
			}
			return nil, err
		}
		status = models.SubmissionVerified
		points = mission.PointsReward
	}

	var ev *models.PointEvent
	if approve && points > 0 {
		ev = &models.PointEvent{
			UserID:      sub.UserID,
			Amount:      points,
			Source:      models.SourceMissionCompletion,
			Description: fmt.Sprintf("Mission %s verified", sub.MissionID),
		}
	}

	now := time.Now()
	settled, err := m.store.SettleSubmission(ctx, submissionID, status, points, now, ev)
	if err != nil {
		return nil, err
	}
	if !settled {
		// Another reviewer got there first.
		return nil, ErrInvalidState
	}

	sub.Status = status
	sub.PointsAwarded = points
	sub.VerifiedAt = &now
	return sub, nil
}

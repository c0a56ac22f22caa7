package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harvestra/krishikhel/models"
	"gorm.io/gorm"
)

// RewardStore reads the reward catalog and atomically applies redemptions.
type RewardStore interface {
	GetReward(ctx context.Context, rewardID string) (*models.Reward, error)
	ListRewards(ctx context.Context) ([]models.Reward, error)
	// CreateRedemption persists the redemption, the compensating negative
	// point event, and the stock decrement in one transaction. It returns
	// ErrOutOfStock when the conditional decrement matches no row.
	CreateRedemption(ctx context.Context, red *models.RewardRedemption, ev *models.PointEvent) error
	ListRedemptions(ctx context.Context, userID string, limit, offset int) ([]models.RewardRedemption, int64, error)
	UpdateRedemptionStatus(ctx context.Context, redemptionID uint, status string) (*models.RewardRedemption, error)
}

// Rewards applies the redemption rules over the catalog and the ledger.
type Rewards struct {
	store    RewardStore
	ledger   *Ledger
	progress ProgressStore
	locks    *userLocks
}

func NewRewards(store RewardStore, ledger *Ledger, progress ProgressStore) *Rewards {
	return &Rewards{store: store, ledger: ledger, progress: progress, locks: newUserLocks()}
}

// Catalog lists redeemable rewards, optionally restricted to a category
// and to rewards reachable at the given level (0 = no level filter).
func (r *Rewards) Catalog(ctx context.Context, category string, userLevel int) ([]models.Reward, error) {
	rewards, err := r.store.ListRewards(ctx)
	if err != nil {
		return nil, err
	}
	if category == "" && userLevel <= 0 {
		return rewards, nil
	}
	filtered := make([]models.Reward, 0, len(rewards))
	for _, rw := range rewards {
		if category != "" && rw.Category != category {
			continue
		}
		if userLevel > 0 && rw.RequiredLevel > userLevel {
			continue
		}
		filtered = append(filtered, rw)
	}
	return filtered, nil
}

// Redeem spends points on a reward. Eligibility checks run in a fixed
// order (existence, stock, balance, level) so the first failure reported
// is always the same for a given state. A per-user lock serializes the
// check against the write, so concurrent redemptions cannot both spend
// the same balance.
func (r *Rewards) Redeem(ctx context.Context, userID, rewardID string) (*models.RewardRedemption, error) {
	if userID == "" {
		return nil, errValidation("user id is required")
	}
	if rewardID == "" {
		return nil, errValidation("reward_id is required")
	}

	unlock := r.locks.Lock(userID)
	defer unlock()

	reward, err := r.store.GetReward(ctx, rewardID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRewardNotFound
	}
	if err != nil {
		return nil, err
	}
	if reward.StockQuantity == 0 {
		return nil, ErrOutOfStock
	}

	balance, err := r.ledger.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}
	if balance < reward.PointsCost {
		return nil, &InsufficientPointsError{Required: reward.PointsCost, Balance: balance}
	}

	if reward.RequiredLevel > 0 {
		completed, err := r.progress.CountCompleted(ctx, userID)
		if err != nil {
			return nil, err
		}
		if level := UserLevel(completed); level < reward.RequiredLevel {
			return nil, &LevelTooLowError{Required: reward.RequiredLevel, Level: level}
		}
	}

	red := &models.RewardRedemption{
		UserID:      userID,
		RewardID:    reward.ID,
		RewardTitle: reward.Title,
		PointsSpent: reward.PointsCost,
		Status:      models.RedemptionPending,
	}
	ev := &models.PointEvent{
		UserID:      userID,
		Amount:      -reward.PointsCost,
		Source:      models.SourceRewardRedemption,
		Description: fmt.Sprintf("Redeemed %s", reward.Title),
	}
	if err := r.store.CreateRedemption(ctx, red, ev); err != nil {
		return nil, err
	}
	return red, nil
}

// Redemptions returns a user's redemption history, newest first.
func (r *Rewards) Redemptions(ctx context.Context, userID string, limit, offset int) ([]models.RewardRedemption, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return r.store.ListRedemptions(ctx, userID, limit, offset)
}

var redemptionStatuses = map[string]bool{
	models.RedemptionPending:   true,
	models.RedemptionApproved:  true,
	models.RedemptionDelivered: true,
	models.RedemptionCancelled: true,
}

// UpdateStatus moves a redemption to a new fulfillment status. Admin only;
// the controller enforces the gate.
func (r *Rewards) UpdateStatus(ctx context.Context, redemptionID uint, status string) (*models.RewardRedemption, error) {
	if !redemptionStatuses[status] {
		return nil, errValidation("unknown redemption status %q", status)
	}
	red, err := r.store.UpdateRedemptionStatus(ctx, redemptionID, status)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRewardNotFound
	}
	return red, err
}

package stores

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/harvestra/krishikhel/models"
	"github.com/harvestra/krishikhel/services"
)

// RewardsStore is the gorm-backed reward catalog and redemption log.
type RewardsStore struct {
	db *gorm.DB
}

func NewRewardsStore(db *gorm.DB) *RewardsStore {
	return &RewardsStore{db: db}
}

func (s *RewardsStore) GetReward(ctx context.Context, rewardID string) (*models.Reward, error) {
	var reward models.Reward
	if err := s.db.WithContext(ctx).First(&reward, "id = ?", rewardID).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *RewardsStore) ListRewards(ctx context.Context) ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.db.WithContext(ctx).Order("points_cost ASC").Find(&rewards).Error
	return rewards, err
}

// CreateRedemption writes the redemption, its negative point event, and the
// stock decrement in one transaction. The decrement is conditional on stock
// remaining, so two racing redemptions of the last unit cannot both commit.
func (s *RewardsStore) CreateRedemption(ctx context.Context, red *models.RewardRedemption, ev *models.PointEvent) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&reward, "id = ?", red.RewardID).Error
		if err != nil {
			return err
		}
		if reward.StockQuantity != models.UnlimitedStock {
			res := tx.Model(&models.Reward{}).
				Where("id = ? AND stock_quantity > 0", red.RewardID).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - 1"))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return services.ErrOutOfStock
			}
		}
		if err := tx.Create(red).Error; err != nil {
			return err
		}
		return tx.Create(ev).Error
	})
}

func (s *RewardsStore) ListRedemptions(ctx context.Context, userID string, limit, offset int) ([]models.RewardRedemption, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.RewardRedemption{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var reds []models.RewardRedemption
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&reds).Error
	return reds, total, err
}

func (s *RewardsStore) UpdateRedemptionStatus(ctx context.Context, redemptionID uint, status string) (*models.RewardRedemption, error) {
	var red models.RewardRedemption
	if err := s.db.WithContext(ctx).First(&red, redemptionID).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&red).Update("status", status).Error; err != nil {
		return nil, err
	}
	red.Status = status
	return &red, nil
}

package models

import "time"

// Redemption statuses. Transitions after pending are administrative.
const (
	RedemptionPending   = "pending"
	RedemptionApproved  = "approved"
	RedemptionDelivered = "delivered"
	RedemptionCancelled = "cancelled"
)

// UnlimitedStock marks a reward whose stock is not tracked.
const UnlimitedStock = -1

// Reward is a redeemable catalog item. Seeded reference data; only
// stock_quantity changes at runtime (decremented on redemption).
type Reward struct {
	ID                string    `gorm:"primaryKey;size:64" json:"id"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	Description       string    `gorm:"size:512" json:"description"`
	PointsCost        int       `gorm:"not null" json:"points_cost"`
	StockQuantity     int       `gorm:"default:-1" json:"stock_quantity"` // -1 = unlimited
	Category          string    `gorm:"size:32;index" json:"category"`
	RequiredLevel     int       `gorm:"default:0" json:"required_level,omitempty"` // 0 = no gate
	EstimatedDelivery string    `gorm:"size:64" json:"estimated_delivery"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RewardRedemption records one successful redemption. Created together with
// the compensating negative PointEvent in a single transaction.
type RewardRedemption struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	RewardID    string    `gorm:"size:64;not null" json:"reward_id"`
	RewardTitle string    `gorm:"size:255;not null" json:"reward_title"` // snapshot; catalog titles may change
	PointsSpent int       `gorm:"not null" json:"points_spent"`
	Status      string    `gorm:"size:16;default:'pending'" json:"status"`
	RedeemedAt  time.Time `gorm:"autoCreateTime" json:"redeemed_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

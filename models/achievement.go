package models

import "time"

// Achievement is an idempotent per-user unlock. The unique index makes
// repeated unlock attempts no-ops, which keeps the associated point grant
// exactly-once.
type Achievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"size:64;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string    `gorm:"size:64;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"size:512" json:"description"`
	PointsAwarded int       `gorm:"default:0" json:"points_awarded"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}

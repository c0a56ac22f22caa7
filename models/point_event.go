package models

import "time"

// Point event sources accepted by the ledger. The column itself is an
// unconstrained string, but the ledger rejects sources outside this set;
// adding a source means a constant here plus a validSources entry, no
// migration.
const (
	SourceQuizCompletion    = "quiz_completion"
	SourceDailyCheckin      = "daily_checkin"
	SourceModuleCompletion  = "module_completion"
	SourceRewardRedemption  = "reward_redemption"
	SourceMissionCompletion = "mission_completion"
	SourceCommunityPost     = "community_post"
	SourceAchievement       = "achievement"
)

// PointEvent is one signed entry in the append-only points ledger. A user's
// balance is always the sum of their events; rows are never updated or deleted.
type PointEvent struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      string    `gorm:"size:64;index;not null" json:"user_id"`
	Amount      int       `gorm:"not null" json:"amount"`
	Source      string    `gorm:"size:64;not null" json:"source"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// LeaderboardEntry is a ledger aggregation row: one user and their balance.
type LeaderboardEntry struct {
	UserID string `gorm:"column:user_id" json:"user_id"`
	Total  int    `gorm:"column:total" json:"total"`
}

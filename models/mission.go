package models

import "time"

// Mission submission states. pending is the only non-terminal state.
const (
	SubmissionPending  = "pending"
	SubmissionVerified = "verified"
	SubmissionRejected = "rejected"
)

// Mission is a seeded catalog entry describing a real-world task farmers
// complete for points.
type Mission struct {
	ID            string    `gorm:"primaryKey;size:64" json:"id"`
	Title         string    `gorm:"size:255;not null" json:"title"`
	Description   string    `gorm:"size:512" json:"description"`
	PointsReward  int       `gorm:"not null" json:"points_reward"`
	Category      string    `gorm:"size:32" json:"category"`
	Difficulty    string    `gorm:"size:16" json:"difficulty"`
	EstimatedTime string    `gorm:"size:64" json:"estimated_time"`
	Active        bool      `gorm:"default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// MissionSubmission is a user's proof for a mission. pending -> verified
// (with a point grant) or pending -> rejected; both terminal.
type MissionSubmission struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           string     `gorm:"size:64;index;not null" json:"user_id"`
	MissionID        string     `gorm:"size:64;index;not null" json:"mission_id"`
	ProofDescription string     `gorm:"type:text;not null" json:"proof_description"`
	ProofURL         string     `gorm:"size:1024" json:"proof_url,omitempty"`
	Status           string     `gorm:"size:16;default:'pending'" json:"status"`
	PointsAwarded    int        `gorm:"default:0" json:"points_awarded"`
	SubmittedAt      time.Time  `gorm:"autoCreateTime" json:"submitted_at"`
	VerifiedAt       *time.Time `json:"verified_at,omitempty"`
}

package models

import "time"

// CommunityPost is a forum post with denormalized like/comment counters.
// Counters are adjusted by increment/decrement actions and clamped at zero;
// there is no per-user like membership at this layer.
type CommunityPost struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"size:64;index;not null" json:"user_id"`
	Content       string    `gorm:"type:text;not null" json:"content"`
	Topic         string    `gorm:"size:64;default:'General'" json:"topic"`
	ImageURL      string    `gorm:"size:1024" json:"image_url,omitempty"`
	LikesCount    int       `gorm:"not null;default:0" json:"likes_count"`
	CommentsCount int       `gorm:"not null;default:0" json:"comments_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

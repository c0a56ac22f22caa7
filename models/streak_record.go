package models

import "time"

// DateLayout is the calendar-date format used for streak bookkeeping.
// Streaks are a daily feature; no time-of-day or timezone logic applies.
const DateLayout = "2006-01-02"

// StreakRecord tracks one user's daily activity streak. Invariant:
// longest_streak >= current_streak.
type StreakRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"size:64;uniqueIndex;not null" json:"user_id"`
	CurrentStreak    int       `gorm:"default:0" json:"current_streak"`
	LongestStreak    int       `gorm:"default:0" json:"longest_streak"`
	LastActivityDate string    `gorm:"size:10" json:"last_activity_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

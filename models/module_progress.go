package models

import (
	"time"

	"gorm.io/gorm"
)

// ModuleProgress is one user's progress through one learning module.
// One row per (user, module); completed is monotonic and never reverts.
type ModuleProgress struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             string     `gorm:"size:64;not null;uniqueIndex:idx_progress_user_module" json:"user_id"`
	ModuleID           string     `gorm:"size:64;not null;uniqueIndex:idx_progress_user_module" json:"module_id"`
	ProgressPercentage int        `gorm:"default:0" json:"progress_percentage"`
	Completed          bool       `gorm:"default:false" json:"completed"`
	StartedAt          time.Time  `json:"started_at"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// BeforeCreate stamps StartedAt for rows created through upserts.
func (m *ModuleProgress) BeforeCreate(tx *gorm.DB) error {
	if m.StartedAt.IsZero() {
		m.StartedAt = time.Now()
	}
	return nil
}

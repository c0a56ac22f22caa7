package models

import (
	"encoding/json"
	"time"
)

// Quiz is reference data: one quiz per learning module, with the answer key
// and pass threshold used to grade submissions server-side.
type Quiz struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	ModuleID         string    `gorm:"size:64;index;not null" json:"module_id"`
	Title            string    `gorm:"size:255" json:"title"`
	PassingThreshold int       `gorm:"default:70" json:"passing_threshold"`
	AnswerKey        string    `gorm:"size:1024;not null" json:"-"` // JSON array of correct option indices
	CreatedAt        time.Time `json:"created_at"`
}

// CorrectIndices decodes the stored answer key.
func (q *Quiz) CorrectIndices() ([]int, error) {
	var key []int
	if err := json.Unmarshal([]byte(q.AnswerKey), &key); err != nil {
		return nil, err
	}
	return key, nil
}

// QuizAttempt is an append-only record of one graded submission. Every
// attempt is retained, including repeats for the same module.
type QuizAttempt struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           string    `gorm:"size:64;index;not null" json:"user_id"`
	QuizID           string    `gorm:"size:64;not null" json:"quiz_id"`
	ModuleID         string    `gorm:"size:64;index;not null" json:"module_id"`
	Score            int       `gorm:"not null" json:"score"` // percentage 0-100
	TotalQuestions   int       `gorm:"not null" json:"total_questions"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	Answers          string    `gorm:"type:text" json:"answers"` // JSON array of selected option indices
	Passed           bool      `gorm:"not null" json:"passed"`
	CreatedAt        time.Time `json:"created_at"`
}

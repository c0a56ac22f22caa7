package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// QuizStore is the gorm-backed quiz catalog and attempt log.
type QuizStore struct {
	db *gorm.DB
}

func NewQuizStore(db *gorm.DB) *QuizStore {
	return &QuizStore{db: db}
}

func (s *QuizStore) GetQuiz(ctx context.Context, quizID string) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, "id = ?", quizID).Error; err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizStore) CreateAttempt(ctx context.Context, at *models.QuizAttempt) error {
	return s.db.WithContext(ctx).Create(at).Error
}

func (s *QuizStore) ListAttempts(ctx context.Context, userID, moduleID string, limit, offset int) ([]models.QuizAttempt, int64, error) {
	var total int64
	q := s.db.WithContext(ctx).Model(&models.QuizAttempt{}).Where("user_id = ?", userID)
	if moduleID != "" {
		q = q.Where("module_id = ?", moduleID)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var attempts []models.QuizAttempt
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&attempts).Error
	return attempts, total, err
}

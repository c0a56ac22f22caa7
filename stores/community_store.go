package stores

import (
	"context"

	"gorm.io/gorm"

	"github.com/harvestra/krishikhel/models"
)

// CommunityStore is the gorm-backed forum post store.
type CommunityStore struct {
	db *gorm.DB
}

func NewCommunityStore(db *gorm.DB) *CommunityStore {
	return &CommunityStore{db: db}
}

func (s *CommunityStore) CreatePost(ctx context.Context, post *models.CommunityPost) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *CommunityStore) GetPost(ctx context.Context, postID uint) (*models.CommunityPost, error) {
	var post models.CommunityPost
	if err := s.db.WithContext(ctx).First(&post, postID).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *CommunityStore) ListPosts(ctx context.Context, topic, search string, limit, offset int) ([]models.CommunityPost, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.CommunityPost{})
	if topic != "" {
		q = q.Where("topic = ?", topic)
	}
	if search != "" {
		q = q.Where("content LIKE ?", "%"+search+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var posts []models.CommunityPost
	err := q.Order("id DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, total, err
}

func (s *CommunityStore) UpdatePost(ctx context.Context, post *models.CommunityPost) error {
	return s.db.WithContext(ctx).Model(post).
		Updates(map[string]any{"content": post.Content, "topic": post.Topic}).Error
}

func (s *CommunityStore) DeletePost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).Delete(&models.CommunityPost{}, postID).Error
}

// counterColumns whitelists the columns AdjustCounter may touch; the column
// name is interpolated into SQL.
var counterColumns = map[string]bool{
	"likes_count":    true,
	"comments_count": true,
}

// AdjustCounter applies a delta to one counter, clamped at zero in SQL so
// concurrent decrements cannot push it negative.
func (s *CommunityStore) AdjustCounter(ctx context.Context, postID uint, column string, delta int) (*models.CommunityPost, error) {
	if !counterColumns[column] {
		return nil, gorm.ErrInvalidField
	}
	res := s.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr("GREATEST("+column+" + ?, 0)", delta))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return s.GetPost(ctx, postID)
}

func (s *CommunityStore) CountPosts(ctx context.Context, userID string) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).
		Model(&models.CommunityPost{}).
		Where("user_id = ?", userID).
		Count(&n).Error
	return int(n), err
}

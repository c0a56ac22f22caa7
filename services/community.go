package services

import (
	"context"
	"errors"

	"github.com/harvestra/krishikhel/models"
	"gorm.io/gorm"
)

// Counter action names accepted by AdjustCounter.
const (
	ActionLike           = "like"
	ActionUnlike         = "unlike"
	ActionCommentAdded   = "comment_added"
	ActionCommentRemoved = "comment_removed"
)

// CommunityStore persists posts and their denormalized counters.
type CommunityStore interface {
	CreatePost(ctx context.Context, post *models.CommunityPost) error
	GetPost(ctx context.Context, postID uint) (*models.CommunityPost, error)
	ListPosts(ctx context.Context, topic, search string, limit, offset int) ([]models.CommunityPost, int64, error)
	UpdatePost(ctx context.Context, post *models.CommunityPost) error
	DeletePost(ctx context.Context, postID uint) error
	// AdjustCounter applies a clamped delta to one counter column and
	// returns the updated post.
	AdjustCounter(ctx context.Context, postID uint, column string, delta int) (*models.CommunityPost, error)
	CountPosts(ctx context.Context, userID string) (int, error)
}

const firstPostPoints = 10

// Community manages forum posts. The first post a user ever makes earns a
// small point grant.
type Community struct {
	store  CommunityStore
	ledger *Ledger
}

func NewCommunity(store CommunityStore, ledger *Ledger) *Community {
	return &Community{store: store, ledger: ledger}
}

// CreatePost stores a new post. Content is sanitized by the controller
// before it reaches this layer.
func (c *Community) CreatePost(ctx context.Context, userID, content, topic, imageURL string) (*models.CommunityPost, bool, error) {
	if userID == "" {
		return nil, false, errValidation("user id is required")
	}
	if content == "" {
		return nil, false, errValidation("content is required")
	}

	existing, err := c.store.CountPosts(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	post := &models.CommunityPost{
		UserID:   userID,
		Content:  content,
		Topic:    topic,
		ImageURL: imageURL,
	}
	if err := c.store.CreatePost(ctx, post); err != nil {
		return nil, false, err
	}

	firstPost := existing == 0
	if firstPost {
		if _, err := c.ledger.AddPoints(ctx, userID, firstPostPoints, models.SourceCommunityPost, "First community post"); err != nil {
			return post, false, err
		}
	}
	return post, firstPost, nil
}

// Posts lists posts newest first, optionally filtered by topic and a
// content search term.
func (c *Community) Posts(ctx context.Context, topic, search string, limit, offset int) ([]models.CommunityPost, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return c.store.ListPosts(ctx, topic, search, limit, offset)
}

// UpdatePost edits a post's content or topic. Only the author may edit;
// there is no admin override for edits.
func (c *Community) UpdatePost(ctx context.Context, postID uint, userID, content, topic string) (*models.CommunityPost, error) {
	if content == "" {
		return nil, errValidation("content is required")
	}
	post, err := c.store.GetPost(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, errValidation("only the author can edit this post")
	}
	post.Content = content
	if topic != "" {
		post.Topic = topic
	}
	if err := c.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Post fetches one post by id.
func (c *Community) Post(ctx context.Context, postID uint) (*models.CommunityPost, error) {
	post, err := c.store.GetPost(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

// DeletePost removes a post. Only the author (or an admin) may delete;
// ownership is checked here, the admin override by the controller.
func (c *Community) DeletePost(ctx context.Context, postID uint, userID string, isAdmin bool) error {
	post, err := c.store.GetPost(ctx, postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && post.UserID != userID {
		return errValidation("only the author can delete this post")
	}
	return c.store.DeletePost(ctx, postID)
}

// AdjustCounter applies a named action to a post's counters. Decrements
// clamp at zero, so replayed unlikes cannot drive a counter negative.
func (c *Community) AdjustCounter(ctx context.Context, postID uint, action string) (*models.CommunityPost, error) {
	var column string
	var delta int
	switch action {
	case ActionLike:
		column, delta = "likes_count", 1
	case ActionUnlike:
		column, delta = "likes_count", -1
	case ActionCommentAdded:
		column, delta = "comments_count", 1
	case ActionCommentRemoved:
		column, delta = "comments_count", -1
	default:
		return nil, errValidation("unknown action %q", action)
	}
	post, err := c.store.AdjustCounter(ctx, postID, column, delta)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	return post, err
}

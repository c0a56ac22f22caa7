package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func communityFixture() (*Community, *Ledger) {
	ledger := NewLedger(newFakePointsStore())
	return NewCommunity(newFakeCommunityStore(), ledger), ledger
}

func TestCreatePostFirstPostBonus(t *testing.T) {
	community, ledger := communityFixture()

	ctx := context.Background()
	_, first, err := community.CreatePost(ctx, "farmer-1", "How do I prepare soil for okra?", "Crops", "")
	require.NoError(t, err)
	assert.True(t, first)

	balance, err := ledger.Balance(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, firstPostPoints, balance)

	_, first, err = community.CreatePost(ctx, "farmer-1", "Follow-up question", "Crops", "")
	require.NoError(t, err)
	assert.False(t, first)

	balance, err = ledger.Balance(ctx, "farmer-1")
	require.NoError(t, err)
	assert.Equal(t, firstPostPoints, balance)
}

func TestCounterActions(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	post, _, err := community.CreatePost(ctx, "farmer-1", "hello", "General", "")
	require.NoError(t, err)

	updated, err := community.AdjustCounter(ctx, post.ID, ActionLike)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.LikesCount)

	updated, err = community.AdjustCounter(ctx, post.ID, ActionCommentAdded)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CommentsCount)

	updated, err = community.AdjustCounter(ctx, post.ID, ActionUnlike)
	require.NoError(t, err)
	assert.Zero(t, updated.LikesCount)
}

func TestCounterClampsAtZero(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	post, _, err := community.CreatePost(ctx, "farmer-1", "hello", "General", "")
	require.NoError(t, err)

	updated, err := community.AdjustCounter(ctx, post.ID, ActionUnlike)
	require.NoError(t, err)
	assert.Zero(t, updated.LikesCount)
}

func TestCounterUnknownAction(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	post, _, err := community.CreatePost(ctx, "farmer-1", "hello", "General", "")
	require.NoError(t, err)

	_, err = community.AdjustCounter(ctx, post.ID, "boost")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestCounterUnknownPost(t *testing.T) {
	community, _ := communityFixture()

	_, err := community.AdjustCounter(context.Background(), 999, ActionLike)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDeletePostOwnership(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	post, _, err := community.CreatePost(ctx, "farmer-1", "hello", "General", "")
	require.NoError(t, err)

	err = community.DeletePost(ctx, post.ID, "farmer-2", false)
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	// Admins may delete anyone's post.
	err = community.DeletePost(ctx, post.ID, "farmer-2", true)
	assert.NoError(t, err)
}

func TestListPostsTopicFilter(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	_, _, err := community.CreatePost(ctx, "farmer-1", "pest question", "Pests", "")
	require.NoError(t, err)
	_, _, err = community.CreatePost(ctx, "farmer-2", "soil question", "Soil", "")
	require.NoError(t, err)

	posts, total, err := community.Posts(ctx, "Pests", "", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "pest question", posts[0].Content)

	posts, total, err = community.Posts(ctx, "", "soil", 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, "soil question", posts[0].Content)
}

func TestUpdatePostAuthorOnly(t *testing.T) {
	community, _ := communityFixture()

	ctx := context.Background()
	post, _, err := community.CreatePost(ctx, "farmer-1", "original", "General", "")
	require.NoError(t, err)

	updated, err := community.UpdatePost(ctx, post.ID, "farmer-1", "revised", "Soil")
	require.NoError(t, err)
	assert.Equal(t, "revised", updated.Content)
	assert.Equal(t, "Soil", updated.Topic)

	_, err = community.UpdatePost(ctx, post.ID, "farmer-2", "hijacked", "")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = community.UpdatePost(ctx, 999, "farmer-1", "ghost", "")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/harvestra/krishikhel/services"
	"github.com/harvestra/krishikhel/utils"
)

// CommunityController manages forum posts and their counters.
type CommunityController struct {
	community *services.Community
}

func NewCommunityController(community *services.Community) *CommunityController {
	return &CommunityController{community: community}
}

// CreatePost stores a new forum post for the caller.
func (c *CommunityController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required"`
		Topic    string `json:"topic"`
		ImageURL string `json:"image_url"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "content cannot be empty")
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "General"
	}

	post, firstPost, err := c.community.CreatePost(ctx.Request.Context(), userID, content, topic, req.ImageURL)
	if err != nil {
		serviceError(ctx, err, 50060)
		return
	}
	utils.Success(ctx, gin.H{"post": post, "first_post_bonus": firstPost})
}

// ListPosts returns posts newest first, with optional `topic` and `search`
// filters.
func (c *CommunityController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	posts, total, err := c.community.Posts(ctx.Request.Context(), ctx.Query("topic"), ctx.Query("search"), pageSize, (page-1)*pageSize)
	if err != nil {
		serviceError(ctx, err, 50061)
		return
	}
	utils.Success(ctx, gin.H{
		"posts":     posts,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetPost returns one post.
func (c *CommunityController) GetPost(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}
	post, err := c.community.Post(ctx.Request.Context(), uint(id))
	if err != nil {
		serviceError(ctx, err, 50062)
		return
	}
	utils.Success(ctx, post)
}

// UpdatePost edits the caller's own post.
func (c *CommunityController) UpdatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}
	var req struct {
		Content string `json:"content" binding:"required"`
		Topic   string `json:"topic"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}
	content := utils.Sanitize(strings.TrimSpace(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40022, "content cannot be empty")
		return
	}

	post, err := c.community.UpdatePost(ctx.Request.Context(), uint(id), userID, content, strings.TrimSpace(req.Topic))
	if err != nil {
		serviceError(ctx, err, 50065)
		return
	}
	utils.Success(ctx, post)
}

// DeletePost removes the caller's post; admins may remove any post.
func (c *CommunityController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}
	if err := c.community.DeletePost(ctx.Request.Context(), uint(id), userID, isAdmin(ctx)); err != nil {
		serviceError(ctx, err, 50063)
		return
	}
	utils.Success(ctx, gin.H{"deleted": true})
}

// Action applies a like/unlike/comment/uncomment counter action to a post.
func (c *CommunityController) Action(ctx *gin.Context) {
	if _, ok := getUserID(ctx); !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "invalid post id")
		return
	}
	var req struct {
		Action string `json:"action" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "invalid request payload")
		return
	}

	post, err := c.community.AdjustCounter(ctx.Request.Context(), uint(id), req.Action)
	if err != nil {
		serviceError(ctx, err, 50064)
		return
	}
	utils.Success(ctx, post)
}

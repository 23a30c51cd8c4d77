package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
)

// PostController handles post, feed and interaction operations
type PostController struct {
	postService services.PostService
	logger      zerolog.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService services.PostService, logger zerolog.Logger) *PostController {
	return &PostController{
		postService: postService,
		logger:      logger,
	}
}

func parseID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return 0, false
	}
	return id, true
}

// Create submits a new post
// @Summary Create a post
// @Description Creates a post in the pending moderation queue. Requires a completed profile.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.PostResponse
// @Failure 403 {object} dto.ErrorResponse "Profile setup not completed"
// @Router /posts [post]
func (c *PostController) Create(ctx *gin.Context) {
	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.postService.Create(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// Feed returns one page of the requested feed
// @Summary Get the post feed
// @Description Returns a page of posts for the given mode (global, following, trending), optionally filtered by a search term. The cursor token resumes after the previous page.
// @Tags posts
// @Produce json
// @Param mode query string false "Feed mode" Enums(global, following, trending) default(global)
// @Param search query string false "Search term matched against title, content and category"
// @Param cursor query string false "Resumption cursor from the previous page"
// @Param limit query int false "Page size, at most 50" default(10)
// @Success 200 {object} dto.FeedResponse
// @Failure 400 {object} dto.ErrorResponse "Malformed cursor or unknown mode"
// @Router /posts [get]
func (c *PostController) Feed(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "0"))

	response, err := c.postService.Feed(
		ctx.Request.Context(),
		middleware.UserID(ctx),
		ctx.DefaultQuery("mode", services.FeedModeGlobal),
		ctx.Query("search"),
		ctx.Query("cursor"),
		limit,
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetByID returns a single post
// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.PostResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id} [get]
func (c *PostController) GetByID(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	response, err := c.postService.GetByID(ctx.Request.Context(), postID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Update edits a post
// @Summary Edit a post
// @Description Author-only. Rejects empty content and edits identical to the stored post. Marks the post edited.
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "New content"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse "Empty or unchanged content"
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /posts/{id} [put]
func (c *PostController) Update(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.postService.Update(ctx.Request.Context(), postID, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Delete removes a post
// @Summary Delete a post
// @Description Author or admin only. Comments, reactions and notifications for the post are removed with it.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not the author"
// @Router /posts/{id} [delete]
func (c *PostController) Delete(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.postService.Delete(ctx.Request.Context(), postID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post deleted"})
}

// RecordView bumps the post's view counter
// @Summary Record a view
// @Description Atomically increments the view counter and returns the new value
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.ViewCountResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/views [post]
func (c *PostController) RecordView(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	views, err := c.postService.RecordView(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ViewCountResponse{Views: views})
}

// Like adds a like
// @Summary Like a post
// @Description Adds a like. The author is notified only the first time; repeats are silent no-ops.
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/like [put]
func (c *PostController) Like(ctx *gin.Context) {
	c.react(ctx, c.postService.Like, "Post liked")
}

// Unlike removes a like
// @Summary Unlike a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/like [delete]
func (c *PostController) Unlike(ctx *gin.Context) {
	c.react(ctx, c.postService.Unlike, "Like removed")
}

// Repost adds a repost
// @Summary Repost a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/repost [put]
func (c *PostController) Repost(ctx *gin.Context) {
	c.react(ctx, c.postService.Repost, "Post reposted")
}

// Unrepost removes a repost
// @Summary Remove a repost
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/repost [delete]
func (c *PostController) Unrepost(ctx *gin.Context) {
	c.react(ctx, c.postService.Unrepost, "Repost removed")
}

// Bookmark saves a post
// @Summary Bookmark a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/bookmark [put]
func (c *PostController) Bookmark(ctx *gin.Context) {
	c.react(ctx, c.postService.Bookmark, "Post bookmarked")
}

// Unbookmark removes a bookmark
// @Summary Remove a bookmark
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /posts/{id}/bookmark [delete]
func (c *PostController) Unbookmark(ctx *gin.Context) {
	c.react(ctx, c.postService.Unbookmark, "Bookmark removed")
}

// ListSaved returns the caller's bookmarked posts
// @Summary List saved posts
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PostResponse
// @Router /posts/saved [get]
func (c *PostController) ListSaved(ctx *gin.Context) {
	posts, err := c.postService.ListBookmarked(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// AddComment appends a comment to a post
// @Summary Comment on a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateCommentRequest true "Comment content"
// @Success 201 {object} dto.CommentResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [post]
func (c *PostController) AddComment(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.postService.AddComment(ctx.Request.Context(), postID, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// ListComments returns a post's comments oldest first
// @Summary List comments
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} dto.CommentListResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /posts/{id}/comments [get]
func (c *PostController) ListComments(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	response, err := c.postService.ListComments(ctx.Request.Context(), postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *PostController) react(ctx *gin.Context, fn func(ctx context.Context, postID, userID int64) error, message string) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := fn(ctx.Request.Context(), postID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: message})
}

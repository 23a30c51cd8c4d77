package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models"
	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
	"github.com/blogsphere/blogsphere/internal/pkg/helpers"
)

const pendingListLimit = 50

// AdminController handles admin panel operations
type AdminController struct {
	adminService services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// Stats returns the dashboard summary
// @Summary Admin dashboard stats
// @Description Totals plus the five newest users and five oldest pending posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AdminStatsResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/stats [get]
func (c *AdminController) Stats(ctx *gin.Context) {
	response, err := c.adminService.Stats(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListUsers returns a page of users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Param search query string false "Filter by name, username or email"
// @Success 200 {object} dto.AdminUserListResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	response, err := c.adminService.ListUsers(ctx.Request.Context(), ctx.Query("search"), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// DeleteUser removes a user and everything they authored
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot delete own account"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	targetID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.adminService.DeleteUser(ctx.Request.Context(), targetID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "User deleted"})
}

// ListPendingPosts returns posts awaiting moderation
// @Summary List pending posts
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PostResponse
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Router /admin/posts/pending [get]
func (c *AdminController) ListPendingPosts(ctx *gin.Context) {
	posts, err := c.adminService.ListPendingPosts(ctx.Request.Context(), pendingListLimit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, posts)
}

// ModeratePost approves or rejects a pending post
// @Summary Moderate a post
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Post ID"
// @Param request body dto.ModeratePostRequest true "Moderation decision"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /admin/posts/{id}/moderate [put]
func (c *AdminController) ModeratePost(ctx *gin.Context) {
	postID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ModeratePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.adminService.ModeratePost(ctx.Request.Context(), postID, models.PostStatus(req.Status)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post moderated"})
}

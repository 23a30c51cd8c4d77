package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
)

// UserController handles profile and social graph operations
type UserController struct {
	userService services.UserService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(userService services.UserService, logger zerolog.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

// GetMe returns the caller's own account
// @Summary Get own account
// @Description Returns the authenticated user's account including the profileComplete flag
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /users/me [get]
func (c *UserController) GetMe(ctx *gin.Context) {
	response, err := c.userService.GetMe(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SetupProfile completes the one-time profile setup
// @Summary Set up profile
// @Description Sets full name, username, bio and location. Can only run once per account.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfileSetupRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 409 {object} dto.ErrorResponse "Profile already set up or username taken"
// @Router /users/me/profile [post]
func (c *UserController) SetupProfile(ctx *gin.Context) {
	var req dto.ProfileSetupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.userService.SetupProfile(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// UpdateProfile updates the mutable profile fields
// @Summary Update profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse "Profile setup not completed"
// @Router /users/me/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.userService.UpdateProfile(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetProfile returns a public profile by username
// @Summary Get a public profile
// @Description Returns the user's profile, follower counts and posts with the pinned post first
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{username} [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	response, err := c.userService.GetProfile(ctx.Request.Context(), ctx.Param("username"), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Follow adds a follow edge to the target user
// @Summary Follow a user
// @Description Follows the target user. Repeated follows are no-ops and never re-notify.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse "Cannot follow yourself"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id}/follow [put]
func (c *UserController) Follow(ctx *gin.Context) {
	followeeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.Follow(ctx.Request.Context(), middleware.UserID(ctx), followeeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Following"})
}

// Unfollow removes a follow edge
// @Summary Unfollow a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /users/{id}/follow [delete]
func (c *UserController) Unfollow(ctx *gin.Context) {
	followeeID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.Unfollow(ctx.Request.Context(), middleware.UserID(ctx), followeeID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Unfollowed"})
}

// PinPost pins one of the caller's posts to their profile
// @Summary Pin a post
// @Description Pins one of the caller's own posts. Pinning a second post replaces the first.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PinRequest true "Post to pin"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Post not owned by caller"
// @Router /users/me/pin [put]
func (c *UserController) PinPost(ctx *gin.Context) {
	var req dto.PinRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.userService.PinPost(ctx.Request.Context(), middleware.UserID(ctx), req.PostID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post pinned"})
}

// UnpinPost clears the profile pin
// @Summary Unpin the pinned post
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /users/me/pin [delete]
func (c *UserController) UnpinPost(ctx *gin.Context) {
	if err := c.userService.UnpinPost(ctx.Request.Context(), middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Post unpinned"})
}

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

// NotificationController handles notification operations
type NotificationController struct {
	notificationService services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// List returns the caller's notifications
// @Summary List notifications
// @Description Returns the caller's notifications newest first plus the unread count
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.NotificationListResponse
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	response, err := c.notificationService.List(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// MarkRead flags one notification as read
// @Summary Mark a notification read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [put]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.notificationService.MarkRead(ctx.Request.Context(), notificationID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Notification marked read"})
}

// MarkAllRead flags every notification as read
// @Summary Mark all notifications read
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /notifications/read-all [put]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	if err := c.notificationService.MarkAllRead(ctx.Request.Context(), middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "All notifications marked read"})
}

// Delete removes a notification
// @Summary Delete a notification
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id} [delete]
func (c *NotificationController) Delete(ctx *gin.Context) {
	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.notificationService.Delete(ctx.Request.Context(), notificationID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Notification deleted"})
}

// ClearAll removes every notification the caller has
// @Summary Clear all notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /notifications [delete]
func (c *NotificationController) ClearAll(ctx *gin.Context) {
	if err := c.notificationService.ClearAll(ctx.Request.Context(), middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Notifications cleared"})
}

// Subscribe registers a browser push subscription
// @Summary Subscribe to web push
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PushSubscriptionRequest true "Push subscription"
// @Success 200 {object} dto.SuccessResponse
// @Router /notifications/push/subscribe [post]
func (c *NotificationController) Subscribe(ctx *gin.Context) {
	var req dto.PushSubscriptionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.notificationService.Subscribe(ctx.Request.Context(), middleware.UserID(ctx), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Push subscription saved"})
}

// PushPublicKey exposes the VAPID public key
// @Summary Get the web push public key
// @Tags notifications
// @Produce json
// @Success 200 {object} dto.PushPublicKeyResponse
// @Router /notifications/push/public-key [get]
func (c *NotificationController) PushPublicKey(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.PushPublicKeyResponse{
		PublicKey: c.notificationService.PushPublicKey(),
	})
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
)

// TribeController handles tribe operations
type TribeController struct {
	tribeService services.TribeService
	chatService  services.ChatService
	logger       zerolog.Logger
}

// NewTribeController creates a new TribeController
func NewTribeController(tribeService services.TribeService, chatService services.ChatService, logger zerolog.Logger) *TribeController {
	return &TribeController{
		tribeService: tribeService,
		chatService:  chatService,
		logger:       logger,
	}
}

// Create creates a tribe
// @Summary Create a tribe
// @Description Creates a tribe; the creator becomes owner and first member. Private tribes need a join code.
// @Tags tribes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTribeRequest true "Tribe fields"
// @Success 201 {object} dto.TribeResponse
// @Failure 400 {object} dto.ErrorResponse "Missing join code for private tribe"
// @Failure 409 {object} dto.ErrorResponse "Tribe name already taken"
// @Router /tribes [post]
func (c *TribeController) Create(ctx *gin.Context) {
	var req dto.CreateTribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.tribeService.Create(ctx.Request.Context(), middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

// List returns all tribes
// @Summary List tribes
// @Description Lists all tribes, optionally filtered by a name search term. Join codes are never returned.
// @Tags tribes
// @Produce json
// @Param search query string false "Name search term"
// @Success 200 {object} dto.TribeListResponse
// @Router /tribes [get]
func (c *TribeController) List(ctx *gin.Context) {
	response, err := c.tribeService.List(ctx.Request.Context(), middleware.UserID(ctx), ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// ListMine returns the caller's tribes
// @Summary List own tribes
// @Tags tribes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.TribeListResponse
// @Router /tribes/mine [get]
func (c *TribeController) ListMine(ctx *gin.Context) {
	response, err := c.tribeService.ListMine(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetByID returns a tribe
// @Summary Get a tribe
// @Tags tribes
// @Produce json
// @Param id path int true "Tribe ID"
// @Success 200 {object} dto.TribeResponse
// @Failure 404 {object} dto.ErrorResponse "Tribe not found"
// @Router /tribes/{id} [get]
func (c *TribeController) GetByID(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	response, err := c.tribeService.GetByID(ctx.Request.Context(), tribeID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Update edits a tribe
// @Summary Edit a tribe
// @Description Owner-only. Switching to private requires a join code; switching to public clears it.
// @Tags tribes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Param request body dto.UpdateTribeRequest true "Tribe fields"
// @Success 200 {object} dto.TribeResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /tribes/{id} [put]
func (c *TribeController) Update(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateTribeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.tribeService.Update(ctx.Request.Context(), tribeID, middleware.UserID(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// Delete removes a tribe
// @Summary Delete a tribe
// @Description Owner-only. Members and chat history are removed with it.
// @Tags tribes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Router /tribes/{id} [delete]
func (c *TribeController) Delete(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.tribeService.Delete(ctx.Request.Context(), tribeID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Tribe deleted"})
}

// Join adds the caller as a member
// @Summary Join a tribe
// @Description Joins a tribe. Private tribes require the matching join code; joining twice is a no-op.
// @Tags tribes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Param request body dto.JoinTribeRequest false "Join code for private tribes"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Wrong join code"
// @Router /tribes/{id}/join [post]
func (c *TribeController) Join(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.JoinTribeRequest
	// The body is optional for public tribes
	_ = ctx.ShouldBindJSON(&req)

	if err := c.tribeService.Join(ctx.Request.Context(), tribeID, middleware.UserID(ctx), req.JoinCode); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Joined tribe"})
}

// Leave removes the caller's membership
// @Summary Leave a tribe
// @Tags tribes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Owner cannot leave"
// @Router /tribes/{id}/leave [post]
func (c *TribeController) Leave(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	if err := c.tribeService.Leave(ctx.Request.Context(), tribeID, middleware.UserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Message: "Left tribe"})
}

// ChatHistory returns a tribe's chat messages
// @Summary Get chat history
// @Description Members-only. Messages come back in ascending time order.
// @Tags chat
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Success 200 {object} dto.ChatHistoryResponse
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /tribes/{id}/chat [get]
func (c *TribeController) ChatHistory(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	response, err := c.chatService.History(ctx.Request.Context(), tribeID, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// SendMessage posts a chat message over REST
// @Summary Send a chat message
// @Description Members-only. The message is stored and broadcast to connected WebSocket clients.
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Param request body dto.SendMessageRequest true "Message content"
// @Success 201 {object} dto.ChatMessageResponse
// @Failure 403 {object} dto.ErrorResponse "Not a member"
// @Router /tribes/{id}/chat [post]
func (c *TribeController) SendMessage(ctx *gin.Context) {
	tribeID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	response, err := c.chatService.Send(ctx.Request.Context(), tribeID, middleware.UserID(ctx), req.Content)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, response)
}

package websocket

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/models/dto"
	"github.com/blogsphere/blogsphere/internal/pkg/apperrors"
)

// MembershipChecker verifies that a user belongs to a tribe before they may
// join its chat room.
type MembershipChecker interface {
	IsMember(ctx context.Context, tribeID, userID int64) (bool, error)
}

// Handler upgrades HTTP requests to chat WebSocket connections
type Handler struct {
	hub     *Hub
	members MembershipChecker
	persist PersistFunc
	logger  zerolog.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, members MembershipChecker, persist PersistFunc, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		members: members,
		persist: persist,
		logger:  logger,
	}
}

// HandleConnection godoc
// @Summary Establish a WebSocket connection for tribe chat
// @Description Upgrades the HTTP connection to a WebSocket for real-time chat in a tribe
// @Tags chat
// @Security BearerAuth
// @Param id path int true "Tribe ID"
// @Success 101 {string} string "Switching Protocols"
// @Failure 400 {object} dto.ErrorResponse "Invalid tribe ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the tribe"
// @Router /tribes/{id}/chat/ws [get]
func (h *Handler) HandleConnection(c *gin.Context) {
	tribeID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, "Invalid tribe ID"),
		))
		return
	}

	userIDValue, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		))
		return
	}
	userID := userIDValue.(int64)

	isMember, err := h.members.IsMember(c.Request.Context(), tribeID, userID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("tribeID", tribeID).
			Int64("userID", userID).
			Msg("Failed to check tribe membership")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Failed to check membership"),
		))
		return
	}
	if !isMember {
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeNotTribeMember, apperrors.ErrNotTribeMember.Error()),
		))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error().
			Err(err).
			Int64("tribeID", tribeID).
			Int64("userID", userID).
			Msg("Failed to upgrade connection to WebSocket")
		return
	}

	client := &Client{
		hub:     h.hub,
		conn:    conn,
		send:    make(chan []byte, 256),
		userID:  userID,
		tribeID: tribeID,
		persist: h.persist,
		logger:  h.logger,
	}
	client.hub.register <- client

	go client.writePump()
	go client.readPump()

	h.logger.Info().
		Int64("tribeID", tribeID).
		Int64("userID", userID).
		Msg("WebSocket connection established")
}

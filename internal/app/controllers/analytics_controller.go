package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/blogsphere/blogsphere/internal/app/services"
	"github.com/blogsphere/blogsphere/internal/middleware"
)

// AnalyticsController serves the author analytics dashboard
type AnalyticsController struct {
	analyticsService services.AnalyticsService
	logger           zerolog.Logger
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService services.AnalyticsService, logger zerolog.Logger) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetMine returns the caller's authoring statistics
// @Summary Get own analytics
// @Description Aggregates views, likes, comments, reposts, follower counts, estimated read times and monthly engagement for the caller's posts
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.AnalyticsResponse
// @Router /analytics/me [get]
func (c *AnalyticsController) GetMine(ctx *gin.Context) {
	response, err := c.analyticsService.ForUser(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

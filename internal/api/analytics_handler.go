package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetProgress godoc
// @Summary Plan adherence: completed vs planned non-rest workouts
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} ProgressResponse
// @Router /plans/{planId}/progress [get]
func (h *AnalyticsHandler) GetProgress(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	planID := c.Param("planId")
	progress, err := h.analyticsService.PlanProgress(c.Request.Context(), actor, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapProgressToResponse(planID, progress))
}

// GetWeeklySummary godoc
// @Summary Mileage of one plan week
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param week query int false "1-based week number (default 1)"
// @Success 200 {object} WeeklySummaryResponse
// @Failure 400 {object} gin.H "Week out of range"
// @Router /plans/{planId}/weekly-summary [get]
func (h *AnalyticsHandler) GetWeeklySummary(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}

	var week *int
	if raw, present := c.GetQuery("week"); present {
		n, err := strconv.Atoi(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "week must be an integer")
			return
		}
		week = &n
	}

	planID := c.Param("planId")
	summary, err := h.analyticsService.WeeklySummary(c.Request.Context(), actor, planID, week)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWeeklySummaryToResponse(planID, summary))
}

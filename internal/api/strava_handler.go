package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

type StravaHandler struct {
	stravaService service.StravaService
}

func NewStravaHandler(stravaService service.StravaService) *StravaHandler {
	return &StravaHandler{stravaService: stravaService}
}

// GetAuthURL godoc
// @Summary Start connecting a Strava account
// @Tags Strava
// @Produce json
// @Security BearerAuth
// @Success 200 {object} StravaAuthURLResponse
// @Failure 503 {object} gin.H "Strava not configured"
// @Router /strava/auth-url [get]
func (h *StravaHandler) GetAuthURL(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	url, err := h.stravaService.AuthURL(c.Request.Context(), actor)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, StravaAuthURLResponse{URL: url})
}

// Authorize godoc
// @Summary Complete the Strava OAuth flow with the returned code and state
// @Tags Strava
// @Accept json
// @Security BearerAuth
// @Param callback body StravaAuthorizeRequest true "OAuth callback values"
// @Success 204
// @Failure 409 {object} gin.H "State mismatch"
// @Router /strava/authorize [post]
func (h *StravaHandler) Authorize(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req StravaAuthorizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	if err := h.stravaService.Authorize(c.Request.Context(), actor, req.Code, req.State); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Sync godoc
// @Summary Import recent Strava runs into a plan
// @Tags Strava
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} service.SyncOutcome
// @Failure 409 {object} gin.H "Strava not connected"
// @Router /plans/{planId}/strava/sync [post]
func (h *StravaHandler) Sync(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	outcome, err := h.stravaService.Sync(c.Request.Context(), actor, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

type RunHandler struct {
	runService service.RunService
}

func NewRunHandler(runService service.RunService) *RunHandler {
	return &RunHandler{runService: runService}
}

// CreateRun godoc
// @Summary Log a run against a plan
// @Description Distance is miles and pace is seconds per mile.
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param run body CreateRunRequest true "Run details"
// @Success 201 {object} RunResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /plans/{planId}/runs [post]
func (h *RunHandler) CreateRun(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req CreateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	run, err := h.runService.Create(c.Request.Context(), actor, c.Param("planId"), service.RunInput{
		WorkoutID: req.WorkoutID,
		Distance:  req.Distance,
		Pace:      req.Pace,
		Date:      parseDate(req.Date),
		Notes:     req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapRunToResponse(run))
}

// ListRuns godoc
// @Summary List a plan's runs
// @Tags Runs
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {array} RunResponse
// @Router /plans/{planId}/runs [get]
func (h *RunHandler) ListRuns(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	runs, err := h.runService.ListForPlan(c.Request.Context(), actor, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapRuns(runs))
}

func (h *RunHandler) GetRun(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	run, err := h.runService.Get(c.Request.Context(), actor, c.Param("runId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRunToResponse(run))
}

func (h *RunHandler) UpdateRun(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req UpdateRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	run, err := h.runService.Update(c.Request.Context(), actor, c.Param("runId"), service.UpdateRunInput{
		WorkoutID:     req.WorkoutID,
		UnlinkWorkout: req.UnlinkWorkout,
		Distance:      req.Distance,
		Pace:          req.Pace,
		Date:          parseOptionalDate(req.Date),
		Notes:         req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapRunToResponse(run))
}

func (h *RunHandler) DeleteRun(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.runService.Delete(c.Request.Context(), actor, c.Param("runId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

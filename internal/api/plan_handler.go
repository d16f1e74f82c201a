package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// CreatePlan godoc
// @Summary Create a training plan for the calling athlete
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreatePlanRequest true "Plan details"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Only athletes own plans"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), actor, service.CreatePlanInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   parseDate(req.StartDate),
		EndDate:     parseDate(req.EndDate),
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// ListPlans godoc
// @Summary List the caller's plans, newest first
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {array} PlanResponse
// @Router /plans [get]
func (h *PlanHandler) ListPlans(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var q ListPlansQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindingError(c, err)
		return
	}

	plans, err := h.planService.ListForOwner(c.Request.Context(), actor, q.Skip, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := make([]PlanResponse, len(plans))
	for i := range plans {
		resp[i] = MapPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, resp)
}

// GetPlan godoc
// @Summary Get a training plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} gin.H
// @Failure 404 {object} gin.H
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), actor, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// UpdatePlan godoc
// @Summary Partially update a training plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body UpdatePlanRequest true "Fields to change"
// @Success 200 {object} PlanResponse
// @Router /plans/{planId} [patch]
func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), actor, c.Param("planId"), service.UpdatePlanInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   parseOptionalDate(req.StartDate),
		EndDate:     parseOptionalDate(req.EndDate),
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a plan with its workouts and runs
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), actor, c.Param("planId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

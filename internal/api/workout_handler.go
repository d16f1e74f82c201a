package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/run-trainer/internal/service"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// CreateWorkout godoc
// @Summary Add a workout to a plan
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not the plan owner"
// @Router /plans/{planId}/workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	workout, err := h.workoutService.Create(c.Request.Context(), actor, c.Param("planId"), service.WorkoutInput{
		Name:            req.Name,
		WorkoutType:     req.WorkoutType,
		PlannedDistance: req.PlannedDistance,
		TargetPaceMin:   req.TargetPaceMin,
		TargetPaceMax:   req.TargetPaceMax,
		ScheduledDate:   parseDate(req.ScheduledDate),
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(workout))
}

// ListWorkouts godoc
// @Summary List a plan's workouts in calendar order
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {array} WorkoutResponse
// @Router /plans/{planId}/workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	workouts, err := h.workoutService.ListForPlan(c.Request.Context(), actor, c.Param("planId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapWorkouts(workouts))
}

// GetWorkout godoc
// @Summary Get a workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Router /workouts/{workoutId} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	workout, err := h.workoutService.Get(c.Request.Context(), actor, c.Param("workoutId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// UpdateWorkout godoc
// @Summary Partially update a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Param workout body UpdateWorkoutRequest true "Fields to change"
// @Success 200 {object} WorkoutResponse
// @Router /workouts/{workoutId} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	workout, err := h.workoutService.Update(c.Request.Context(), actor, c.Param("workoutId"), service.UpdateWorkoutInput{
		Name:            req.Name,
		WorkoutType:     req.WorkoutType,
		PlannedDistance: req.PlannedDistance,
		TargetPaceMin:   req.TargetPaceMin,
		TargetPaceMax:   req.TargetPaceMax,
		ClearTargetPace: req.ClearTargetPace,
		ScheduledDate:   parseOptionalDate(req.ScheduledDate),
		Notes:           req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// DeleteWorkout godoc
// @Summary Delete a workout
// @Tags Workouts
// @Security BearerAuth
// @Param workoutId path string true "Workout ID"
// @Success 204
// @Router /workouts/{workoutId} [delete]
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	if err := h.workoutService.Delete(c.Request.Context(), actor, c.Param("workoutId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/repository/mocks"
)

func TestValidateWorkout(t *testing.T) {
	base := func() *domain.Workout {
		return &domain.Workout{
			Name:            "Tempo",
			WorkoutType:     domain.WorkoutTypeTempo,
			PlannedDistance: 5,
			ScheduledDate:   date("2024-03-06"),
		}
	}
	tests := []struct {
		name   string
		modify func(w *domain.Workout)
		valid  bool
	}{
		{name: "no pace", modify: func(*domain.Workout) {}, valid: true},
		{name: "pace range", modify: func(w *domain.Workout) { w.TargetPaceMin, w.TargetPaceMax = intPtr(450), intPtr(480) }, valid: true},
		{name: "equal pace bounds", modify: func(w *domain.Workout) { w.TargetPaceMin, w.TargetPaceMax = intPtr(450), intPtr(450) }, valid: true},
		{name: "only min pace", modify: func(w *domain.Workout) { w.TargetPaceMin = intPtr(450) }},
		{name: "inverted pace", modify: func(w *domain.Workout) { w.TargetPaceMin, w.TargetPaceMax = intPtr(480), intPtr(450) }},
		{name: "pace too fast", modify: func(w *domain.Workout) { w.TargetPaceMin, w.TargetPaceMax = intPtr(120), intPtr(450) }},
		{name: "distance too small", modify: func(w *domain.Workout) { w.PlannedDistance = 0.05 }},
		{name: "distance too large", modify: func(w *domain.Workout) { w.PlannedDistance = 101 }},
		{name: "rest day", modify: func(w *domain.Workout) { w.WorkoutType, w.PlannedDistance = domain.WorkoutTypeRest, 0 }, valid: true},
		{name: "rest with distance", modify: func(w *domain.Workout) { w.WorkoutType = domain.WorkoutTypeRest }},
		{name: "unknown type", modify: func(w *domain.Workout) { w.WorkoutType = "FARTLEK" }},
		{name: "no date", modify: func(w *domain.Workout) { w.ScheduledDate = date("0001-01-01") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := base()
			tt.modify(w)
			err := ValidateWorkout(w)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrValidation)
			}
		})
	}
}

func TestWorkoutService_Create(t *testing.T) {
	ctx := context.Background()
	plans := new(mocks.TrainingPlanRepository)
	workouts := new(mocks.WorkoutRepository)
	svc := NewWorkoutService(plans, workouts, testLogger)

	plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil)
	workouts.On("Create", ctx, mock.MatchedBy(func(w *domain.Workout) bool {
		return w.TrainingPlanID == "plan-1" && w.ScheduledDate.Equal(date("2024-03-06"))
	})).Return("w-1", nil).Once()

	w, err := svc.Create(ctx, athlete, "plan-1", WorkoutInput{
		Name:            "Tempo",
		WorkoutType:     domain.WorkoutTypeTempo,
		PlannedDistance: 5,
		ScheduledDate:   date("2024-03-06").Add(15 * time.Hour), // clock is dropped
	})
	require.NoError(t, err)
	assert.Equal(t, "w-1", w.ID)

	_, err = svc.Create(ctx, coach, "plan-1", WorkoutInput{Name: "x", WorkoutType: domain.WorkoutTypeEasy, PlannedDistance: 3, ScheduledDate: date("2024-03-06")})
	assert.ErrorIs(t, err, ErrPlanAccessDenied)
	workouts.AssertExpectations(t)
}

func TestWorkoutService_Update(t *testing.T) {
	ctx := context.Background()
	existing := func() *domain.Workout {
		return &domain.Workout{
			ID: "w-1", TrainingPlanID: "plan-1", Name: "Tempo", WorkoutType: domain.WorkoutTypeTempo,
			PlannedDistance: 5, TargetPaceMin: intPtr(450), TargetPaceMax: intPtr(480), ScheduledDate: date("2024-03-06"),
		}
	}

	t.Run("clear pace", func(t *testing.T) {
		plans := new(mocks.TrainingPlanRepository)
		workouts := new(mocks.WorkoutRepository)
		svc := NewWorkoutService(plans, workouts, testLogger)
		workouts.On("GetByID", ctx, "w-1").Return(existing(), nil).Once()
		plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()
		workouts.On("Update", ctx, mock.AnythingOfType("*domain.Workout")).Return(nil).Once()

		w, err := svc.Update(ctx, athlete, "w-1", UpdateWorkoutInput{ClearTargetPace: true})
		require.NoError(t, err)
		assert.False(t, w.HasTargetPace())
	})

	t.Run("missing workout", func(t *testing.T) {
		plans := new(mocks.TrainingPlanRepository)
		workouts := new(mocks.WorkoutRepository)
		svc := NewWorkoutService(plans, workouts, testLogger)
		workouts.On("GetByID", ctx, "nope").Return(nil, repository.ErrNotFound).Once()

		_, err := svc.Update(ctx, athlete, "nope", UpdateWorkoutInput{})
		assert.ErrorIs(t, err, ErrWorkoutNotFound)
	})

	t.Run("merged result must validate", func(t *testing.T) {
		plans := new(mocks.TrainingPlanRepository)
		workouts := new(mocks.WorkoutRepository)
		svc := NewWorkoutService(plans, workouts, testLogger)
		workouts.On("GetByID", ctx, "w-1").Return(existing(), nil).Once()
		plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()

		_, err := svc.Update(ctx, athlete, "w-1", UpdateWorkoutInput{TargetPaceMin: intPtr(500)})
		assert.ErrorIs(t, err, ErrValidation)
		workouts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

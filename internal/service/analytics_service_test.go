package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/repository/mocks"
)

func analyticsFixture() ([]domain.Workout, []domain.Run) {
	workouts := []domain.Workout{
		{ID: "w-rest", TrainingPlanID: "plan-1", WorkoutType: domain.WorkoutTypeRest, ScheduledDate: date("2024-03-04")},
		{ID: "w-easy", TrainingPlanID: "plan-1", WorkoutType: domain.WorkoutTypeEasy, PlannedDistance: 4, ScheduledDate: date("2024-03-05")},
		{ID: "w-tempo", TrainingPlanID: "plan-1", WorkoutType: domain.WorkoutTypeTempo, PlannedDistance: 5,
			TargetPaceMin: intPtr(480), TargetPaceMax: intPtr(500), ScheduledDate: date("2024-03-06")},
		{ID: "w-long", TrainingPlanID: "plan-1", WorkoutType: domain.WorkoutTypeLong, PlannedDistance: 10, ScheduledDate: date("2024-03-17")},
	}
	runs := []domain.Run{
		{ID: "r1", PlanID: "plan-1", Distance: 4.2, Pace: 560, Date: date("2024-03-05")},
		{ID: "r2", PlanID: "plan-1", Distance: 5, Pace: 530, Date: date("2024-03-06")}, // too slow for the tempo
		{ID: "r3", PlanID: "plan-1", Distance: 3, Pace: 600, Date: date("2024-03-12")},
	}
	return workouts, runs
}

func newAnalytics(t *testing.T) (AnalyticsService, *mocks.TrainingPlanRepository) {
	t.Helper()
	ctx := context.Background()
	plans := new(mocks.TrainingPlanRepository)
	workoutRepo := new(mocks.WorkoutRepository)
	runRepo := new(mocks.RunRepository)
	workouts, runs := analyticsFixture()
	workoutRepo.On("GetByPlanID", ctx, "plan-1").Return(workouts, nil)
	runRepo.On("GetByPlanID", ctx, "plan-1").Return(runs, nil)
	return NewAnalyticsService(plans, workoutRepo, runRepo), plans
}

func TestAnalyticsService_PlanProgress(t *testing.T) {
	ctx := context.Background()
	svc, plans := newAnalytics(t)
	plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil)

	p, err := svc.PlanProgress(ctx, coach, "plan-1")
	require.NoError(t, err)
	assert.Equal(t, 4, p.TotalWorkouts)
	assert.Equal(t, 3, p.NonRestWorkouts)
	assert.Equal(t, 1, p.CompletedWorkouts)
	assert.Equal(t, 33.33, p.AdherencePercent)
	assert.Equal(t, 2, p.DaysWithActivity)
}

func TestAnalyticsService_WeeklySummary(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		week      *int
		wantErr   error
		wantWeek  int
		wantRuns  int
		wantTotal float64
	}{
		{name: "defaults to week one", week: nil, wantWeek: 1, wantRuns: 2, wantTotal: 9.2},
		{name: "week two", week: intPtr(2), wantWeek: 2, wantRuns: 1, wantTotal: 3},
		{name: "last week is empty", week: intPtr(12), wantWeek: 12},
		{name: "week zero", week: intPtr(0), wantErr: ErrValidation},
		{name: "beyond plan", week: intPtr(13), wantErr: ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, plans := newAnalytics(t)
			plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil)

			s, err := svc.WeeklySummary(ctx, athlete, "plan-1", tt.week)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, errors.Is(err, ErrPlanNotFound))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWeek, s.WeekNumber)
			assert.Equal(t, tt.wantRuns, s.RunCount)
			assert.InDelta(t, tt.wantTotal, s.TotalDistance, 1e-9)
		})
	}
}

func TestAnalyticsService_MissingPlan(t *testing.T) {
	ctx := context.Background()
	svc, plans := newAnalytics(t)
	plans.On("GetByID", ctx, "nope").Return(nil, repository.ErrNotFound)

	_, err := svc.PlanProgress(ctx, athlete, "nope")
	assert.ErrorIs(t, err, ErrPlanNotFound)
	_, err = svc.WeeklySummary(ctx, athlete, "nope", intPtr(1))
	assert.ErrorIs(t, err, ErrPlanNotFound)
	assert.False(t, errors.Is(err, ErrValidation))
}

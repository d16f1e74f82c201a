package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/repository/mocks"
)

type runMocks struct {
	plans    *mocks.TrainingPlanRepository
	workouts *mocks.WorkoutRepository
	runs     *mocks.RunRepository
}

func newRunService() (RunService, runMocks) {
	m := runMocks{
		plans:    new(mocks.TrainingPlanRepository),
		workouts: new(mocks.WorkoutRepository),
		runs:     new(mocks.RunRepository),
	}
	return NewRunService(m.plans, m.workouts, m.runs, testLogger), m
}

func TestRunService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		in        RunInput
		setupMock func(m runMocks)
		wantErr   error
	}{
		{
			name: "manual run",
			in:   RunInput{Distance: 5, Pace: 480, Date: date("2024-03-06")},
			setupMock: func(m runMocks) {
				m.runs.On("Create", ctx, mock.MatchedBy(func(r *domain.Run) bool {
					return r.Source == domain.RunSourceManual && r.PlanID == "plan-1"
				})).Return("run-1", nil).Once()
			},
		},
		{
			name: "linked to workout of the plan",
			in:   RunInput{WorkoutID: strPtr("w-1"), Distance: 5, Pace: 480, Date: date("2024-03-06")},
			setupMock: func(m runMocks) {
				m.workouts.On("GetByID", ctx, "w-1").Return(&domain.Workout{ID: "w-1", TrainingPlanID: "plan-1"}, nil).Once()
				m.runs.On("Create", ctx, mock.Anything).Return("run-1", nil).Once()
			},
		},
		{
			name: "linked to workout of another plan",
			in:   RunInput{WorkoutID: strPtr("w-9"), Distance: 5, Pace: 480, Date: date("2024-03-06")},
			setupMock: func(m runMocks) {
				m.workouts.On("GetByID", ctx, "w-9").Return(&domain.Workout{ID: "w-9", TrainingPlanID: "plan-9"}, nil).Once()
			},
			wantErr: ErrValidation,
		},
		{
			name: "linked to missing workout",
			in:   RunInput{WorkoutID: strPtr("w-0"), Distance: 5, Pace: 480, Date: date("2024-03-06")},
			setupMock: func(m runMocks) {
				m.workouts.On("GetByID", ctx, "w-0").Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: ErrValidation,
		},
		{name: "distance below minimum", in: RunInput{Distance: 0.05, Pace: 480, Date: date("2024-03-06")}, wantErr: ErrValidation},
		{name: "pace too slow", in: RunInput{Distance: 5, Pace: 3001, Date: date("2024-03-06")}, wantErr: ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newRunService()
			m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			run, err := svc.Create(ctx, athlete, "plan-1", tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "run-1", run.ID)
			m.runs.AssertExpectations(t)
		})
	}
}

func TestRunService_CreateForPlanDeduplicates(t *testing.T) {
	ctx := context.Background()
	newRun := func() *domain.Run {
		return &domain.Run{PlanID: "plan-1", Distance: 5, Pace: 480, Date: date("2024-03-06"), Source: domain.RunSourceStrava, ExternalID: strPtr("987")}
	}

	t.Run("already imported", func(t *testing.T) {
		svc, m := newRunService()
		m.runs.On("GetByExternalID", ctx, "plan-1", "987").Return(&domain.Run{ID: "run-0"}, nil).Once()

		_, err := svc.CreateForPlan(ctx, newRun())
		assert.ErrorIs(t, err, ErrDuplicateRun)
		m.runs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost race on unique index", func(t *testing.T) {
		svc, m := newRunService()
		m.runs.On("GetByExternalID", ctx, "plan-1", "987").Return(nil, repository.ErrNotFound).Once()
		m.runs.On("Create", ctx, mock.Anything).Return("", repository.ErrDuplicate).Once()

		_, err := svc.CreateForPlan(ctx, newRun())
		assert.ErrorIs(t, err, ErrDuplicateRun)
	})

	t.Run("new activity", func(t *testing.T) {
		svc, m := newRunService()
		m.runs.On("GetByExternalID", ctx, "plan-1", "987").Return(nil, repository.ErrNotFound).Once()
		m.runs.On("Create", ctx, mock.Anything).Return("run-1", nil).Once()

		id, err := svc.CreateForPlan(ctx, newRun())
		require.NoError(t, err)
		assert.Equal(t, "run-1", id)
	})
}

func TestRunService_DeleteAccess(t *testing.T) {
	ctx := context.Background()
	svc, m := newRunService()
	m.runs.On("GetByID", ctx, "run-1").Return(&domain.Run{ID: "run-1", PlanID: "plan-1"}, nil)
	m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil)
	m.runs.On("Delete", ctx, "run-1").Return(nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, stranger, "run-1"), ErrPlanAccessDenied)
	assert.ErrorIs(t, svc.Delete(ctx, coach, "run-1"), ErrPlanAccessDenied)
	assert.NoError(t, svc.Delete(ctx, athlete, "run-1"))
	m.runs.AssertExpectations(t)
}

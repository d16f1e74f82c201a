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

type planMocks struct {
	plans    *mocks.TrainingPlanRepository
	workouts *mocks.WorkoutRepository
	runs     *mocks.RunRepository
}

func newPlanService() (PlanService, planMocks) {
	m := planMocks{
		plans:    new(mocks.TrainingPlanRepository),
		workouts: new(mocks.WorkoutRepository),
		runs:     new(mocks.RunRepository),
	}
	return NewPlanService(m.plans, m.workouts, m.runs, testLogger), m
}

func TestPlanService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		in      CreatePlanInput
		mockOK  bool
		wantErr error
	}{
		{
			name:   "draft by default",
			actor:  athlete,
			in:     CreatePlanInput{Name: "Spring 10K", StartDate: date("2024-03-04"), EndDate: date("2024-05-26")},
			mockOK: true,
		},
		{
			name:    "coach cannot own plans",
			actor:   coach,
			in:      CreatePlanInput{Name: "Spring 10K", StartDate: date("2024-03-04"), EndDate: date("2024-05-26")},
			wantErr: ErrPlanAccessDenied,
		},
		{
			name:    "end before start",
			actor:   athlete,
			in:      CreatePlanInput{Name: "Backwards", StartDate: date("2024-03-04"), EndDate: date("2024-03-01")},
			wantErr: ErrValidation,
		},
		{
			name:    "same start and end",
			actor:   athlete,
			in:      CreatePlanInput{Name: "One day", StartDate: date("2024-03-04"), EndDate: date("2024-03-04")},
			wantErr: ErrValidation,
		},
		{
			name:    "longer than a year",
			actor:   athlete,
			in:      CreatePlanInput{Name: "Forever", StartDate: date("2024-01-01"), EndDate: date("2025-01-02")},
			wantErr: ErrValidation,
		},
		{
			name:    "blank name",
			actor:   athlete,
			in:      CreatePlanInput{Name: "  ", StartDate: date("2024-03-04"), EndDate: date("2024-05-26")},
			wantErr: ErrValidation,
		},
		{
			name:    "unknown status",
			actor:   athlete,
			in:      CreatePlanInput{Name: "X", StartDate: date("2024-03-04"), EndDate: date("2024-05-26"), Status: "PAUSED"},
			wantErr: ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPlanService()
			if tt.mockOK {
				m.plans.On("Create", ctx, mock.MatchedBy(func(p *domain.TrainingPlan) bool {
					return p.OwnerID == tt.actor.UserID && p.Status == domain.PlanStatusDraft
				})).Return("plan-1", nil).Once()
			}

			plan, err := svc.Create(ctx, tt.actor, tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "plan-1", plan.ID)
			m.plans.AssertExpectations(t)
		})
	}
}

func TestPlanService_GetAccess(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   Actor
		repoErr error
		wantErr error
	}{
		{name: "owner", actor: athlete},
		{name: "coach reads any plan", actor: coach},
		{name: "other athlete denied", actor: stranger, wantErr: ErrPlanAccessDenied},
		{name: "missing plan", actor: athlete, repoErr: repository.ErrNotFound, wantErr: ErrPlanNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newPlanService()
			if tt.repoErr != nil {
				m.plans.On("GetByID", ctx, "plan-1").Return(nil, tt.repoErr).Once()
			} else {
				m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()
			}

			plan, err := svc.Get(ctx, tt.actor, "plan-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "plan-1", plan.ID)
		})
	}
}

func TestPlanService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps other fields", func(t *testing.T) {
		svc, m := newPlanService()
		m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()
		m.plans.On("Update", ctx, mock.AnythingOfType("*domain.TrainingPlan")).Return(nil).Once()

		status := domain.PlanStatusCompleted
		plan, err := svc.Update(ctx, athlete, "plan-1", UpdatePlanInput{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.PlanStatusCompleted, plan.Status)
		assert.Equal(t, "Spring 10K", plan.Name)
	})

	t.Run("coach cannot write", func(t *testing.T) {
		svc, m := newPlanService()
		m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()

		name := "Mine now"
		_, err := svc.Update(ctx, coach, "plan-1", UpdatePlanInput{Name: &name})
		assert.ErrorIs(t, err, ErrPlanAccessDenied)
		m.plans.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("invalid merged dates", func(t *testing.T) {
		svc, m := newPlanService()
		m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()

		end := date("2024-03-01")
		_, err := svc.Update(ctx, athlete, "plan-1", UpdatePlanInput{EndDate: &end})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestPlanService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	svc, m := newPlanService()
	m.plans.On("GetByID", ctx, "plan-1").Return(testPlan(), nil).Once()
	m.workouts.On("DeleteByPlanID", ctx, "plan-1").Return(int64(12), nil).Once()
	m.runs.On("DeleteByPlanID", ctx, "plan-1").Return(int64(3), nil).Once()
	m.plans.On("Delete", ctx, "plan-1").Return(nil).Once()

	require.NoError(t, svc.Delete(ctx, athlete, "plan-1"))
	m.plans.AssertExpectations(t)
	m.workouts.AssertExpectations(t)
	m.runs.AssertExpectations(t)
}

func TestPlanService_ListForOwner(t *testing.T) {
	ctx := context.Background()
	svc, m := newPlanService()
	m.plans.On("ListByOwner", ctx, athlete.UserID, 0, maxPlanPageSize).Return(nil, nil).Once()

	plans, err := svc.ListForOwner(ctx, athlete, 0, 1000)
	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)

	_, err = svc.ListForOwner(ctx, athlete, -1, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alcyxob/run-trainer/internal/domain"
)

// WorkoutRepository is a mock of repository.WorkoutRepository.
type WorkoutRepository struct {
	mock.Mock
}

func (m *WorkoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	args := m.Called(ctx, workout)
	return args.String(0), args.Error(1)
}

func (m *WorkoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	args := m.Called(ctx, id)
	w, _ := args.Get(0).(*domain.Workout)
	return w, args.Error(1)
}

func (m *WorkoutRepository) GetByPlanID(ctx context.Context, planID string) ([]domain.Workout, error) {
	args := m.Called(ctx, planID)
	ws, _ := args.Get(0).([]domain.Workout)
	return ws, args.Error(1)
}

func (m *WorkoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	return m.Called(ctx, workout).Error(0)
}

func (m *WorkoutRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *WorkoutRepository) DeleteByPlanID(ctx context.Context, planID string) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

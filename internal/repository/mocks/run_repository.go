package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alcyxob/run-trainer/internal/domain"
)

// RunRepository is a mock of repository.RunRepository.
type RunRepository struct {
	mock.Mock
}

func (m *RunRepository) Create(ctx context.Context, run *domain.Run) (string, error) {
	args := m.Called(ctx, run)
	return args.String(0), args.Error(1)
}

func (m *RunRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*domain.Run)
	return r, args.Error(1)
}

func (m *RunRepository) GetByPlanID(ctx context.Context, planID string) ([]domain.Run, error) {
	args := m.Called(ctx, planID)
	runs, _ := args.Get(0).([]domain.Run)
	return runs, args.Error(1)
}

func (m *RunRepository) GetByExternalID(ctx context.Context, planID, externalID string) (*domain.Run, error) {
	args := m.Called(ctx, planID, externalID)
	r, _ := args.Get(0).(*domain.Run)
	return r, args.Error(1)
}

func (m *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	return m.Called(ctx, run).Error(0)
}

func (m *RunRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RunRepository) DeleteByPlanID(ctx context.Context, planID string) (int64, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(int64), args.Error(1)
}

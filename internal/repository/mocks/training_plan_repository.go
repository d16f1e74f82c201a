package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"alcyxob/run-trainer/internal/domain"
)

// TrainingPlanRepository is a mock of repository.TrainingPlanRepository.
type TrainingPlanRepository struct {
	mock.Mock
}

func (m *TrainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (string, error) {
	args := m.Called(ctx, plan)
	return args.String(0), args.Error(1)
}

func (m *TrainingPlanRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*domain.TrainingPlan)
	return p, args.Error(1)
}

func (m *TrainingPlanRepository) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]domain.TrainingPlan, error) {
	args := m.Called(ctx, ownerID, skip, limit)
	plans, _ := args.Get(0).([]domain.TrainingPlan)
	return plans, args.Error(1)
}

func (m *TrainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	return m.Called(ctx, plan).Error(0)
}

func (m *TrainingPlanRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

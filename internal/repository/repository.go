package repository

import (
	"context"

	"alcyxob/run-trainer/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// TrainingPlanRepository defines the interface for interacting with training plan data.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (string, error)
	GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error)
	// ListByOwner returns the owner's plans, newest first.
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, plan *domain.TrainingPlan) error
	Delete(ctx context.Context, id string) error
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Workout, error)
	// GetByPlanID returns every workout of the plan ordered by scheduled date.
	GetByPlanID(ctx context.Context, planID string) ([]domain.Workout, error)
	Update(ctx context.Context, workout *domain.Workout) error
	Delete(ctx context.Context, id string) error
	DeleteByPlanID(ctx context.Context, planID string) (int64, error)
}

// RunRepository defines the interface for interacting with logged runs.
type RunRepository interface {
	Create(ctx context.Context, run *domain.Run) (string, error)
	GetByID(ctx context.Context, id string) (*domain.Run, error)
	// GetByPlanID returns every run of the plan ordered by date.
	GetByPlanID(ctx context.Context, planID string) ([]domain.Run, error)
	GetByExternalID(ctx context.Context, planID, externalID string) (*domain.Run, error)
	Update(ctx context.Context, run *domain.Run) error
	Delete(ctx context.Context, id string) error
	DeleteByPlanID(ctx context.Context, planID string) (int64, error)
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

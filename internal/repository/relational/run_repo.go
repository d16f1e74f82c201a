package relational

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
)

type runRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a gorm-backed run repository.
func NewRunRepository(db *gorm.DB) repository.RunRepository {
	return &runRepository{db: db}
}

// Create inserts a run. The (plan_id, external_id) unique index rejects a
// second import of the same external activity; NULL external ids never collide.
func (r *runRepository) Create(ctx context.Context, run *domain.Run) (string, error) {
	if run.PlanID == "" {
		return "", errors.New("run requires planId")
	}
	run.ID = uuid.NewString()
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toRunModel(run)).Error; err != nil {
		return "", translate(err)
	}
	return run.ID, nil
}

func (r *runRepository) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *runRepository) GetByExternalID(ctx context.Context, planID, externalID string) (*domain.Run, error) {
	return r.first(ctx, "plan_id = ? AND external_id = ?", planID, externalID)
}

func (r *runRepository) first(ctx context.Context, query string, args ...any) (*domain.Run, error) {
	var m runModel
	if err := r.db.WithContext(ctx).Where(query, args...).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	run := m.toDomain()
	return &run, nil
}

func (r *runRepository) GetByPlanID(ctx context.Context, planID string) ([]domain.Run, error) {
	var models []runModel
	err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("date ASC").Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	runs := make([]domain.Run, 0, len(models))
	for i := range models {
		runs = append(runs, models[i].toDomain())
	}
	return runs, nil
}

func (r *runRepository) Update(ctx context.Context, run *domain.Run) error {
	if run.ID == "" {
		return errors.New("run ID is required for update")
	}
	run.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&runModel{}).Where("id = ?", run.ID).Updates(map[string]any{
		"workout_id": run.WorkoutID,
		"distance":   run.Distance,
		"pace":       run.Pace,
		"date":       datatypes.Date(run.Date),
		"notes":      run.Notes,
		"updated_at": run.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *runRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&runModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *runRepository) DeleteByPlanID(ctx context.Context, planID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("plan_id = ?", planID).Delete(&runModel{})
	return result.RowsAffected, result.Error
}

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

type trainingPlanRepository struct {
	db *gorm.DB
}

// NewTrainingPlanRepository creates a gorm-backed plan repository.
func NewTrainingPlanRepository(db *gorm.DB) repository.TrainingPlanRepository {
	return &trainingPlanRepository{db: db}
}

func (r *trainingPlanRepository) Create(ctx context.Context, plan *domain.TrainingPlan) (string, error) {
	if plan.OwnerID == "" {
		return "", errors.New("training plan requires ownerId")
	}
	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toPlanModel(plan)).Error; err != nil {
		return "", translate(err)
	}
	return plan.ID, nil
}

func (r *trainingPlanRepository) GetByID(ctx context.Context, id string) (*domain.TrainingPlan, error) {
	var m planModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return m.toDomain(), nil
}

func (r *trainingPlanRepository) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]domain.TrainingPlan, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at DESC")
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var models []planModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}
	plans := make([]domain.TrainingPlan, 0, len(models))
	for i := range models {
		plans = append(plans, *models[i].toDomain())
	}
	return plans, nil
}

func (r *trainingPlanRepository) Update(ctx context.Context, plan *domain.TrainingPlan) error {
	if plan.ID == "" {
		return errors.New("training plan ID is required for update")
	}
	plan.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&planModel{}).Where("id = ?", plan.ID).Updates(map[string]any{
		"name":        plan.Name,
		"description": plan.Description,
		"start_date":  datatypes.Date(plan.StartDate),
		"end_date":    datatypes.Date(plan.EndDate),
		"status":      string(plan.Status),
		"updated_at":  plan.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *trainingPlanRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&planModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

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

type workoutRepository struct {
	db *gorm.DB
}

// NewWorkoutRepository creates a gorm-backed workout repository.
func NewWorkoutRepository(db *gorm.DB) repository.WorkoutRepository {
	return &workoutRepository{db: db}
}

func (r *workoutRepository) Create(ctx context.Context, workout *domain.Workout) (string, error) {
	if workout.TrainingPlanID == "" {
		return "", errors.New("workout requires trainingPlanId")
	}
	workout.ID = uuid.NewString()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(toWorkoutModel(workout)).Error; err != nil {
		return "", translate(err)
	}
	return workout.ID, nil
}

func (r *workoutRepository) GetByID(ctx context.Context, id string) (*domain.Workout, error) {
	var m workoutModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, translate(err)
	}
	w := m.toDomain()
	return &w, nil
}

func (r *workoutRepository) GetByPlanID(ctx context.Context, planID string) ([]domain.Workout, error) {
	var models []workoutModel
	err := r.db.WithContext(ctx).
		Where("training_plan_id = ?", planID).
		Order("scheduled_date ASC").Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	workouts := make([]domain.Workout, 0, len(models))
	for i := range models {
		workouts = append(workouts, models[i].toDomain())
	}
	return workouts, nil
}

// Update overwrites the mutable fields. Nil pace bounds are written as NULL.
func (r *workoutRepository) Update(ctx context.Context, workout *domain.Workout) error {
	if workout.ID == "" {
		return errors.New("workout ID is required for update")
	}
	workout.UpdatedAt = time.Now().UTC()

	result := r.db.WithContext(ctx).Model(&workoutModel{}).Where("id = ?", workout.ID).Updates(map[string]any{
		"name":             workout.Name,
		"workout_type":     string(workout.WorkoutType),
		"planned_distance": workout.PlannedDistance,
		"target_pace_min":  workout.TargetPaceMin,
		"target_pace_max":  workout.TargetPaceMax,
		"scheduled_date":   datatypes.Date(workout.ScheduledDate),
		"notes":            workout.Notes,
		"updated_at":       workout.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&workoutModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *workoutRepository) DeleteByPlanID(ctx context.Context, planID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("training_plan_id = ?", planID).Delete(&workoutModel{})
	return result.RowsAffected, result.Error
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
)

// WorkoutInput carries the fields of a new workout.
type WorkoutInput struct {
	Name            string
	WorkoutType     domain.WorkoutType
	PlannedDistance float64
	TargetPaceMin   *int
	TargetPaceMax   *int
	ScheduledDate   time.Time
	Notes           string
}

// UpdateWorkoutInput is a partial update. ClearTargetPace removes both pace bounds.
type UpdateWorkoutInput struct {
	Name            *string
	WorkoutType     *domain.WorkoutType
	PlannedDistance *float64
	TargetPaceMin   *int
	TargetPaceMax   *int
	ClearTargetPace bool
	ScheduledDate   *time.Time
	Notes           *string
}

type WorkoutService interface {
	Create(ctx context.Context, actor Actor, planID string, in WorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, actor Actor, workoutID string) (*domain.Workout, error)
	ListForPlan(ctx context.Context, actor Actor, planID string) ([]domain.Workout, error)
	Update(ctx context.Context, actor Actor, workoutID string, in UpdateWorkoutInput) (*domain.Workout, error)
	Delete(ctx context.Context, actor Actor, workoutID string) error

	// CreateForPlan validates and stores a workout for a plan the caller has
	// already authorized. It serves the schedule importer.
	CreateForPlan(ctx context.Context, workout *domain.Workout) (string, error)
}

type workoutService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	log         *logrus.Logger
}

func NewWorkoutService(planRepo repository.TrainingPlanRepository, workoutRepo repository.WorkoutRepository, log *logrus.Logger) WorkoutService {
	return &workoutService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		log:         log,
	}
}

func (s *workoutService) Create(ctx context.Context, actor Actor, planID string, in WorkoutInput) (*domain.Workout, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}

	workout := &domain.Workout{
		TrainingPlanID:  plan.ID,
		Name:            strings.TrimSpace(in.Name),
		WorkoutType:     in.WorkoutType,
		PlannedDistance: in.PlannedDistance,
		TargetPaceMin:   in.TargetPaceMin,
		TargetPaceMax:   in.TargetPaceMax,
		ScheduledDate:   in.ScheduledDate,
		Notes:           in.Notes,
	}
	if _, err := s.CreateForPlan(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) CreateForPlan(ctx context.Context, workout *domain.Workout) (string, error) {
	workout.ScheduledDate = domain.CalendarDate(workout.ScheduledDate)
	if err := ValidateWorkout(workout); err != nil {
		return "", err
	}
	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return "", err
	}
	workout.ID = id
	return id, nil
}

func (s *workoutService) Get(ctx context.Context, actor Actor, workoutID string) (*domain.Workout, error) {
	return s.loadWorkout(ctx, actor, workoutID, false)
}

func (s *workoutService) ListForPlan(ctx context.Context, actor Actor, planID string) ([]domain.Workout, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, false)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	return workouts, nil
}

func (s *workoutService) Update(ctx context.Context, actor Actor, workoutID string, in UpdateWorkoutInput) (*domain.Workout, error) {
	// 1. Load and authorize
	workout, err := s.loadWorkout(ctx, actor, workoutID, true)
	if err != nil {
		return nil, err
	}

	// 2. Apply changes
	if in.Name != nil {
		workout.Name = strings.TrimSpace(*in.Name)
	}
	if in.WorkoutType != nil {
		workout.WorkoutType = *in.WorkoutType
	}
	if in.PlannedDistance != nil {
		workout.PlannedDistance = *in.PlannedDistance
	}
	if in.ClearTargetPace {
		workout.TargetPaceMin = nil
		workout.TargetPaceMax = nil
	}
	if in.TargetPaceMin != nil {
		workout.TargetPaceMin = in.TargetPaceMin
	}
	if in.TargetPaceMax != nil {
		workout.TargetPaceMax = in.TargetPaceMax
	}
	if in.ScheduledDate != nil {
		workout.ScheduledDate = domain.CalendarDate(*in.ScheduledDate)
	}
	if in.Notes != nil {
		workout.Notes = *in.Notes
	}

	// 3. Validate the merged workout and persist
	if err := ValidateWorkout(workout); err != nil {
		return nil, err
	}
	if err := s.workoutRepo.Update(ctx, workout); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return workout, nil
}

func (s *workoutService) Delete(ctx context.Context, actor Actor, workoutID string) error {
	workout, err := s.loadWorkout(ctx, actor, workoutID, true)
	if err != nil {
		return err
	}
	if err := s.workoutRepo.Delete(ctx, workout.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// loadWorkout fetches a workout and checks the actor's access to its plan.
func (s *workoutService) loadWorkout(ctx context.Context, actor Actor, workoutID string, write bool) (*domain.Workout, error) {
	if workoutID == "" {
		return nil, invalid("workoutId", "is required")
	}
	workout, err := s.workoutRepo.GetByID(ctx, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	if _, err := loadPlan(ctx, s.planRepo, actor, workout.TrainingPlanID, write); err != nil {
		return nil, err
	}
	return workout, nil
}

// ValidateWorkout checks a workout against the domain limits without storing it.
func ValidateWorkout(w *domain.Workout) error {
	if w.Name == "" {
		return invalid("name", "is required")
	}
	if !w.WorkoutType.Valid() {
		return invalid("workoutType", "unknown workout type %q", w.WorkoutType)
	}
	if w.ScheduledDate.IsZero() {
		return invalid("scheduledDate", "is required")
	}
	if w.WorkoutType == domain.WorkoutTypeRest {
		if w.PlannedDistance != 0 {
			return invalid("plannedDistance", "must be 0 for a rest day")
		}
		if w.HasTargetPace() {
			return invalid("targetPace", "a rest day has no target pace")
		}
		return nil
	}
	if w.PlannedDistance < domain.MinDistance || w.PlannedDistance > domain.MaxDistance {
		return invalid("plannedDistance", "must be between %.1f and %.0f miles", domain.MinDistance, domain.MaxDistance)
	}
	return validatePaceRange(w.TargetPaceMin, w.TargetPaceMax)
}

func validatePaceRange(lo, hi *int) error {
	if lo == nil && hi == nil {
		return nil
	}
	if lo == nil || hi == nil {
		return invalid("targetPace", "both minimum and maximum pace are required")
	}
	if err := validatePace("targetPaceMin", *lo); err != nil {
		return err
	}
	if err := validatePace("targetPaceMax", *hi); err != nil {
		return err
	}
	if *lo > *hi {
		return invalid("targetPace", "minimum pace must not exceed maximum pace")
	}
	return nil
}

func validatePace(field string, pace int) error {
	if pace < domain.MinPace || pace > domain.MaxPace {
		return invalid(field, "must be between %d and %d seconds per mile", domain.MinPace, domain.MaxPace)
	}
	return nil
}

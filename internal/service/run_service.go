package service

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
)

// RunInput carries a manually logged run. Distance is miles, Pace seconds per mile.
type RunInput struct {
	WorkoutID *string
	Distance  float64
	Pace      int
	Date      time.Time
	Notes     string
}

// UpdateRunInput is a partial update. UnlinkWorkout clears the explicit workout link.
type UpdateRunInput struct {
	WorkoutID     *string
	UnlinkWorkout bool
	Distance      *float64
	Pace          *int
	Date          *time.Time
	Notes         *string
}

type RunService interface {
	Create(ctx context.Context, actor Actor, planID string, in RunInput) (*domain.Run, error)
	Get(ctx context.Context, actor Actor, runID string) (*domain.Run, error)
	ListForPlan(ctx context.Context, actor Actor, planID string) ([]domain.Run, error)
	Update(ctx context.Context, actor Actor, runID string, in UpdateRunInput) (*domain.Run, error)
	Delete(ctx context.Context, actor Actor, runID string) error

	// CreateForPlan validates and stores a run for an already authorized plan.
	// Runs with an external id already present in the plan fail with ErrDuplicateRun.
	CreateForPlan(ctx context.Context, run *domain.Run) (string, error)
}

type runService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	runRepo     repository.RunRepository
	log         *logrus.Logger
}

func NewRunService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runRepo repository.RunRepository,
	log *logrus.Logger,
) RunService {
	return &runService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		runRepo:     runRepo,
		log:         log,
	}
}

func (s *runService) Create(ctx context.Context, actor Actor, planID string, in RunInput) (*domain.Run, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}
	run := &domain.Run{
		PlanID:    plan.ID,
		WorkoutID: in.WorkoutID,
		Distance:  in.Distance,
		Pace:      in.Pace,
		Date:      in.Date,
		Source:    domain.RunSourceManual,
		Notes:     in.Notes,
	}
	if _, err := s.CreateForPlan(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

func (s *runService) CreateForPlan(ctx context.Context, run *domain.Run) (string, error) {
	// 1. Validate
	run.Date = domain.CalendarDate(run.Date)
	if run.Source == "" {
		run.Source = domain.RunSourceManual
	}
	if err := validateRun(run); err != nil {
		return "", err
	}
	if err := s.checkWorkoutLink(ctx, run); err != nil {
		return "", err
	}

	// 2. De-duplicate external activities
	if run.ExternalID != nil {
		_, err := s.runRepo.GetByExternalID(ctx, run.PlanID, *run.ExternalID)
		if err == nil {
			return "", ErrDuplicateRun
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return "", err
		}
	}

	// 3. Persist. The unique index catches a concurrent duplicate.
	id, err := s.runRepo.Create(ctx, run)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrDuplicateRun
		}
		return "", err
	}
	run.ID = id
	return id, nil
}

func (s *runService) Get(ctx context.Context, actor Actor, runID string) (*domain.Run, error) {
	return s.loadRun(ctx, actor, runID, false)
}

func (s *runService) ListForPlan(ctx context.Context, actor Actor, planID string) ([]domain.Run, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, false)
	if err != nil {
		return nil, err
	}
	runs, err := s.runRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []domain.Run{}
	}
	return runs, nil
}

func (s *runService) Update(ctx context.Context, actor Actor, runID string, in UpdateRunInput) (*domain.Run, error) {
	run, err := s.loadRun(ctx, actor, runID, true)
	if err != nil {
		return nil, err
	}

	if in.UnlinkWorkout {
		run.WorkoutID = nil
	}
	if in.WorkoutID != nil {
		run.WorkoutID = in.WorkoutID
	}
	if in.Distance != nil {
		run.Distance = *in.Distance
	}
	if in.Pace != nil {
		run.Pace = *in.Pace
	}
	if in.Date != nil {
		run.Date = domain.CalendarDate(*in.Date)
	}
	if in.Notes != nil {
		run.Notes = *in.Notes
	}

	if err := validateRun(run); err != nil {
		return nil, err
	}
	if err := s.checkWorkoutLink(ctx, run); err != nil {
		return nil, err
	}
	if err := s.runRepo.Update(ctx, run); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return run, nil
}

func (s *runService) Delete(ctx context.Context, actor Actor, runID string) error {
	run, err := s.loadRun(ctx, actor, runID, true)
	if err != nil {
		return err
	}
	if err := s.runRepo.Delete(ctx, run.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrRunNotFound
		}
		return err
	}
	return nil
}

func (s *runService) loadRun(ctx context.Context, actor Actor, runID string, write bool) (*domain.Run, error) {
	if runID == "" {
		return nil, invalid("runId", "is required")
	}
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	if _, err := loadPlan(ctx, s.planRepo, actor, run.PlanID, write); err != nil {
		return nil, err
	}
	return run, nil
}

// checkWorkoutLink requires an explicitly linked workout to belong to the run's plan.
func (s *runService) checkWorkoutLink(ctx context.Context, run *domain.Run) error {
	if run.WorkoutID == nil {
		return nil
	}
	workout, err := s.workoutRepo.GetByID(ctx, *run.WorkoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return invalid("workoutId", "workout does not exist")
		}
		return err
	}
	if workout.TrainingPlanID != run.PlanID {
		return invalid("workoutId", "workout belongs to a different plan")
	}
	return nil
}

func validateRun(r *domain.Run) error {
	if r.Distance < domain.MinDistance || r.Distance > domain.MaxDistance {
		return invalid("distance", "must be between %.1f and %.0f miles", domain.MinDistance, domain.MaxDistance)
	}
	if err := validatePace("pace", r.Pace); err != nil {
		return err
	}
	if r.Date.IsZero() {
		return invalid("date", "is required")
	}
	switch r.Source {
	case domain.RunSourceManual, domain.RunSourceStrava:
	default:
		return invalid("source", "unknown source %q", r.Source)
	}
	return nil
}

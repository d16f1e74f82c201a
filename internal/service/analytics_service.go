package service

import (
	"context"
	"errors"

	"alcyxob/run-trainer/internal/adherence"
	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
)

type AnalyticsService interface {
	PlanProgress(ctx context.Context, actor Actor, planID string) (*adherence.Progress, error)
	// WeeklySummary reports one plan week; a nil week means week 1.
	WeeklySummary(ctx context.Context, actor Actor, planID string, week *int) (*adherence.WeeklySummary, error)
}

type analyticsService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	runRepo     repository.RunRepository
}

func NewAnalyticsService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runRepo repository.RunRepository,
) AnalyticsService {
	return &analyticsService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		runRepo:     runRepo,
	}
}

func (s *analyticsService) PlanProgress(ctx context.Context, actor Actor, planID string) (*adherence.Progress, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, false)
	if err != nil {
		return nil, err
	}
	workouts, runs, err := s.snapshot(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	progress := adherence.PlanProgress(workouts, runs)
	return &progress, nil
}

func (s *analyticsService) WeeklySummary(ctx context.Context, actor Actor, planID string, week *int) (*adherence.WeeklySummary, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, false)
	if err != nil {
		return nil, err
	}
	w := 1
	if week != nil {
		w = *week
	}
	if w < 1 || w > plan.DurationWeeks() {
		return nil, invalid("week", "must be between 1 and %d", plan.DurationWeeks())
	}

	workouts, runs, err := s.snapshot(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	summary, err := adherence.Weekly(plan, w, workouts, runs)
	if errors.Is(err, adherence.ErrWeekOutOfRange) {
		return nil, invalid("week", "must be between 1 and %d", plan.DurationWeeks())
	}
	return summary, err
}

func (s *analyticsService) snapshot(ctx context.Context, planID string) ([]domain.Workout, []domain.Run, error) {
	workouts, err := s.workoutRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	runs, err := s.runRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	return workouts, runs, nil
}

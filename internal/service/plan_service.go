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

const (
	defaultPlanPageSize = 20
	maxPlanPageSize     = 100
)

// CreatePlanInput carries the fields of a new plan. Dates are calendar dates.
type CreatePlanInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      domain.PlanStatus // DRAFT when empty
}

// UpdatePlanInput is a partial update; nil fields are left unchanged.
type UpdatePlanInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *domain.PlanStatus
}

type PlanService interface {
	Create(ctx context.Context, actor Actor, in CreatePlanInput) (*domain.TrainingPlan, error)
	Get(ctx context.Context, actor Actor, planID string) (*domain.TrainingPlan, error)
	ListForOwner(ctx context.Context, actor Actor, skip, limit int) ([]domain.TrainingPlan, error)
	Update(ctx context.Context, actor Actor, planID string, in UpdatePlanInput) (*domain.TrainingPlan, error)
	// Delete removes the plan with its workouts and runs.
	Delete(ctx context.Context, actor Actor, planID string) error
}

type planService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	runRepo     repository.RunRepository
	log         *logrus.Logger
}

func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	runRepo repository.RunRepository,
	log *logrus.Logger,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		runRepo:     runRepo,
		log:         log,
	}
}

func (s *planService) Create(ctx context.Context, actor Actor, in CreatePlanInput) (*domain.TrainingPlan, error) {
	// 1. Only athletes own plans
	if actor.Role != domain.RoleAthlete {
		return nil, ErrPlanAccessDenied
	}

	// 2. Validate
	plan := &domain.TrainingPlan{
		OwnerID:     actor.UserID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartDate:   domain.CalendarDate(in.StartDate),
		EndDate:     domain.CalendarDate(in.EndDate),
		Status:      in.Status,
	}
	if plan.Status == "" {
		plan.Status = domain.PlanStatusDraft
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	// 3. Persist
	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	s.log.WithFields(logrus.Fields{"plan_id": id, "owner_id": actor.UserID}).Info("training plan created")
	return plan, nil
}

func (s *planService) Get(ctx context.Context, actor Actor, planID string) (*domain.TrainingPlan, error) {
	return loadPlan(ctx, s.planRepo, actor, planID, false)
}

func (s *planService) ListForOwner(ctx context.Context, actor Actor, skip, limit int) ([]domain.TrainingPlan, error) {
	if skip < 0 {
		return nil, invalid("skip", "must not be negative")
	}
	if limit <= 0 {
		limit = defaultPlanPageSize
	}
	if limit > maxPlanPageSize {
		limit = maxPlanPageSize
	}
	plans, err := s.planRepo.ListByOwner(ctx, actor.UserID, skip, limit)
	if err != nil {
		return nil, err
	}
	if plans == nil {
		plans = []domain.TrainingPlan{}
	}
	return plans, nil
}

func (s *planService) Update(ctx context.Context, actor Actor, planID string, in UpdatePlanInput) (*domain.TrainingPlan, error) {
	// 1. Load and authorize
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}

	// 2. Apply the partial update and re-validate the result
	if in.Name != nil {
		plan.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if in.StartDate != nil {
		plan.StartDate = domain.CalendarDate(*in.StartDate)
	}
	if in.EndDate != nil {
		plan.EndDate = domain.CalendarDate(*in.EndDate)
	}
	if in.Status != nil {
		plan.Status = *in.Status
	}
	if err := validatePlan(plan); err != nil {
		return nil, err
	}

	// 3. Persist
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, actor Actor, planID string) error {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return err
	}

	// Children first, so a failure never leaves orphans behind a deleted plan.
	workouts, err := s.workoutRepo.DeleteByPlanID(ctx, plan.ID)
	if err != nil {
		return err
	}
	runs, err := s.runRepo.DeleteByPlanID(ctx, plan.ID)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, plan.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	s.log.WithFields(logrus.Fields{
		"plan_id":  plan.ID,
		"workouts": workouts,
		"runs":     runs,
	}).Info("training plan deleted")
	return nil
}

func validatePlan(p *domain.TrainingPlan) error {
	if p.Name == "" {
		return invalid("name", "is required")
	}
	if len(p.Name) > domain.MaxPlanNameLen {
		return invalid("name", "must be at most %d characters", domain.MaxPlanNameLen)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return invalid("startDate", "start and end dates are required")
	}
	days := p.DurationDays()
	if days < domain.MinPlanDays {
		return invalid("endDate", "must be after the start date")
	}
	if days > domain.MaxPlanDays {
		return invalid("endDate", "plan cannot span more than %d days", domain.MaxPlanDays)
	}
	if !p.Status.Valid() {
		return invalid("status", "unknown status %q", p.Status)
	}
	return nil
}

// loadPlan fetches a plan and checks the actor's access to it.
func loadPlan(ctx context.Context, repo repository.TrainingPlanRepository, actor Actor, planID string, write bool) (*domain.TrainingPlan, error) {
	if planID == "" {
		return nil, invalid("planId", "is required")
	}
	plan, err := repo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	allowed := actor.canRead(plan)
	if write {
		allowed = actor.canWrite(plan)
	}
	if !allowed {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

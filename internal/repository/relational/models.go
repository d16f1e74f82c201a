package relational

import (
	"time"

	"gorm.io/datatypes"

	"alcyxob/run-trainer/internal/domain"
)

type userModel struct {
	ID           string `gorm:"primaryKey;size:36"`
	Name         string `gorm:"size:255;not null"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"size:32;not null;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

func toUserModel(u *domain.User) *userModel {
	return &userModel{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (m *userModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

type planModel struct {
	ID          string         `gorm:"primaryKey;size:36"`
	OwnerID     string         `gorm:"size:36;not null;index"`
	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text"`
	StartDate   datatypes.Date `gorm:"not null"`
	EndDate     datatypes.Date `gorm:"not null"`
	Status      string         `gorm:"size:32;not null;index"`
	CreatedAt   time.Time      `gorm:"index"`
	UpdatedAt   time.Time
}

func (planModel) TableName() string { return "training_plans" }

func toPlanModel(p *domain.TrainingPlan) *planModel {
	return &planModel{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   datatypes.Date(p.StartDate),
		EndDate:     datatypes.Date(p.EndDate),
		Status:      string(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (m *planModel) toDomain() *domain.TrainingPlan {
	return &domain.TrainingPlan{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: m.Description,
		StartDate:   domain.CalendarDate(time.Time(m.StartDate)),
		EndDate:     domain.CalendarDate(time.Time(m.EndDate)),
		Status:      domain.PlanStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type workoutModel struct {
	ID              string         `gorm:"primaryKey;size:36"`
	TrainingPlanID  string         `gorm:"size:36;not null;index:idx_workouts_plan_date,priority:1"`
	Name            string         `gorm:"size:255;not null"`
	WorkoutType     string         `gorm:"size:32;not null"`
	PlannedDistance float64        `gorm:"not null"`
	TargetPaceMin   *int
	TargetPaceMax   *int
	ScheduledDate   datatypes.Date `gorm:"not null;index:idx_workouts_plan_date,priority:2"`
	Notes           string         `gorm:"type:text"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (workoutModel) TableName() string { return "workouts" }

func toWorkoutModel(w *domain.Workout) *workoutModel {
	return &workoutModel{
		ID:              w.ID,
		TrainingPlanID:  w.TrainingPlanID,
		Name:            w.Name,
		WorkoutType:     string(w.WorkoutType),
		PlannedDistance: w.PlannedDistance,
		TargetPaceMin:   w.TargetPaceMin,
		TargetPaceMax:   w.TargetPaceMax,
		ScheduledDate:   datatypes.Date(w.ScheduledDate),
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func (m *workoutModel) toDomain() domain.Workout {
	return domain.Workout{
		ID:              m.ID,
		TrainingPlanID:  m.TrainingPlanID,
		Name:            m.Name,
		WorkoutType:     domain.WorkoutType(m.WorkoutType),
		PlannedDistance: m.PlannedDistance,
		TargetPaceMin:   m.TargetPaceMin,
		TargetPaceMax:   m.TargetPaceMax,
		ScheduledDate:   domain.CalendarDate(time.Time(m.ScheduledDate)),
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

type runModel struct {
	ID         string         `gorm:"primaryKey;size:36"`
	PlanID     string         `gorm:"size:36;not null;index:idx_runs_plan_date,priority:1;uniqueIndex:idx_runs_plan_external,priority:1"`
	WorkoutID  *string        `gorm:"size:36;index"`
	Distance   float64        `gorm:"not null"`
	Pace       int            `gorm:"not null"`
	Date       datatypes.Date `gorm:"not null;index:idx_runs_plan_date,priority:2"`
	Source     string         `gorm:"size:16;not null"`
	Notes      string         `gorm:"type:text"`
	ExternalID *string        `gorm:"size:64;uniqueIndex:idx_runs_plan_external,priority:2"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (runModel) TableName() string { return "runs" }

func toRunModel(r *domain.Run) *runModel {
	return &runModel{
		ID:         r.ID,
		PlanID:     r.PlanID,
		WorkoutID:  r.WorkoutID,
		Distance:   r.Distance,
		Pace:       r.Pace,
		Date:       datatypes.Date(r.Date),
		Source:     string(r.Source),
		Notes:      r.Notes,
		ExternalID: r.ExternalID,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func (m *runModel) toDomain() domain.Run {
	return domain.Run{
		ID:         m.ID,
		PlanID:     m.PlanID,
		WorkoutID:  m.WorkoutID,
		Distance:   m.Distance,
		Pace:       m.Pace,
		Date:       domain.CalendarDate(time.Time(m.Date)),
		Source:     domain.RunSource(m.Source),
		Notes:      m.Notes,
		ExternalID: m.ExternalID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

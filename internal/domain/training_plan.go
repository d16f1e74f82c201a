// internal/domain/training_plan.go
package domain

import "time"

// PlanStatus is the lifecycle state of a training plan.
type PlanStatus string

const (
	PlanStatusDraft     PlanStatus = "DRAFT"
	PlanStatusActive    PlanStatus = "ACTIVE"
	PlanStatusCompleted PlanStatus = "COMPLETED"
	PlanStatusAbandoned PlanStatus = "ABANDONED"
)

// Valid reports whether s is one of the known plan statuses.
func (s PlanStatus) Valid() bool {
	switch s {
	case PlanStatusDraft, PlanStatusActive, PlanStatusCompleted, PlanStatusAbandoned:
		return true
	}
	return false
}

// TrainingPlan is a dated training program owned by an athlete.
// StartDate is the Monday of week 1; StartDate < EndDate always holds for stored plans.
type TrainingPlan struct {
	ID          string     `bson:"_id,omitempty" json:"id"`
	OwnerID     string     `bson:"ownerId" json:"ownerId"`
	Name        string     `bson:"name" json:"name"` // e.g., "Spring Marathon Block"
	Description string     `bson:"description,omitempty" json:"description,omitempty"`
	StartDate   time.Time  `bson:"startDate" json:"startDate"`
	EndDate     time.Time  `bson:"endDate" json:"endDate"`
	Status      PlanStatus `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// DurationDays is the number of days between start and end date.
func (p *TrainingPlan) DurationDays() int {
	return DaysBetween(p.StartDate, p.EndDate)
}

// DurationWeeks is the number of (possibly partial) weeks the plan spans.
func (p *TrainingPlan) DurationWeeks() int {
	return p.DurationDays()/7 + 1
}

// WeekWindow returns the inclusive calendar window of the given 1-based week.
func (p *TrainingPlan) WeekWindow(week int) (start, end time.Time) {
	start = AddDays(p.StartDate, (week-1)*7)
	return start, AddDays(start, 6)
}

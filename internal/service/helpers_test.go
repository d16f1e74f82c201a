package service

import (
	"time"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/logging"
)

var (
	testLogger = logging.Discard()
	athlete    = Actor{UserID: "athlete-1", Role: domain.RoleAthlete}
	stranger   = Actor{UserID: "athlete-2", Role: domain.RoleAthlete}
	coach      = Actor{UserID: "coach-1", Role: domain.RoleCoach}
)

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

// testPlan starts on Monday 2024-03-04 and spans 12 weeks.
func testPlan() *domain.TrainingPlan {
	return &domain.TrainingPlan{
		ID:        "plan-1",
		OwnerID:   athlete.UserID,
		Name:      "Spring 10K",
		StartDate: date("2024-03-04"),
		EndDate:   date("2024-05-26"),
		Status:    domain.PlanStatusActive,
	}
}

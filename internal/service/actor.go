package service

import "alcyxob/run-trainer/internal/domain"

// Actor is the authenticated caller on whose behalf a service acts.
type Actor struct {
	UserID string
	Role   domain.Role
}

// canRead reports whether the actor may view the plan. Coaches review any plan.
func (a Actor) canRead(plan *domain.TrainingPlan) bool {
	return plan.OwnerID == a.UserID || a.Role == domain.RoleCoach
}

// canWrite reports whether the actor may change the plan or its contents.
func (a Actor) canWrite(plan *domain.TrainingPlan) bool {
	return plan.OwnerID == a.UserID
}

// Package adherence decides which logged runs satisfy scheduled workouts and
// aggregates plan progress and weekly mileage from those decisions.
package adherence

import (
	"math"

	"alcyxob/run-trainer/internal/domain"
)

// DistanceTolerance is the fraction of the planned distance a run may deviate by.
const DistanceTolerance = 0.10

// floatSlack absorbs binary rounding at the exact tolerance boundary.
const floatSlack = 1e-9

// Matches reports whether run satisfies workout: distance within tolerance of the
// plan, pace inside the target range when one is set, and the same calendar date.
// A rest day is never satisfied.
func Matches(run *domain.Run, workout *domain.Workout) bool {
	if run == nil || workout == nil || workout.IsRest() {
		return false
	}
	planned := workout.PlannedDistance
	if math.Abs(run.Distance-planned) > DistanceTolerance*planned+floatSlack {
		return false
	}
	if workout.TargetPaceMin != nil && run.Pace < *workout.TargetPaceMin {
		return false
	}
	if workout.TargetPaceMax != nil && run.Pace > *workout.TargetPaceMax {
		return false
	}
	return domain.SameDate(run.Date, workout.ScheduledDate)
}

// SameDay is the cheap "was there any run that day" check. It is for display
// only and never feeds the adherence percentage.
func SameDay(run *domain.Run, workout *domain.Workout) bool {
	if run == nil || workout == nil {
		return false
	}
	return domain.SameDate(run.Date, workout.ScheduledDate)
}

// eligible reports whether run may be tested against workout. A run explicitly
// linked to a workout is only a candidate for that workout.
func eligible(run *domain.Run, workout *domain.Workout) bool {
	return run.WorkoutID == nil || *run.WorkoutID == workout.ID
}

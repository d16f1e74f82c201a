package domain

import (
	"fmt"
	"time"
)

// WorkoutType is the internal workout vocabulary.
type WorkoutType string

const (
	WorkoutTypeEasy          WorkoutType = "EASY"
	WorkoutTypeTempo         WorkoutType = "TEMPO"
	WorkoutTypeLong          WorkoutType = "LONG"
	WorkoutTypeSpeed         WorkoutType = "SPEED"
	WorkoutTypeRecovery      WorkoutType = "RECOVERY"
	WorkoutTypeCrossTraining WorkoutType = "CROSS_TRAINING"
	WorkoutTypeRest          WorkoutType = "REST"
)

// Valid reports whether t belongs to the internal vocabulary.
func (t WorkoutType) Valid() bool {
	switch t {
	case WorkoutTypeEasy, WorkoutTypeTempo, WorkoutTypeLong, WorkoutTypeSpeed,
		WorkoutTypeRecovery, WorkoutTypeCrossTraining, WorkoutTypeRest:
		return true
	}
	return false
}

// Workout is a scheduled, dated training prescription belonging to a TrainingPlan.
// Distances are miles, target paces are seconds per mile.
type Workout struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	TrainingPlanID  string      `bson:"trainingPlanId" json:"trainingPlanId"`
	Name            string      `bson:"name" json:"name"` // e.g., "Week 3 Sunday Long"
	WorkoutType     WorkoutType `bson:"workoutType" json:"workoutType"`
	PlannedDistance float64     `bson:"plannedDistance" json:"plannedDistance"`
	TargetPaceMin   *int        `bson:"targetPaceMin,omitempty" json:"targetPaceMin,omitempty"`
	TargetPaceMax   *int        `bson:"targetPaceMax,omitempty" json:"targetPaceMax,omitempty"`
	ScheduledDate   time.Time   `bson:"scheduledDate" json:"scheduledDate"`
	Notes           string      `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// IsRest reports whether the workout is a rest day. Zero planned distance counts as rest.
func (w *Workout) IsRest() bool {
	return w.WorkoutType == WorkoutTypeRest || w.PlannedDistance == 0
}

// HasTargetPace reports whether any pace bound is set.
func (w *Workout) HasTargetPace() bool {
	return w.TargetPaceMin != nil || w.TargetPaceMax != nil
}

// PaceRangeString renders the target pace as "M:SS-M:SS/mi", or "" when unset.
func (w *Workout) PaceRangeString() string {
	if w.TargetPaceMin == nil || w.TargetPaceMax == nil {
		return ""
	}
	return fmt.Sprintf("%s-%s/mi", FormatClock(*w.TargetPaceMin), FormatClock(*w.TargetPaceMax))
}

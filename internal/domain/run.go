package domain

import "time"

// RunSource records how a run was logged.
type RunSource string

const (
	RunSourceManual RunSource = "MANUAL"
	RunSourceStrava RunSource = "STRAVA"
)

// Run is a logged, completed activity. Distance is miles, Pace is seconds per mile.
type Run struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	PlanID     string    `bson:"planId" json:"planId"`
	WorkoutID  *string   `bson:"workoutId,omitempty" json:"workoutId,omitempty"` // Explicit link, optional
	Distance   float64   `bson:"distance" json:"distance"`
	Pace       int       `bson:"pace" json:"pace"`
	Date       time.Time `bson:"date" json:"date"`
	Source     RunSource `bson:"source" json:"source"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	ExternalID *string   `bson:"externalId,omitempty" json:"externalId,omitempty"` // e.g. Strava activity id
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

// PaceString renders the pace as "M:SS/mi".
func (r *Run) PaceString() string {
	return FormatClock(r.Pace) + "/mi"
}

// TotalTimeMinutes is the elapsed running time implied by distance and pace.
func (r *Run) TotalTimeMinutes() float64 {
	return r.Distance * float64(r.Pace) / 60
}

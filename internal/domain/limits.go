package domain

// Bounds applied when plans, workouts and runs are created or updated.
const (
	MinDistance = 0.1   // miles
	MaxDistance = 100.0 // miles

	MinPace = 180  // seconds per mile
	MaxPace = 3000 // seconds per mile

	MinPlanDays    = 1
	MaxPlanDays    = 365
	MaxPlanNameLen = 255
)

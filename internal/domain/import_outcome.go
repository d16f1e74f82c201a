package domain

// RowStatus is the per-row result of a schedule import.
type RowStatus string

const (
	RowCreated  RowStatus = "created"
	RowRejected RowStatus = "rejected" // the line parsed as a row but failed the grammar or mapping
	RowFailed   RowStatus = "failed"   // the workout could not be materialized
)

// RowOutcome records what happened to one schedule row.
type RowOutcome struct {
	Line      int       `json:"line"`
	Status    RowStatus `json:"status"`
	Reason    string    `json:"reason,omitempty"`
	WorkoutID string    `json:"workoutId,omitempty"`
}

// ImportOutcome summarizes one import call. CreatedCount + FailedCount equals the
// number of lines recognized as schedule rows.
type ImportOutcome struct {
	PlanID            string       `json:"planId"`
	CreatedCount      int          `json:"createdCount"`
	FailedCount       int          `json:"failedCount"`
	CreatedWorkoutIDs []string     `json:"createdWorkoutIds"`
	Rows              []RowOutcome `json:"rows"`
}

// RecordCreated tallies a materialized row.
func (o *ImportOutcome) RecordCreated(line int, workoutID string) {
	o.CreatedCount++
	o.CreatedWorkoutIDs = append(o.CreatedWorkoutIDs, workoutID)
	o.Rows = append(o.Rows, RowOutcome{Line: line, Status: RowCreated, WorkoutID: workoutID})
}

// RecordRejected tallies a row refused by the parser or the type mapping.
func (o *ImportOutcome) RecordRejected(line int, reason string) {
	o.FailedCount++
	o.Rows = append(o.Rows, RowOutcome{Line: line, Status: RowRejected, Reason: reason})
}

// RecordFailed tallies a row whose workout could not be created.
func (o *ImportOutcome) RecordFailed(line int, reason string) {
	o.FailedCount++
	o.Rows = append(o.Rows, RowOutcome{Line: line, Status: RowFailed, Reason: reason})
}

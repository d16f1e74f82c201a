package schedule

import (
	"time"

	"alcyxob/run-trainer/internal/domain"
)

// Calendar resolves (week, day) positions of a plan into calendar dates.
// Start is taken to be the Monday of week 1; it is not checked.
type Calendar struct {
	Start time.Time
}

func NewCalendar(start time.Time) Calendar {
	return Calendar{Start: domain.CalendarDate(start)}
}

// Date returns Start + (week-1)*7 + day.Ordinal() days. The result is not
// checked against the plan's end date.
func (c Calendar) Date(week int, day Day) time.Time {
	return domain.AddDays(c.Start, (week-1)*7+day.Ordinal())
}

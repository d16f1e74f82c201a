package adherence

import (
	"errors"
	"sort"
	"time"

	"alcyxob/run-trainer/internal/domain"
)

var ErrWeekOutOfRange = errors.New("week number out of range")

// Progress is the plan-level adherence report.
type Progress struct {
	TotalWorkouts        int
	NonRestWorkouts      int
	CompletedWorkouts    int // non-rest workouts satisfied by at least one run
	PendingWorkouts      int
	AdherencePercent     float64
	TotalPlannedDistance float64
	TotalActualDistance  float64
	DaysWithActivity     int // date-only heuristic, display only
}

// PlanProgress computes adherence over a snapshot of a plan's workouts and runs.
// A plan without non-rest workouts has 0% adherence.
func PlanProgress(workouts []domain.Workout, runs []domain.Run) Progress {
	byDate := indexRunsByDate(runs)

	p := Progress{TotalWorkouts: len(workouts)}
	for i := range workouts {
		w := &workouts[i]
		if w.IsRest() {
			continue
		}
		p.NonRestWorkouts++
		p.TotalPlannedDistance += w.PlannedDistance

		sameDay := byDate[domain.CalendarDate(w.ScheduledDate)]
		if len(sameDay) > 0 {
			p.DaysWithActivity++
		}
		for _, r := range sameDay {
			if eligible(r, w) && Matches(r, w) {
				p.CompletedWorkouts++
				break
			}
		}
	}
	for i := range runs {
		p.TotalActualDistance += runs[i].Distance
	}

	p.PendingWorkouts = p.NonRestWorkouts - p.CompletedWorkouts
	if p.NonRestWorkouts > 0 {
		p.AdherencePercent = domain.Round2(float64(p.CompletedWorkouts) / float64(p.NonRestWorkouts) * 100)
	}
	p.TotalPlannedDistance = domain.Round2(p.TotalPlannedDistance)
	p.TotalActualDistance = domain.Round2(p.TotalActualDistance)
	return p
}

func indexRunsByDate(runs []domain.Run) map[time.Time][]*domain.Run {
	idx := make(map[time.Time][]*domain.Run, len(runs))
	for i := range runs {
		d := domain.CalendarDate(runs[i].Date)
		idx[d] = append(idx[d], &runs[i])
	}
	return idx
}

// WeeklySummary is the mileage report of one plan week.
type WeeklySummary struct {
	WeekNumber      int
	StartDate       time.Time
	EndDate         time.Time
	TotalDistance   float64
	RunCount        int
	PlannedDistance float64
	PlannedWorkouts int
	Runs            []domain.Run
}

// Weekly sums the runs dated inside the inclusive window of the given 1-based
// week, whether or not they are linked to a workout. Weeks outside the plan's
// duration return ErrWeekOutOfRange.
func Weekly(plan *domain.TrainingPlan, week int, workouts []domain.Workout, runs []domain.Run) (*WeeklySummary, error) {
	if week < 1 || week > plan.DurationWeeks() {
		return nil, ErrWeekOutOfRange
	}
	start, end := plan.WeekWindow(week)
	s := &WeeklySummary{WeekNumber: week, StartDate: start, EndDate: end, Runs: []domain.Run{}}

	for _, r := range runs {
		if inWindow(r.Date, start, end) {
			s.TotalDistance += r.Distance
			s.RunCount++
			s.Runs = append(s.Runs, r)
		}
	}
	for i := range workouts {
		w := &workouts[i]
		if w.IsRest() || !inWindow(w.ScheduledDate, start, end) {
			continue
		}
		s.PlannedWorkouts++
		s.PlannedDistance += w.PlannedDistance
	}

	sort.SliceStable(s.Runs, func(i, j int) bool { return s.Runs[i].Date.Before(s.Runs[j].Date) })
	s.TotalDistance = domain.Round2(s.TotalDistance)
	s.PlannedDistance = domain.Round2(s.PlannedDistance)
	return s, nil
}

func inWindow(t, start, end time.Time) bool {
	d := domain.CalendarDate(t)
	return !d.Before(start) && !d.After(end)
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/schedule"
	"alcyxob/run-trainer/internal/service"
)

const (
	formatText = "text"
	formatYAML = "yaml"

	dryRunPlanID = "dry-run"
)

const (
	colorAccent    = "#A78BFA"
	colorSecondary = "#B1B8C7"
	colorError     = "#EF4444"
	colorSuccess   = "#22C55E"
	colorWarning   = "#F59E0B"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorAccent))
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorSecondary))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSuccess))
	rejectStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarning))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorError))
)

// ReportRow is one schedule row of a dry run.
type ReportRow struct {
	Line     int                `yaml:"line"`
	Status   domain.RowStatus   `yaml:"status"`
	Date     string             `yaml:"date,omitempty"`
	Weekday  string             `yaml:"weekday,omitempty"`
	Type     domain.WorkoutType `yaml:"type,omitempty"`
	Distance float64            `yaml:"distance_mi,omitempty"`
	Pace     string             `yaml:"pace,omitempty"`
	Reason   string             `yaml:"reason,omitempty"`
}

// Report summarizes a dry-run import.
type Report struct {
	Plan      string              `yaml:"plan,omitempty"`
	StartDate string              `yaml:"start_date"`
	Unit      domain.DistanceUnit `yaml:"unit"`
	Accepted  int                 `yaml:"accepted"`
	Rejected  int                 `yaml:"rejected"`
	Created   int                 `yaml:"created"`
	Failed    int                 `yaml:"failed"`
	Rows      []ReportRow         `yaml:"rows"`
}

// dryRunCreator validates workouts like the server would and keeps them in memory.
type dryRunCreator struct {
	workouts map[string]*domain.Workout
}

func (d *dryRunCreator) CreateForPlan(_ context.Context, w *domain.Workout) (string, error) {
	w.ScheduledDate = domain.CalendarDate(w.ScheduledDate)
	if err := service.ValidateWorkout(w); err != nil {
		return "", err
	}
	id := fmt.Sprintf("%s-%d", dryRunPlanID, len(d.workouts)+1)
	d.workouts[id] = w
	return id, nil
}

// BuildReport parses text and runs the import pipeline against an in-memory creator.
func BuildReport(ctx context.Context, planName, text string, start time.Time, unit domain.DistanceUnit) *Report {
	doc := schedule.ParseDocument(text)
	creator := &dryRunCreator{workouts: make(map[string]*domain.Workout)}
	outcome := service.ImportLines(ctx, creator, dryRunPlanID, start, unit, doc)

	r := &Report{
		Plan:      planName,
		StartDate: domain.CalendarDate(start).Format(domain.DateLayout),
		Unit:      unit,
		Accepted:  doc.Accepted,
		Rejected:  doc.Rejected,
		Created:   outcome.CreatedCount,
		Failed:    outcome.FailedCount,
		Rows:      make([]ReportRow, 0, len(outcome.Rows)),
	}
	for _, row := range outcome.Rows {
		rr := ReportRow{Line: row.Line, Status: row.Status, Reason: row.Reason}
		if w, ok := creator.workouts[row.WorkoutID]; ok {
			rr.Date = w.ScheduledDate.Format(domain.DateLayout)
			rr.Weekday = w.ScheduledDate.Weekday().String()
			rr.Type = w.WorkoutType
			rr.Distance = w.PlannedDistance
			rr.Pace = w.PaceRangeString()
		}
		r.Rows = append(r.Rows, rr)
	}
	return r
}

func writeReport(out io.Writer, r *Report, format string) error {
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case formatText, "":
		_, err := io.WriteString(out, renderText(r))
		return err
	}
	return fmt.Errorf("unknown output format %q (text/yaml)", format)
}

func renderText(r *Report) string {
	var b strings.Builder

	title := "Schedule dry run"
	if r.Plan != "" {
		title += ": " + r.Plan
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf("start %s, distances in %s", r.StartDate, r.Unit)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s %-9s %-10s %-9s %-14s %7s  %s", "LINE", "STATUS", "DATE", "DAY", "TYPE", "MILES", "PACE / REASON")))
	b.WriteString("\n")
	for _, row := range r.Rows {
		var line string
		switch row.Status {
		case domain.RowCreated:
			line = successStyle.Render(fmt.Sprintf("%-5d %-9s %-10s %-9s %-14s %7.2f  %s",
				row.Line, row.Status, row.Date, row.Weekday, row.Type, row.Distance, row.Pace))
		case domain.RowRejected:
			line = rejectStyle.Render(fmt.Sprintf("%-5d %-9s %s", row.Line, row.Status, row.Reason))
		default:
			line = failStyle.Render(fmt.Sprintf("%-5d %-9s %s", row.Line, row.Status, row.Reason))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("accepted %d, rejected %d, created %d, failed %d\n", r.Accepted, r.Rejected, r.Created, r.Failed))
	return b.String()
}

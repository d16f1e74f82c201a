package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/manifest"
	"alcyxob/run-trainer/internal/service"
)

var errRowsFailed = errors.New("some schedule rows could not be imported")

type reportFlags struct {
	format string
	strict bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", formatText, "Output format (text/yaml)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Exit non-zero when any row is rejected or fails")
}

func (f *reportFlags) emit(out io.Writer, r *Report) error {
	if err := writeReport(out, r, f.format); err != nil {
		return err
	}
	if f.strict && r.Failed > 0 {
		return errRowsFailed
	}
	return nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "plantool",
		Short:   "Validate and dry-run training schedule imports",
		Long:    "plantool checks import manifests and previews how a plain-text weekly schedule maps onto dated workouts, without touching a database.",
		Version: version,
		// Usage is noise for domain errors such as a failed strict run.
		SilenceUsage: true,
	}
	root.AddCommand(newValidateCmd(), newParseCmd(), newImportCmd())
	return root
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <manifest.yaml>",
		Short: "Validate an import manifest against its schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}
			plan, err := m.TrainingPlan()
			if err != nil {
				return err
			}
			if _, err := os.Stat(m.ScheduleFile); err != nil {
				return fmt.Errorf("schedule_file: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf(
				"✓ %s is valid: %q, %s to %s (%d weeks), unit %s",
				args[0], plan.Name,
				plan.StartDate.Format(domain.DateLayout), plan.EndDate.Format(domain.DateLayout),
				plan.DurationWeeks(), m.DistanceUnit(),
			)))
			return nil
		},
	}
}

func newParseCmd() *cobra.Command {
	var (
		flags reportFlags
		start string
		unit  string
	)
	cmd := &cobra.Command{
		Use:   "parse <schedule.txt>",
		Short: "Dry-run parse a schedule and print the resolved workouts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate := currentMonday(time.Now())
			if start != "" {
				d, err := domain.ParseDate(start)
				if err != nil {
					return fmt.Errorf("--start: %w", err)
				}
				startDate = d
			}
			u, err := domain.ParseDistanceUnit(unit)
			if err != nil {
				return fmt.Errorf("--unit: %w", err)
			}
			text, err := readSchedule(args[0])
			if err != nil {
				return err
			}
			report := BuildReport(cmd.Context(), "", text, startDate, u)
			return flags.emit(cmd.OutOrStdout(), report)
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "Plan start date YYYY-MM-DD (default: Monday of the current week)")
	cmd.Flags().StringVar(&unit, "unit", string(domain.UnitMiles), "Distance unit of the document (mi/km)")
	flags.register(cmd)
	return cmd
}

func newImportCmd() *cobra.Command {
	var flags reportFlags
	cmd := &cobra.Command{
		Use:   "import <manifest.yaml>",
		Short: "Dry-run the import a manifest describes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := loadManifest(args[0])
			if err != nil {
				return err
			}
			plan, err := m.TrainingPlan()
			if err != nil {
				return err
			}
			text, err := readSchedule(m.ScheduleFile)
			if err != nil {
				return err
			}
			report := BuildReport(cmd.Context(), plan.Name, text, plan.StartDate, m.DistanceUnit())
			return flags.emit(cmd.OutOrStdout(), report)
		},
	}
	flags.register(cmd)
	return cmd
}

func loadManifest(path string) (*manifest.Manifest, error) {
	v, err := manifest.NewValidator()
	if err != nil {
		return nil, err
	}
	return v.Load(path)
}

func readSchedule(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schedule: %w", err)
	}
	if info.Size() > service.MaxScheduleBytes {
		return "", fmt.Errorf("schedule %s exceeds %d bytes", path, service.MaxScheduleBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read schedule: %w", err)
	}
	return string(data), nil
}

// currentMonday is the Monday on or before t.
func currentMonday(t time.Time) time.Time {
	d := domain.CalendarDate(t)
	offset := (int(d.Weekday()) + 6) % 7
	return domain.AddDays(d, -offset)
}

package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alcyxob/run-trainer/internal/domain"
)

func TestValidator_Parse(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{
			name: "complete manifest",
			doc: `
plan:
  name: Spring 10K
  start_date: 2024-03-04
  end_date: 2024-05-26
schedule_file: schedule.txt
unit: km
`,
		},
		{
			name: "quoted dates without unit",
			doc: `
plan:
  name: Spring 10K
  start_date: "2024-03-04"
  end_date: "2024-05-26"
schedule_file: schedule.txt
`,
		},
		{name: "missing schedule file", doc: "plan:\n  name: X\n  start_date: 2024-03-04\n  end_date: 2024-05-26\n", wantErr: true},
		{name: "unknown unit", doc: "plan:\n  name: X\n  start_date: 2024-03-04\n  end_date: 2024-05-26\nschedule_file: s.txt\nunit: furlong\n", wantErr: true},
		{name: "unknown field", doc: "plan:\n  name: X\n  start_date: 2024-03-04\n  end_date: 2024-05-26\nschedule_file: s.txt\nweeks: 12\n", wantErr: true},
		{name: "end before start", doc: "plan:\n  name: X\n  start_date: 2024-03-04\n  end_date: 2024-03-01\nschedule_file: s.txt\n", wantErr: true},
		{name: "bad date", doc: "plan:\n  name: X\n  start_date: March\n  end_date: 2024-03-01\nschedule_file: s.txt\n", wantErr: true},
		{name: "not yaml", doc: "plan: [", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := v.Parse([]byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			start, end, err := m.Dates()
			require.NoError(t, err)
			assert.Equal(t, "2024-03-04", start.Format(domain.DateLayout))
			assert.Equal(t, "2024-05-26", end.Format(domain.DateLayout))
		})
	}
}

func TestValidator_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.yaml")
	doc := "plan:\n  name: Spring 10K\n  start_date: 2024-03-04\n  end_date: 2024-05-26\nschedule_file: schedule.txt\nunit: km\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	v, err := NewValidator()
	require.NoError(t, err)
	m, err := v.Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "schedule.txt"), m.ScheduleFile)
	assert.Equal(t, domain.UnitKilometers, m.DistanceUnit())

	plan, err := m.TrainingPlan()
	require.NoError(t, err)
	assert.Equal(t, "Spring 10K", plan.Name)
	assert.Equal(t, 12, plan.DurationWeeks())
}

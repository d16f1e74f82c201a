package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"alcyxob/run-trainer/internal/domain"
)

const testSchedule = `Spring 10K
Week 1
Monday | Easy | 5 | 5:30-6:00
Tuesday | Rest | - | -
Wednesday | Race | 10 | -
Thursday | Tempo | 200 | -
Friday | Bogus | 3 | -
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(context.Background(), "Spring 10K", testSchedule, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), domain.UnitKilometers)

	assert.Equal(t, "2024-03-04", r.StartDate)
	assert.Equal(t, 4, r.Accepted)
	assert.Equal(t, 1, r.Rejected)
	assert.Equal(t, 2, r.Created)
	assert.Equal(t, 3, r.Failed)
	require.Len(t, r.Rows, 5)

	easy := r.Rows[0]
	assert.Equal(t, domain.RowCreated, easy.Status)
	assert.Equal(t, 3, easy.Line)
	assert.Equal(t, "2024-03-04", easy.Date)
	assert.Equal(t, "Monday", easy.Weekday)
	assert.Equal(t, domain.WorkoutTypeEasy, easy.Type)
	assert.InDelta(t, 3.11, easy.Distance, 0.001)
	assert.NotEmpty(t, easy.Pace)

	assert.Equal(t, domain.WorkoutTypeRest, r.Rows[1].Type)
	assert.Equal(t, domain.RowRejected, r.Rows[2].Status, "race has no internal type")
	assert.Equal(t, domain.RowFailed, r.Rows[3].Status, "over the distance limit")
	assert.Equal(t, domain.RowRejected, r.Rows[4].Status)
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "schedule.txt", testSchedule)

	t.Run("text output", func(t *testing.T) {
		out, err := run(t, "parse", path, "--start", "2024-03-04")
		require.NoError(t, err)
		assert.Contains(t, out, "2024-03-05")
		assert.Contains(t, out, "accepted 4, rejected 1, created 2, failed 3")
	})

	t.Run("yaml output", func(t *testing.T) {
		out, err := run(t, "parse", path, "--start", "2024-03-04", "--format", "yaml")
		require.NoError(t, err)
		var r Report
		require.NoError(t, yaml.Unmarshal([]byte(out), &r))
		assert.Equal(t, 2, r.Created)
		assert.Equal(t, domain.UnitMiles, r.Unit)
	})

	t.Run("strict fails on bad rows", func(t *testing.T) {
		_, err := run(t, "parse", path, "--start", "2024-03-04", "--strict")
		assert.ErrorIs(t, err, errRowsFailed)
	})

	t.Run("bad flags", func(t *testing.T) {
		_, err := run(t, "parse", path, "--start", "04/03/2024")
		assert.Error(t, err)
		_, err = run(t, "parse", path, "--unit", "furlong")
		assert.Error(t, err)
		_, err = run(t, "parse", path, "--format", "xml")
		assert.Error(t, err)
	})
}

func TestManifestCommands(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "schedule.txt", "Week 2\nSunday | Long | 16 | -\n")
	manifestPath := writeFile(t, dir, "plan.yaml", `plan:
  name: Spring 10K
  start_date: "2024-03-04"
  end_date: "2024-05-26"
schedule_file: schedule.txt
unit: km
`)

	t.Run("validate", func(t *testing.T) {
		out, err := run(t, "validate", manifestPath)
		require.NoError(t, err)
		assert.Contains(t, out, "12 weeks")
	})

	t.Run("import", func(t *testing.T) {
		out, err := run(t, "import", manifestPath, "--format", "yaml")
		require.NoError(t, err)
		var r Report
		require.NoError(t, yaml.Unmarshal([]byte(out), &r))
		assert.Equal(t, "Spring 10K", r.Plan)
		require.Len(t, r.Rows, 1)
		assert.Equal(t, "2024-03-17", r.Rows[0].Date)
		assert.InDelta(t, 9.94, r.Rows[0].Distance, 0.001)
	})

	t.Run("missing schedule file", func(t *testing.T) {
		broken := writeFile(t, dir, "broken.yaml", `plan:
  name: X
  start_date: "2024-03-04"
  end_date: "2024-05-26"
schedule_file: missing.txt
`)
		_, err := run(t, "validate", broken)
		assert.Error(t, err)
	})
}

func TestCurrentMonday(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC), "2024-03-04"},
		{time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC), "2024-03-04"},
		{time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), "2024-03-04"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, currentMonday(tt.in).Format(domain.DateLayout))
	}
}

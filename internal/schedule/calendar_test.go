package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendar_Date(t *testing.T) {
	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC) // a Monday
	cal := NewCalendar(start)

	tests := []struct {
		name string
		week int
		day  Day
		want time.Time
	}{
		{"week 1 monday is the start date", 1, Monday, start},
		{"week 1 sunday", 1, Sunday, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)},
		{"week 2 monday", 2, Monday, time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)},
		{"week 4 wednesday crosses month end", 4, Wednesday, time.Date(2024, time.March, 27, 0, 0, 0, 0, time.UTC)},
		{"far beyond the plan is not clamped", 20, Saturday, time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cal.Date(tt.week, tt.day)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			assert.True(t, got.Equal(cal.Date(tt.week, tt.day)), "same inputs give same date")
		})
	}
}

func TestCalendar_StartClockIgnored(t *testing.T) {
	withClock := time.Date(2024, time.March, 4, 18, 45, 0, 0, time.UTC)
	got := NewCalendar(withClock).Date(1, Monday)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDay(t *testing.T) {
	d, ok := ParseDay(" WEDNESDAY ")
	assert.True(t, ok)
	assert.Equal(t, Wednesday, d)
	assert.Equal(t, 2, d.Ordinal())
	assert.Equal(t, "Wednesday", d.String())

	_, ok = ParseDay("Wed")
	assert.False(t, ok)
}

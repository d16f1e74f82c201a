package schedule

import (
	"testing"

	"alcyxob/run-trainer/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestMapImportType(t *testing.T) {
	tests := []struct {
		in      ImportType
		want    domain.WorkoutType
		wantErr error
	}{
		{ImportEasy, domain.WorkoutTypeEasy, nil},
		{ImportTempo, domain.WorkoutTypeTempo, nil},
		{ImportIntervals, domain.WorkoutTypeSpeed, nil},
		{ImportLong, domain.WorkoutTypeLong, nil},
		{ImportRecovery, domain.WorkoutTypeRecovery, nil},
		{ImportRest, domain.WorkoutTypeRest, nil},
		{ImportRace, "", ErrUnmappedType},
		{ImportType("Hills"), "", ErrUnmappedType},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			got, err := MapImportType(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

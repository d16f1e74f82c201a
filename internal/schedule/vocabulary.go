package schedule

import (
	"errors"
	"strings"

	"alcyxob/run-trainer/internal/domain"
)

// ImportType is the workout type vocabulary accepted in schedule documents.
// It is looser than domain.WorkoutType and is translated by MapImportType.
type ImportType string

const (
	ImportEasy      ImportType = "Easy"
	ImportTempo     ImportType = "Tempo"
	ImportIntervals ImportType = "Intervals"
	ImportLong      ImportType = "Long"
	ImportRecovery  ImportType = "Recovery"
	ImportRace      ImportType = "Race"
	ImportRest      ImportType = "Rest"
)

var importTypeByToken = map[string]ImportType{
	"easy":      ImportEasy,
	"tempo":     ImportTempo,
	"intervals": ImportIntervals,
	"long":      ImportLong,
	"recovery":  ImportRecovery,
	"race":      ImportRace,
	"rest":      ImportRest,
	"off":       ImportRest,
}

// importToWorkoutType is the explicit translation table. Race has no internal
// counterpart and is deliberately absent.
var importToWorkoutType = map[ImportType]domain.WorkoutType{
	ImportEasy:      domain.WorkoutTypeEasy,
	ImportTempo:     domain.WorkoutTypeTempo,
	ImportIntervals: domain.WorkoutTypeSpeed,
	ImportLong:      domain.WorkoutTypeLong,
	ImportRecovery:  domain.WorkoutTypeRecovery,
	ImportRest:      domain.WorkoutTypeRest,
}

var ErrUnmappedType = errors.New("unmapped workout type")

// ParseImportType matches a document type token case-insensitively.
func ParseImportType(s string) (ImportType, bool) {
	t, ok := importTypeByToken[strings.ToLower(strings.TrimSpace(s))]
	return t, ok
}

// MapImportType translates a document type into the internal vocabulary.
func MapImportType(t ImportType) (domain.WorkoutType, error) {
	wt, ok := importToWorkoutType[t]
	if !ok {
		return "", ErrUnmappedType
	}
	return wt, nil
}

package domain

import (
	"fmt"
	"math"
	"strings"
)

// DistanceUnit is the unit a document or external source expresses distances in.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "mi"
	UnitKilometers DistanceUnit = "km"
)

const (
	KilometersPerMile = 1.609344
	MilesPerKilometer = 1 / KilometersPerMile
)

// ParseDistanceUnit accepts "mi", "mile(s)", "km", "kilometer(s)" in any case.
func ParseDistanceUnit(s string) (DistanceUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mi", "mile", "miles":
		return UnitMiles, nil
	case "km", "kilometer", "kilometers", "kilometre", "kilometres":
		return UnitKilometers, nil
	}
	return "", fmt.Errorf("unknown distance unit %q", s)
}

// ToMiles converts a distance expressed in u to miles.
func (u DistanceUnit) ToMiles(distance float64) float64 {
	if u == UnitKilometers {
		return distance * MilesPerKilometer
	}
	return distance
}

// PaceToPerMile converts a pace in seconds per u to whole seconds per mile.
func (u DistanceUnit) PaceToPerMile(seconds int) int {
	if u == UnitKilometers {
		return int(math.Round(float64(seconds) * KilometersPerMile))
	}
	return seconds
}

// FormatClock renders whole seconds as "M:SS".
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

package schedule

import "strings"

// Day is a day of the training week. Weeks start on Monday.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var dayByName = map[string]Day{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseDay matches a full weekday name case-insensitively.
func ParseDay(s string) (Day, bool) {
	d, ok := dayByName[strings.ToLower(strings.TrimSpace(s))]
	return d, ok
}

// Ordinal is the day offset within a week, Monday = 0 ... Sunday = 6.
func (d Day) Ordinal() int {
	return int(d)
}

func (d Day) String() string {
	if d < Monday || d > Sunday {
		return "Day(?)"
	}
	return dayNames[d]
}

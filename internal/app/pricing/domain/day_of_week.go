package domain

import (
	"fmt"
	"strings"
)

// DayOfWeek identifies one of the seven weekly pricing slots, Monday first.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// AllDays lists the days in ascending order.
func AllDays() []DayOfWeek {
	return []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

// ParseDayOfWeek accepts full names and three-letter abbreviations, case-insensitively.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if len(in) >= 3 {
		for d := Monday; d <= Sunday; d++ {
			name := strings.ToLower(dayNames[d])
			if in == name || in == name[:3] {
				return d, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: unknown day_of_week %q", ErrMalformedRecord, s)
}

// Valid reports whether d is one of the seven days.
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return dayNames[d]
}

package entry

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// clockPattern matches a zero-padded 24-hour clock time in HH:MM format (e.g., "09:15", "23:59")
var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// ErrInvalidTime is returned when a clock time is not in HH:MM format
var ErrInvalidTime = errors.New("invalid time format: expected HH:MM")

// IsValidTime reports whether s is a 24-hour HH:MM clock time.
// Valid inputs: "00:00", "09:05", "23:59"
// Invalid inputs: "", "9:00", "24:00", "09:60", "09:00:00", "9am"
func IsValidTime(s string) bool {
	return clockPattern.MatchString(s)
}

// ParseClock parses an HH:MM clock time and returns the minutes since midnight.
func ParseClock(s string) (minutes int, err error) {
	matches := clockPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("%w, got %q", ErrInvalidTime, s)
	}

	// The pattern guarantees two digits on each side
	hours, _ := strconv.Atoi(matches[1])
	mins, _ := strconv.Atoi(matches[2])

	return hours*60 + mins, nil
}

// HoursBetween returns the hours worked from start to end on the same day,
// rounded to one decimal place (halves round up).
//
// An end time that is not after the start time yields zero or a negative
// number. Overnight shifts are not wrapped to the next day; callers decide
// how to present such a value.
func HoursBetween(start, end string) (float64, error) {
	startMinutes, err := ParseClock(start)
	if err != nil {
		return 0, err
	}
	endMinutes, err := ParseClock(end)
	if err != nil {
		return 0, err
	}

	// minutes/60 hours, scaled by 10 for one decimal place
	tenths := float64(endMinutes-startMinutes) / 6
	return math.Floor(tenths+0.5) / 10, nil
}

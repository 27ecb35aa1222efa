package common

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var flightTimePattern = regexp.MustCompile(`^\d{1,4}:[0-5]\d$`)

// ParseFlightTime converts an "HH:MM" string to whole minutes.
// A nil or empty value contributes zero, which is not an error: crews leave
// fields blank on no-activity days.
func ParseFlightTime(s *string) (int, error) {
	if s == nil {
		return 0, nil
	}

	v := strings.TrimSpace(*s)
	if v == "" {
		return 0, nil
	}

	if !flightTimePattern.MatchString(v) {
		return 0, fmt.Errorf("invalid flight time %q: expected HH:MM", v)
	}

	parts := strings.SplitN(v, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])

	return hours*60 + minutes, nil
}

// FormatDecimalHours renders accumulated minutes as decimal hours with two
// places, e.g. 90 -> "1.50". Totals are stored in this form.
func FormatDecimalHours(minutes int) string {
	return strconv.FormatFloat(float64(minutes)/60.0, 'f', 2, 64)
}

// IntOrZero dereferences an optional counter delta.
func IntOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

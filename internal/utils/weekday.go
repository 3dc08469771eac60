package utils

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
)

// WeekdayName returns the full English weekday name for t, e.g. "Monday".
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// ParseWeekday accepts full or three-letter weekday names in any case
// and returns the canonical full name.
func ParseWeekday(s string) (string, error) {
	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}
	wd, ok := dayMap[strings.TrimSpace(strings.ToLower(s))]
	if !ok {
		return "", fmt.Errorf("%w: invalid weekday: %s", apperrors.ErrInvalidInput, s)
	}
	return wd.String(), nil
}

var frequencyAliases = map[string][]string{
	"daily":    {"sun", "mon", "tue", "wed", "thu", "fri", "sat"},
	"weekdays": {"mon", "tue", "wed", "thu", "fri"},
	"weekends": {"sat", "sun"},
}

// ParseFrequency parses a comma-separated weekday list into canonical names,
// dropping duplicates while keeping the input order. The aliases daily,
// weekdays and weekends expand in place.
func ParseFrequency(s string) ([]string, error) {
	var days []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		parts := []string{part}
		if alias, ok := frequencyAliases[strings.ToLower(part)]; ok {
			parts = alias
		}
		for _, p := range parts {
			name, err := ParseWeekday(p)
			if err != nil {
				return nil, err
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			days = append(days, name)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: frequency must name at least one weekday", apperrors.ErrInvalidInput)
	}
	return days, nil
}

// MatchesFrequency reports whether date's weekday name is in frequency.
func MatchesFrequency(frequency []string, date time.Time) bool {
	name := WeekdayName(date)
	for _, f := range frequency {
		if f == name {
			return true
		}
	}
	return false
}

package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// ParseDate parses a YYYY-MM-DD string into midnight of that day in loc.
func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (expected YYYY-MM-DD)", apperrors.ErrInvalidInput, dateStr)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// FormatDate formats a time as YYYY-MM-DD. The zero time is rejected so a
// missing date is never silently stored as 0001-01-01.
func FormatDate(t time.Time) (string, error) {
	if t.IsZero() {
		return "", fmt.Errorf("%w: invalid date provided", apperrors.ErrInvalidInput)
	}
	return t.Format(constants.DateFormat), nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(timeStr string) (time.Time, error) {
	return time.Parse(constants.TimeFormat, timeStr)
}

// NormalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM.
func NormalizeTime(timeStr string) (string, error) {
	s := strings.TrimSpace(timeStr)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(constants.TimeFormat), nil
	}
	t, err := ParseTime(s)
	if err != nil {
		return "", fmt.Errorf("%w: invalid time %q (expected HH:MM)", apperrors.ErrInvalidInput, timeStr)
	}
	return t.Format(constants.TimeFormat), nil
}

// ValidateTimeFormat checks if the string matches the standard time format.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfMonth returns the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last day of t's month (at midnight).
func EndOfMonth(t time.Time) time.Time {
	return StartOfMonth(t).AddDate(0, 1, -1)
}

// StartOfWeek returns the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek returns the Saturday on or after t.
func EndOfWeek(t time.Time) time.Time {
	return StartOfWeek(t).AddDate(0, 0, 6)
}

// EachDay calls fn for every day from start to end inclusive.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for d := StartOfDay(start); !d.After(end); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

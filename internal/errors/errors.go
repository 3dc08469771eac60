package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

var (
	// ErrNotAuthenticated is returned when an action needs a session and none is active
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidInput is returned for malformed dates, times, hours and similar input
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a keyed lookup matches no row
	ErrNotFound = errors.New("not found")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Action builds the human-readable message a store records when an action
// fails, e.g. Action("add goal", err) -> "Failed to add goal: <err>".
func Action(action string, err error) string {
	if err == nil {
		return fmt.Sprintf("Failed to %s", action)
	}
	return fmt.Sprintf("Failed to %s: %v", action, err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs a formatted error message and exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	err := fmt.Errorf(format, args...)
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	os.Exit(1)
}

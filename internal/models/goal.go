package models

import (
	"fmt"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Frequency   []string  `json:"frequency"`          // full weekday names, e.g. "Monday"
	StartDate   string    `json:"start_date"`         // YYYY-MM-DD format
	EndDate     string    `json:"end_date,omitempty"` // YYYY-MM-DD format, empty when open-ended
	StartTime   string    `json:"start_time"`         // HH:MM format
	EndTime     string    `json:"end_time"`           // HH:MM format
	CreatedAt   time.Time `json:"created_at"`
}

// IsActiveOn reports whether the goal is scheduled on date: on or after the
// start date, on or before the end date when one is set, and on one of the
// frequency weekdays.
func (g Goal) IsActiveOn(date time.Time) bool {
	day := date.Format(constants.DateFormat)
	if day < g.StartDate {
		return false
	}
	if g.EndDate != "" && day > g.EndDate {
		return false
	}
	return utils.MatchesFrequency(g.Frequency, date)
}

func (g *Goal) Validate() error {
	if g.Title == "" {
		return fmt.Errorf("%w: goal title cannot be empty", apperrors.ErrInvalidInput)
	}
	if len(g.Frequency) == 0 {
		return fmt.Errorf("%w: goal frequency must name at least one weekday", apperrors.ErrInvalidInput)
	}
	for _, day := range g.Frequency {
		if _, err := utils.ParseWeekday(day); err != nil {
			return err
		}
	}
	if _, err := time.Parse(constants.DateFormat, g.StartDate); err != nil {
		return fmt.Errorf("%w: invalid start date (expected YYYY-MM-DD)", apperrors.ErrInvalidInput)
	}
	if g.EndDate != "" {
		if _, err := time.Parse(constants.DateFormat, g.EndDate); err != nil {
			return fmt.Errorf("%w: invalid end date (expected YYYY-MM-DD)", apperrors.ErrInvalidInput)
		}
		if g.EndDate < g.StartDate {
			return fmt.Errorf("%w: end date is before start date", apperrors.ErrInvalidInput)
		}
	}
	if g.StartTime != "" && !utils.ValidateTimeFormat(g.StartTime) {
		return fmt.Errorf("%w: invalid start time (expected HH:MM)", apperrors.ErrInvalidInput)
	}
	if g.EndTime != "" && !utils.ValidateTimeFormat(g.EndTime) {
		return fmt.Errorf("%w: invalid end time (expected HH:MM)", apperrors.ErrInvalidInput)
	}
	return nil
}

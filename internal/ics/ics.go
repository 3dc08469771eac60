// Package ics renders goals as an iCalendar document.
package ics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

const (
	ProductID    = "-//HabitTracker//Calendar Export//EN"
	CalendarName = "HabitTracker"
	uidDomain    = "habittracker"
)

// Build returns a calendar with one weekly recurring event per goal.
// Times are interpreted in loc.
func Build(goals []models.Goal, now time.Time, loc *time.Location) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	cal.SetXWRCalName(CalendarName)

	for _, g := range goals {
		if err := addGoal(cal, g, now, loc); err != nil {
			return "", fmt.Errorf("goal %s: %w", g.ID, err)
		}
	}
	return cal.Serialize(), nil
}

func addGoal(cal *ical.Calendar, g models.Goal, now time.Time, loc *time.Location) error {
	day, err := utils.ParseDate(g.StartDate, loc)
	if err != nil {
		return err
	}
	// DTSTART always counts as an occurrence, so start on the first
	// scheduled weekday.
	for i := 0; i < 7 && !utils.MatchesFrequency(g.Frequency, day); i++ {
		day = day.AddDate(0, 0, 1)
	}

	start, err := at(day, g.StartTime)
	if err != nil {
		return err
	}
	end, err := at(day, g.EndTime)
	if err != nil {
		return err
	}
	if !end.After(start) {
		end = start.Add(time.Hour)
	}

	rule := "FREQ=WEEKLY;BYDAY=" + weekdays(g.Frequency)
	if g.EndDate != "" {
		until, err := utils.ParseDate(g.EndDate, loc)
		if err != nil {
			return err
		}
		until = until.AddDate(0, 0, 1).Add(-time.Second)
		rule += ";UNTIL=" + until.UTC().Format("20060102T150405Z")
	}

	ev := cal.AddEvent(g.ID + "@" + uidDomain)
	ev.SetDtStampTime(now)
	if !g.CreatedAt.IsZero() {
		ev.SetCreatedTime(g.CreatedAt)
	}
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(g.Title)
	if g.Description != "" {
		ev.SetDescription(g.Description)
	}
	ev.AddRrule(rule)
	return nil
}

// at returns day at the HH:MM clock time, or midnight when clock is empty.
func at(day time.Time, clock string) (time.Time, error) {
	if clock == "" {
		return day, nil
	}
	t, err := time.Parse(constants.TimeFormat, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}

// weekdays returns the RRULE BYDAY list, e.g. "MO,WE", in week order.
func weekdays(frequency []string) string {
	var out []string
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if slices.Contains(frequency, wd.String()) {
			out = append(out, strings.ToUpper(wd.String()[:2]))
		}
	}
	return strings.Join(out, ",")
}

// Filename is the attachment name for an export in format.
func Filename(format constants.ExportFormat) string {
	if format == constants.ExportGoogle {
		return "google-calendar.ics"
	}
	return "habittracker-calendar.ics"
}

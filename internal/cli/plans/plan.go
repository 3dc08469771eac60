package plans

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/validation"
)

type PlanAddCmd struct {
	Content string `arg:"" help:"What to do."`
	Start   string `arg:"" help:"Start time (HH:MM)."`
	End     string `arg:"" help:"End time (HH:MM)."`
	Date    string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *PlanAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}

	entry, err := ctx.App.Planner.AddTask(bg, c.Content, c.Start, c.End, date)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Planned %s - %s %s [%s]\n", entry.StartTime, entry.EndTime, entry.Content, entry.ID[:8])
	return nil
}

type PlanListCmd struct {
	Date    string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	ShowIDs bool   `help:"Show full task IDs." name:"show-ids"`
}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	date, err := loadDay(bg, ctx, c.Date)
	if err != nil {
		return err
	}

	entries := ctx.App.Planner.Entries()
	if len(entries) == 0 {
		fmt.Printf("Nothing planned for %s.\n", date)
		return nil
	}

	fmt.Printf("Plan for %s:\n", date)
	for _, e := range entries {
		fmt.Println(formatEntry(e, c.ShowIDs))
	}
	if overlaps := validation.ValidateTimeline(entries).Of(validation.ConflictOverlappingEntries); len(overlaps) > 0 {
		fmt.Println()
		for _, o := range overlaps {
			fmt.Printf("⚠ %s\n", o.Description)
		}
	}
	return nil
}

type PlanDeleteCmd struct {
	ID   string `arg:"" help:"Task ID or unique ID prefix."`
	Date string `short:"d" help:"Date the task is planned on (YYYY-MM-DD). Defaults to today."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := loadDay(bg, ctx, c.Date); err != nil {
		return err
	}

	var match *models.TimelineEntry
	for _, e := range ctx.App.Planner.Entries() {
		if e.ID == c.ID || (!e.IsGoal && strings.HasPrefix(e.ID, c.ID)) {
			if match != nil && match.ID != e.ID {
				return fmt.Errorf("task ID %q is ambiguous", c.ID)
			}
			match = &e
		}
	}
	if match == nil {
		return fmt.Errorf("task not found: %s", c.ID)
	}
	if match.IsGoal {
		return fmt.Errorf("%q comes from a goal; edit or delete the goal instead", match.Content)
	}

	if err := ctx.App.Planner.DeleteTask(bg, match.ID); err != nil {
		return err
	}
	fmt.Printf("✓ Deleted %q\n", match.Content)
	return nil
}

// loadDay fetches goals and then the timeline for the given date, so goal
// entries are merged in.
func loadDay(bg context.Context, ctx *cli.Context, raw string) (string, error) {
	if _, err := ctx.RequireUser(bg); err != nil {
		return "", err
	}
	date, err := ctx.Date(raw)
	if err != nil {
		return "", err
	}
	if err := ctx.App.Goals.FetchGoals(bg); err != nil {
		return "", err
	}
	return date, ctx.App.Planner.FetchTasks(bg, date)
}

func formatEntry(e models.TimelineEntry, showID bool) string {
	span := fmt.Sprintf("%5s - %-5s", e.StartTime, e.EndTime)
	if e.StartTime == "" && e.EndTime == "" {
		span = fmt.Sprintf("%-13s", "all day")
	}
	line := fmt.Sprintf("  %s  %s", span, e.Content)
	if e.IsGoal {
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(e.Color)).Render("●")
		return line + " " + dot
	}
	id := e.ID
	if !showID && len(id) > 8 {
		id = id[:8]
	}
	return line + fmt.Sprintf(" [%s]", id)
}

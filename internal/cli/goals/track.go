package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

// DoneCmd toggles a goal's completion, so running it twice undoes it.
type DoneCmd struct {
	ID   string `arg:"" help:"Goal ID or unique ID prefix."`
	Date string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	goal, err := resolveGoal(bg, ctx, c.ID)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.App.Goals.FetchCompletions(bg, date, date); err != nil {
		return err
	}
	if err := ctx.App.Goals.ToggleCompletion(bg, goal.ID, date); err != nil {
		return err
	}

	if ctx.App.Goals.StatusOf(goal.ID, date) == models.StatusCompleted {
		fmt.Printf("✓ %s completed on %s\n", goal.Title, date)
	} else {
		fmt.Printf("○ %s no longer completed on %s\n", goal.Title, date)
	}
	return nil
}

type MissedCmd struct {
	ID     string `arg:"" help:"Goal ID or unique ID prefix."`
	Date   string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	Reason string `short:"r" help:"Why the goal was missed. Prompted when omitted."`
	Plan   string `short:"p" help:"What to do differently next time."`
}

func (c *MissedCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	goal, err := resolveGoal(bg, ctx, c.ID)
	if err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}

	reason, plan := c.Reason, c.Plan
	if reason == "" {
		if err := missForm(goal, date, &reason, &plan).Run(); err != nil {
			return fmt.Errorf("interactive form error: %w", err)
		}
	}

	miss, err := ctx.App.Goals.MarkMissed(bg, goal.ID, date, strings.TrimSpace(reason), strings.TrimSpace(plan))
	if err != nil {
		return err
	}

	fmt.Printf("✗ %s marked missed on %s\n", goal.Title, miss.MissedDate)
	if miss.ImprovementPlan != "" {
		fmt.Printf("  Next time: %s\n", miss.ImprovementPlan)
	}
	return nil
}

func missForm(goal models.Goal, date string, reason, plan *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(fmt.Sprintf("Missed: %s", goal.Title)).
				Description(date),
			huh.NewText().
				Title("What got in the way?").
				Value(reason),
			huh.NewText().
				Title("What will you do differently?").
				Value(plan),
		),
	)
}

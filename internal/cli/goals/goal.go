package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type GoalAddCmd struct {
	Title       string `arg:"" help:"Goal title."`
	Description string `short:"D" help:"Longer description."`
	Days        string `short:"d" help:"Comma-separated weekdays (or daily, weekdays, weekends) the goal recurs on." default:"daily"`
	Color       string `short:"c" help:"Display color." default:"#3E3EF4"`
	Start       string `short:"s" help:"Start date (YYYY-MM-DD). Defaults to today."`
	End         string `short:"e" help:"Optional end date (YYYY-MM-DD)."`
	StartTime   string `help:"Daily start time (HH:MM)."`
	EndTime     string `help:"Daily end time (HH:MM)."`
}

func (c *GoalAddCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}

	days, err := utils.ParseFrequency(c.Days)
	if err != nil {
		return err
	}
	start, err := ctx.Date(c.Start)
	if err != nil {
		return err
	}
	goal := models.Goal{
		Title:       strings.TrimSpace(c.Title),
		Description: c.Description,
		Color:       c.Color,
		Frequency:   days,
		StartDate:   start,
		EndDate:     c.End,
	}
	if goal.StartTime, err = optionalTime(c.StartTime); err != nil {
		return err
	}
	if goal.EndTime, err = optionalTime(c.EndTime); err != nil {
		return err
	}

	added, err := ctx.App.Goals.AddGoal(bg, goal)
	if err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Added goal %q (%s) [%s]\n", added.Title, cli.FormatFrequency(added.Frequency), shortID(added.ID))
	return nil
}

type GoalListCmd struct {
	All     bool `short:"a" help:"Include goals that have ended."`
	ShowIDs bool `help:"Show full goal IDs." name:"show-ids"`
}

func (c *GoalListCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	if err := ctx.App.Goals.FetchGoals(bg); err != nil {
		return err
	}

	today := ctx.Today()
	var shown []models.Goal
	for _, g := range ctx.App.Goals.Goals() {
		if !c.All && g.EndDate != "" && g.EndDate < today {
			continue
		}
		shown = append(shown, g)
	}
	if len(shown) == 0 {
		fmt.Println("No goals found")
		return nil
	}

	month := ctx.Now()
	if err := ctx.App.Goals.FetchCompletions(bg, utils.StartOfMonth(month).Format(constants.DateFormat), utils.EndOfMonth(month).Format(constants.DateFormat)); err != nil {
		return err
	}
	if err := ctx.App.Goals.FetchMisses(bg, today, today); err != nil {
		return err
	}

	fmt.Println("Goals:")
	for _, g := range shown {
		id := shortID(g.ID)
		if c.ShowIDs {
			id = g.ID
		}
		status := "  "
		if g.IsActiveOn(month) {
			status = statusMark(ctx.App.Goals.StatusOf(g.ID, today))
		}
		fmt.Printf("  %s %s [%s] %s, %d%% this month\n",
			status, g.Title, id, cli.FormatFrequency(g.Frequency), ctx.App.Goals.CompletionRate(g.ID, month))
		if g.StartTime != "" || g.EndTime != "" {
			fmt.Printf("      Time: %s - %s\n", g.StartTime, g.EndTime)
		}
		span := "from " + g.StartDate
		if g.EndDate != "" {
			span += " until " + g.EndDate
		}
		fmt.Printf("      %s\n", span)
	}
	return nil
}

type GoalEditCmd struct {
	ID          string  `arg:"" help:"Goal ID or unique ID prefix."`
	Title       *string `help:"New title."`
	Description *string `short:"D" help:"New description."`
	Days        *string `short:"d" help:"New comma-separated weekdays."`
	Color       *string `short:"c" help:"New display color."`
	Start       *string `short:"s" help:"New start date (YYYY-MM-DD)."`
	End         *string `short:"e" help:"New end date (YYYY-MM-DD); empty clears it."`
	StartTime   *string `help:"New daily start time (HH:MM); empty clears it."`
	EndTime     *string `help:"New daily end time (HH:MM); empty clears it."`
}

func (c *GoalEditCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	goal, err := resolveGoal(bg, ctx, c.ID)
	if err != nil {
		return err
	}

	if c.Title != nil {
		goal.Title = strings.TrimSpace(*c.Title)
	}
	if c.Description != nil {
		goal.Description = *c.Description
	}
	if c.Color != nil {
		goal.Color = *c.Color
	}
	if c.Days != nil {
		if goal.Frequency, err = utils.ParseFrequency(*c.Days); err != nil {
			return err
		}
	}
	if c.Start != nil {
		goal.StartDate = *c.Start
	}
	if c.End != nil {
		goal.EndDate = *c.End
	}
	if c.StartTime != nil {
		if goal.StartTime, err = optionalTime(*c.StartTime); err != nil {
			return err
		}
	}
	if c.EndTime != nil {
		if goal.EndTime, err = optionalTime(*c.EndTime); err != nil {
			return err
		}
	}

	if err := ctx.App.Goals.UpdateGoal(bg, goal); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Updated goal %q\n", goal.Title)
	return nil
}

type GoalDeleteCmd struct {
	ID string `arg:"" help:"Goal ID or unique ID prefix."`
}

func (c *GoalDeleteCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	goal, err := resolveGoal(bg, ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.Goals.DeleteGoal(bg, goal.ID); err != nil {
		return err
	}
	ctx.PerformAutomaticBackup()

	fmt.Printf("✓ Deleted goal %q and its history\n", goal.Title)
	return nil
}

// resolveGoal fetches goals and finds the one whose ID equals ref or
// starts with it. Ambiguous prefixes are rejected.
func resolveGoal(bg context.Context, ctx *cli.Context, ref string) (models.Goal, error) {
	if _, err := ctx.RequireUser(bg); err != nil {
		return models.Goal{}, err
	}
	if err := ctx.App.Goals.FetchGoals(bg); err != nil {
		return models.Goal{}, err
	}
	if g, ok := ctx.App.Goals.Goal(ref); ok {
		return g, nil
	}

	var matches []models.Goal
	for _, g := range ctx.App.Goals.Goals() {
		if strings.HasPrefix(g.ID, ref) {
			matches = append(matches, g)
		}
	}
	switch len(matches) {
	case 0:
		return models.Goal{}, fmt.Errorf("goal not found: %s", ref)
	case 1:
		return matches[0], nil
	default:
		return models.Goal{}, fmt.Errorf("goal ID %q is ambiguous (%d matches)", ref, len(matches))
	}
}

func optionalTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	return utils.NormalizeTime(s)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusMark(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓"
	case models.StatusMissed:
		return "✗"
	default:
		return "·"
	}
}

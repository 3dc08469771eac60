package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type MoodCmd struct {
	Mood    []string `arg:"" optional:"" help:"How you feel today. Shows today's mood when omitted."`
	History int      `short:"n" help:"Also list moods from the last N days." default:"0"`
}

func (c *MoodCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}

	if text := strings.TrimSpace(strings.Join(c.Mood, " ")); text != "" {
		mood, err := ctx.App.Moods.SetTodaysMood(bg, text)
		if err != nil {
			return err
		}
		fmt.Printf("✓ Mood recorded: %s\n", mood.Mood)
	} else {
		if err := ctx.App.Moods.FetchTodaysMood(bg); err != nil {
			return err
		}
		if mood, ok := ctx.App.Moods.TodaysMood(); ok {
			fmt.Printf("Today's mood: %s (at %s)\n", mood.Mood, mood.CreatedAt.Local().Format("15:04"))
		} else {
			fmt.Println("No mood recorded today.")
		}
	}

	if c.History <= 0 {
		return nil
	}
	end := utils.StartOfDay(ctx.Now()).AddDate(0, 0, 1)
	if err := ctx.App.Moods.FetchMoods(bg, end.AddDate(0, 0, -c.History), end); err != nil {
		return err
	}
	moods := ctx.App.Moods.Moods()
	if len(moods) == 0 {
		fmt.Printf("No moods in the last %d days.\n", c.History)
		return nil
	}
	fmt.Printf("\nLast %d days:\n", c.History)
	for _, m := range moods {
		fmt.Printf("  %s  %s\n", m.CreatedAt.Local().Format("2006-01-02 15:04"), m.Mood)
	}
	return nil
}

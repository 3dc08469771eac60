package reports

import (
	"context"
	"fmt"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	if err := ctx.App.Stats.FetchStats(bg); err != nil {
		return err
	}

	s := ctx.App.Stats.Stats()
	days := "days"
	if s.CurrentStreak == 1 {
		days = "day"
	}
	fmt.Printf("Current streak:   %d %s\n", s.CurrentStreak, days)
	fmt.Printf("Completion rate:  %d%% (last 30 days)\n", s.CompletionRate)
	fmt.Printf("Active goals:     %d\n", s.ActiveGoals)
	return nil
}

package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/health"
	"github.com/sallieha/HabitTrackerApp/internal/tui"
)

type CalendarCmd struct {
	View string `short:"v" help:"Initial view." enum:"month,week" default:"month"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	bg, cancel := context.WithCancel(context.Background())
	defer cancel()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}

	ctx.PerformAutomaticBackup()

	// Watch the connection while the calendar is open.
	go monitor(ctx).Run(bg)

	loader := ctx.Loader()
	model := tui.New(loader, ctx.App.Goals,
		tui.WithClock(ctx.Clock),
		tui.WithView(constants.ViewMode(c.View)),
	)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	cancel()
	loader.Wait()
	if err != nil {
		return fmt.Errorf("calendar view failed: %w", err)
	}
	return nil
}

func monitor(ctx *cli.Context) *health.Monitor {
	var opts []health.Option
	if ctx.Clock != nil {
		opts = append(opts, health.WithClock(ctx.Clock))
	}
	if ctx.Config != nil {
		opts = append(opts, health.WithInterval(ctx.Config.Health.Interval))
	}
	return health.New(ctx.Store, opts...)
}

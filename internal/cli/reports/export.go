package reports

import (
	"context"
	"fmt"
	"os"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
)

type ExportCmd struct {
	Format string `short:"f" help:"Export format." enum:"google,ical" default:"ical"`
	Dir    string `short:"o" help:"Directory to write the .ics file into." default:"." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	res, err := ctx.App.Export.Download(bg, constants.ExportFormat(c.Format), c.Dir)
	if err != nil {
		return err
	}
	if res.ImportURL != "" {
		fmt.Println("Open Google Calendar to import your goals:")
		fmt.Printf("  %s\n", res.ImportURL)
		return nil
	}
	fmt.Printf("✓ Calendar written to %s\n", res.Path)
	return nil
}

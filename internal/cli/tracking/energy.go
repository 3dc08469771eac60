package tracking

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

var levelColors = map[int]lipgloss.Color{
	1: lipgloss.Color("196"),
	2: lipgloss.Color("208"),
	3: lipgloss.Color("226"),
	4: lipgloss.Color("118"),
	5: lipgloss.Color("46"),
}

var dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

type EnergySetCmd struct {
	Hour  int    `arg:"" help:"Hour of day (0-23)."`
	Level int    `arg:"" help:"Energy level (1-5)."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
	Notes string `short:"n" help:"Optional note."`
}

func (c *EnergySetCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}

	level, err := ctx.App.Energy.SetHourlyLevel(bg, c.Hour, c.Level, date, c.Notes)
	if err != nil {
		return err
	}
	fmt.Printf("✓ Energy %d/%d recorded for %02d:00 on %s\n", level.Level, models.MaxEnergyLevel, level.Hour, level.Date)
	return nil
}

type EnergyShowCmd struct {
	Date string `short:"d" help:"Date (YYYY-MM-DD). Defaults to today."`
}

func (c *EnergyShowCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	date, err := ctx.Date(c.Date)
	if err != nil {
		return err
	}
	if err := ctx.App.Energy.FetchHourlyLevels(bg, date); err != nil {
		return err
	}

	levels := ctx.App.Energy.Levels()
	if len(levels) == 0 {
		fmt.Printf("No energy levels recorded on %s.\n", date)
		return nil
	}
	fmt.Printf("Energy on %s:\n", date)
	for _, l := range levels {
		line := fmt.Sprintf("  %02d:00 %s %d", l.Hour, Bar(float64(l.Level)), l.Level)
		if l.Notes != "" {
			line += "  " + dimStyle.Render(l.Notes)
		}
		fmt.Println(line)
	}
	return nil
}

type EnergyAveragesCmd struct{}

func (c *EnergyAveragesCmd) Run(ctx *cli.Context) error {
	bg := context.Background()
	if _, err := ctx.RequireUser(bg); err != nil {
		return err
	}
	if err := ctx.App.Energy.FetchHourlyAverages(bg); err != nil {
		return err
	}

	found := false
	fmt.Println("Average energy by hour (last 30 days):")
	for _, a := range ctx.App.Energy.Averages() {
		if a.RecordCount == 0 {
			continue
		}
		found = true
		fmt.Printf("  %02d:00 %s %.2f %s\n", a.Hour, Bar(a.AverageLevel), a.AverageLevel,
			dimStyle.Render(fmt.Sprintf("(%d)", a.RecordCount)))
	}
	if !found {
		fmt.Println("  No data yet. Record some with 'habittracker energy set'.")
	}
	return nil
}

// Bar renders level as a fixed-width bar colored by its rounded value.
func Bar(level float64) string {
	filled := int(level + 0.5)
	filled = max(0, min(filled, models.MaxEnergyLevel))
	style := lipgloss.NewStyle()
	if c, ok := levelColors[filled]; ok {
		style = style.Foreground(c)
	}
	return style.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", models.MaxEnergyLevel-filled))
}

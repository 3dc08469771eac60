package system

import (
	"fmt"
	"os"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
)

type InitCmd struct {
	Force bool `help:"Delete an existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, ok := ctx.Store.(*sqlite.Store); !ok {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized habittracker storage at: %s\n", ctx.Store.GetConfigPath())

	if ctx.ConfigPath != "" {
		if _, err := os.Stat(ctx.ConfigPath); os.IsNotExist(err) && ctx.Config != nil {
			if err := ctx.Config.Save(ctx.ConfigPath); err != nil {
				fmt.Printf("⚠ Could not write default config: %v\n", err)
			} else {
				fmt.Printf("Wrote default config to: %s\n", ctx.ConfigPath)
			}
		}
	}
	fmt.Println("Next: create an account with 'habittracker signup --email you@example.com'")
	return nil
}

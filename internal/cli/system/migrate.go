package system

import (
	"errors"
	"fmt"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/migration"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
)

type MigrateCmd struct {
	Status bool `help:"Only report the schema version and pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	runner, err := migrations(ctx)
	if err != nil {
		return err
	}

	if c.Status {
		st, err := runner.Status()
		if err != nil {
			return fmt.Errorf("failed to read migration status: %w", err)
		}
		fmt.Printf("Schema version: %d (latest %d)\n", st.Current, st.Latest)
		for _, m := range st.Pending {
			fmt.Printf("  pending %03d %s\n", m.Version, m.Name)
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	if count > 0 {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

func migrations(ctx *cli.Context) (*migration.Runner, error) {
	m, ok := ctx.Store.(storage.Migratable)
	if !ok {
		return nil, errors.New("storage backend does not support migrations")
	}
	if err := ctx.Store.Load(); err != nil {
		return nil, fmt.Errorf("failed to load database: %w", err)
	}
	return m.Migrations()
}

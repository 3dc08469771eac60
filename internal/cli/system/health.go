package system

import (
	"context"
	"errors"
	"fmt"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
)

// HealthCmd checks the data service once, retrying with backoff.
type HealthCmd struct{}

func (c *HealthCmd) Run(ctx *cli.Context) error {
	if monitor(ctx).Check(context.Background()) {
		fmt.Println("✓ Database connection healthy")
		return nil
	}
	return errors.New("database health check failed after max retries")
}

package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	LogLevel       *string        `help:"Log level (debug, info, warn, error)."`
	ServerAddr     *string        `help:"Listen address for 'serve'."`
	AllowedOrigins *string        `help:"Comma-separated CORS origins for 'serve'."`
	ExportURL      *string        `help:"Calendar export endpoint used by 'export'."`
	MaxRetries     *int           `help:"Retries for failed remote calls."`
	RetryDelay     *time.Duration `help:"Initial retry delay, e.g. 1s."`
	CacheTTL       *time.Duration `help:"How long calendar data stays cached, e.g. 5m."`
	HealthInterval *time.Duration `help:"Interval between connection health checks."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	if c.List {
		fmt.Printf("Config file: %s\n\n", ctx.ConfigPath)
		fmt.Printf("  Database:          %s\n", cfg.Database.Path)
		fmt.Printf("  Log Level:         %s\n", cfg.Log.Level)
		fmt.Printf("  Server Address:    %s\n", cfg.Server.Addr)
		fmt.Printf("  Allowed Origins:   %s\n", strings.Join(cfg.Server.AllowedOrigins, ","))
		fmt.Printf("  Export URL:        %s\n", cfg.Server.ExportURL)
		fmt.Printf("  Max Retries:       %d\n", cfg.Retry.MaxRetries)
		fmt.Printf("  Retry Delay:       %s\n", cfg.Retry.InitialDelay)
		fmt.Printf("  Cache TTL:         %s\n", cfg.Cache.TTL)
		fmt.Printf("  Health Interval:   %s\n", cfg.Health.Interval)
		return nil
	}

	updated := false
	set := func(apply func()) {
		apply()
		updated = true
	}
	if c.LogLevel != nil {
		set(func() { cfg.Log.Level = *c.LogLevel })
	}
	if c.ServerAddr != nil {
		set(func() { cfg.Server.Addr = *c.ServerAddr })
	}
	if c.AllowedOrigins != nil {
		set(func() { cfg.Server.AllowedOrigins = strings.Split(*c.AllowedOrigins, ",") })
	}
	if c.ExportURL != nil {
		set(func() { cfg.Server.ExportURL = *c.ExportURL })
	}
	if c.MaxRetries != nil {
		set(func() { cfg.Retry.MaxRetries = *c.MaxRetries })
	}
	if c.RetryDelay != nil {
		set(func() { cfg.Retry.InitialDelay = *c.RetryDelay })
	}
	if c.CacheTTL != nil {
		set(func() { cfg.Cache.TTL = *c.CacheTTL })
	}
	if c.HealthInterval != nil {
		set(func() { cfg.Health.Interval = *c.HealthInterval })
	}

	if !updated {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	if err := cfg.Save(ctx.ConfigPath); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	fmt.Println("Settings updated successfully.")
	return nil
}

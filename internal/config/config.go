// Package config loads the optional YAML configuration file.
//
// The file path comes from the --config flag or the HABITTRACKER_CONFIG
// environment variable. A missing file is not an error: every field has a
// default, and flags still override what the file sets.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
)

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Server   ServerConfig   `yaml:"server"`
	Retry    RetryConfig    `yaml:"retry"`
	Cache    CacheConfig    `yaml:"cache"`
	Health   HealthConfig   `yaml:"health"`
}

type DatabaseConfig struct {
	// Path is a SQLite file path or a password-free PostgreSQL URL.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	// ExportURL is where the export client posts; defaults to the local server.
	ExportURL string `yaml:"export_url"`
}

type RetryConfig struct {
	MaxRetries   int           `yaml:"max_retries"`
	InitialDelay time.Duration `yaml:"initial_delay"`
}

type CacheConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	RaceWindow time.Duration `yaml:"race_window"`
}

type HealthConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Path: constants.DefaultDBPath},
		Log:      LogConfig{Level: "warn"},
		Server: ServerConfig{
			Addr:           constants.DefaultServerAddr,
			AllowedOrigins: []string{"*"},
			ExportURL:      "http://" + constants.DefaultServerAddr + constants.ExportPath,
		},
		Retry: RetryConfig{
			MaxRetries:   constants.DefaultMaxRetries,
			InitialDelay: constants.DefaultInitialDelay,
		},
		Cache: CacheConfig{
			TTL:        constants.CalendarCacheTTL,
			RaceWindow: constants.CalendarLoadRaceWindow,
		},
		Health: HealthConfig{Interval: constants.HealthCheckInterval},
	}
}

// Load resolves the config path from flagPath or HABITTRACKER_CONFIG,
// falling back to the default location, and loads it.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv(constants.EnvConfigPath)
	}
	explicit := path != ""
	if !explicit {
		path = constants.DefaultConfigFile
	}

	cfg, err := LoadFile(expandHome(path))
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile merges the YAML file at path over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Database.Path = expandVars(cfg.Database.Path)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Retry.MaxRetries < 0 {
		errs = append(errs, errors.New("retry.max_retries must not be negative"))
	}
	if c.Retry.InitialDelay < 0 {
		errs = append(errs, errors.New("retry.initial_delay must not be negative"))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}
	if c.Cache.RaceWindow <= 0 {
		errs = append(errs, errors.New("cache.race_window must be positive"))
	}
	if c.Health.Interval <= 0 {
		errs = append(errs, errors.New("health.interval must be positive"))
	}
	return errors.Join(errs...)
}

// Save writes the configuration as YAML, creating or truncating path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} from the environment.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

func expandHome(path string) string {
	if len(path) >= 2 && path[:2] == "~/" {
		if home, err := os.UserHomeDir(); err == nil {
			return home + path[1:]
		}
	}
	return path
}

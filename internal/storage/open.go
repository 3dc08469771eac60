package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/keyring"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
	"github.com/sallieha/HabitTrackerApp/internal/migration"
	"github.com/sallieha/HabitTrackerApp/internal/storage/postgres"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// Migratable is implemented by providers backed by embedded SQL migrations.
type Migratable interface {
	Migrations() (*migration.Runner, error)
}

// IsPostgres reports whether target is a PostgreSQL URL rather than a SQLite path.
func IsPostgres(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Such strings are refused on the command line and in
// config files; use the keyring, the environment or .pgpass instead.
func HasEmbeddedCredentials(connStr string) bool {
	_, err := postgres.ValidateConnString(connStr)
	return errors.Is(err, postgres.ErrEmbeddedCredentials)
}

// ResolveTarget picks the database to open. The environment variable wins,
// then a connection string stored in the OS keyring, then the flag value.
// The second return value names the source for diagnostics.
func ResolveTarget(flagValue string) (string, string) {
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return env, "environment"
	}
	if IsPostgres(flagValue) || flagValue == "" || flagValue == constants.DefaultDBPath {
		if connStr, err := keyring.GetConnectionString(); err == nil {
			return connStr, "keyring"
		} else if !errors.Is(err, keyring.ErrNotFound) {
			logger.Debug("Keyring lookup skipped", "error", err)
		}
	}
	if flagValue == "" {
		flagValue = constants.DefaultDBPath
	}
	return flagValue, "flag"
}

// Open builds the provider for target without connecting.
func Open(target string) Provider {
	if IsPostgres(target) || strings.Contains(target, "host=") {
		return postgres.New(target)
	}
	return sqlite.NewStore(ExpandPath(target))
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

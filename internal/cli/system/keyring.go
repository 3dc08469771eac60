package system

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/keyring"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
	"github.com/sallieha/HabitTrackerApp/internal/storage/postgres"
)

// KeyringSetCmd stores a PostgreSQL connection string in the OS keyring.
type KeyringSetCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in keyring"`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	connStr := strings.TrimSpace(cmd.ConnectionString)
	if !storage.IsPostgres(connStr) && !strings.Contains(connStr, "host=") {
		return errors.New("connection string must be a PostgreSQL URL or key=value DSN")
	}

	if _, err := postgres.ValidateConnString(connStr); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so a password is acceptable here.
		fmt.Println("⚠️  Connection string contains a password; it will be stored encrypted in the OS keyring.")
	}

	if err := keyring.SetConnectionString(connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	fmt.Println("✓ Connection string stored in OS keyring")
	fmt.Println("  habittracker will use it whenever --db is not given")
	return nil
}

type KeyringGetCmd struct{}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	connStr, err := keyring.GetConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring, use 'habittracker keyring set' to store one")
	}
	if err != nil {
		return fmt.Errorf("failed to retrieve connection string from keyring: %w", err)
	}
	fmt.Println(maskPassword(connStr))
	return nil
}

type KeyringDeleteCmd struct{}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	err := keyring.DeleteConnectionString()
	if errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no connection string found in keyring")
	}
	if err != nil {
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	fmt.Println("✓ Connection string deleted from OS keyring")
	return nil
}

// KeyringStatusCmd reports keyring availability and what is stored in it.
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return keyring.ErrKeyringUnavailable
	}
	fmt.Println("✓ OS keyring is available")

	report := func(what string, get func() (string, error)) {
		switch _, err := get(); {
		case err == nil:
			fmt.Printf("✓ %s is stored\n", what)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ No %s stored\n", strings.ToLower(what))
		default:
			fmt.Printf("⚠ %s: %v\n", what, err)
		}
	}
	report("Connection string", keyring.GetConnectionString)
	report("Session token", keyring.GetSessionToken)
	return nil
}

// maskPassword hides the password in a URL or key=value connection string.
func maskPassword(connStr string) string {
	if storage.IsPostgres(connStr) {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return connStr
		}
		if _, ok := u.User.Password(); !ok {
			return connStr
		}
		u.User = url.UserPassword(u.User.Username(), "****")
		return strings.Replace(u.String(), "%2A%2A%2A%2A", "****", 1)
	}

	fields := strings.Fields(connStr)
	for i, f := range fields {
		if strings.HasPrefix(f, "password=") {
			fields[i] = "password=****"
		}
	}
	return strings.Join(fields, " ")
}

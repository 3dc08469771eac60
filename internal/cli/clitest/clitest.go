// Package clitest builds command contexts backed by a throwaway SQLite
// database for command tests.
package clitest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/sallieha/HabitTrackerApp/internal/auth"
	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/config"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/localstate"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
	"github.com/sallieha/HabitTrackerApp/internal/store"
)

// Now is the frozen time every context starts at: Monday 2024-01-15 10:00.
var Now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.Local)

const (
	Email    = "ada@example.com"
	Password = "correct horse"
)

// NewContext returns a context over a freshly initialized database with
// nobody signed in.
func NewContext(t testing.TB) *cli.Context {
	t.Helper()
	dir := t.TempDir()
	db := sqlite.NewStore(filepath.Join(dir, "test.db"))
	if err := db.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	clk := clock.Fake(Now).AutoAdvance()
	cfg := config.Default()
	cfg.Database.Path = db.GetConfigPath()

	state := localstate.New(filepath.Join(dir, constants.LocalStateFile))
	svc := auth.New(db, &auth.MemoryTokens{},
		auth.WithClock(clk),
		auth.WithBcryptCost(bcrypt.MinCost),
		auth.OnSignOut(func() error { return state.Remove(constants.LocalStateKeys...) }),
	)

	ctx := &cli.Context{
		Store:      db,
		Auth:       svc,
		Config:     cfg,
		ConfigPath: filepath.Join(dir, "config.yaml"),
		LocalState: state,
		Clock:      clk,
	}
	ctx.App = store.NewApp(store.Deps{
		Provider: db,
		Session:  svc,
		Retry:    ctx.RetryPolicy(),
		Clock:    clk,
	})
	return ctx
}

// SignedIn returns a context with a freshly registered user signed in.
func SignedIn(t testing.TB) *cli.Context {
	t.Helper()
	ctx := NewContext(t)
	if _, err := ctx.Auth.SignUp(context.Background(), Email, Password); err != nil {
		t.Fatalf("failed to sign up: %v", err)
	}
	return ctx
}

package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/cli"
	"github.com/sallieha/HabitTrackerApp/internal/keyring"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/validation"
)

// skipped marks a check that did not apply, e.g. nobody is signed in.
type skipped string

func (s skipped) Error() string { return string(s) }

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warn checks report problems without failing the run.
	warn bool
	run  func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warn: true, run: checkBackupsPresent},
	{name: "Session", needsDB: true, warn: true, run: checkSession},
	{name: "Goal integrity", needsDB: true, run: checkGoalIntegrity},
	{name: "Completion/miss exclusivity", needsDB: true, run: checkStatusExclusive},
	{name: "Keyring", warn: true, run: checkKeyring},
	{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	failed := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n   Error: %v\n", err)
		failed, dbReachable = true, false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		var skip skipped
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case errors.As(err, &skip):
			fmt.Printf("⊘ %s: SKIPPED (%s)\n", c.name, skip)
		case c.warn:
			fmt.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			fmt.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}
	}

	fmt.Println()
	if failed {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return ctx.Store.Ping(pingCtx)
}

func checkSchemaVersion(ctx *cli.Context) error {
	runner, err := migrations(ctx)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	runner, err := migrations(ctx)
	if err != nil {
		return err
	}
	st, err := runner.Status()
	if err != nil {
		return err
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'habittracker migrate')", st.Current, st.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return skipped("not a SQLite database")
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return errors.New("no backups found - consider creating one with 'habittracker backup create'")
	}
	return nil
}

func checkSession(ctx *cli.Context) error {
	if ctx.Auth == nil {
		return skipped("auth not configured")
	}
	if _, err := ctx.RequireUser(context.Background()); err != nil {
		return err
	}
	return nil
}

// firstDate and lastDate bound every date the app can store.
const (
	firstDate = "0001-01-01"
	lastDate  = "9999-12-31"
)

func signedInUser(ctx *cli.Context) (models.User, error) {
	if ctx.Auth == nil {
		return models.User{}, skipped("auth not configured")
	}
	user, err := ctx.RequireUser(context.Background())
	if errors.Is(err, cli.ErrNotSignedIn) {
		return models.User{}, skipped("not signed in")
	}
	return user, err
}

// checkGoalIntegrity validates every goal and looks for history rows that
// point at goals which no longer exist.
func checkGoalIntegrity(ctx *cli.Context) error {
	user, err := signedInUser(ctx)
	if err != nil {
		return err
	}
	bg := context.Background()
	goals, err := ctx.Store.GetGoals(bg, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get goals: %w", err)
	}

	known := make(map[string]bool, len(goals))
	for _, g := range goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %s (%q): %w", g.ID, g.Title, err)
		}
		known[g.ID] = true
	}
	if bad := validation.ValidateGoals(goals).Of(validation.ConflictInvalidTime, validation.ConflictEndBeforeStart); len(bad) > 0 {
		return errors.New(bad[0].Description)
	}

	completions, err := ctx.Store.GetCompletions(bg, user.ID, firstDate, lastDate)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	for _, c := range completions {
		if !known[c.GoalID] {
			return fmt.Errorf("completion %s references missing goal %s", c.ID, c.GoalID)
		}
	}
	misses, err := ctx.Store.GetMisses(bg, user.ID, firstDate, lastDate)
	if err != nil {
		return fmt.Errorf("failed to get misses: %w", err)
	}
	for _, m := range misses {
		if !known[m.GoalID] {
			return fmt.Errorf("miss %s references missing goal %s", m.ID, m.GoalID)
		}
	}
	return nil
}

// checkStatusExclusive verifies no goal is both completed and missed on the same day.
func checkStatusExclusive(ctx *cli.Context) error {
	user, err := signedInUser(ctx)
	if err != nil {
		return err
	}
	bg := context.Background()
	completions, err := ctx.Store.GetCompletions(bg, user.ID, firstDate, lastDate)
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}
	misses, err := ctx.Store.GetMisses(bg, user.ID, firstDate, lastDate)
	if err != nil {
		return fmt.Errorf("failed to get misses: %w", err)
	}

	done := make(map[[2]string]bool, len(completions))
	for _, c := range completions {
		done[[2]string{c.GoalID, c.CompletedDate}] = true
	}
	for _, m := range misses {
		if done[[2]string{m.GoalID, m.MissedDate}] {
			return fmt.Errorf("goal %s is both completed and missed on %s", m.GoalID, m.MissedDate)
		}
	}
	return nil
}

func checkKeyring(*cli.Context) error {
	if !keyring.IsAvailable() {
		return errors.New("OS keyring unavailable - sessions will not persist between runs")
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

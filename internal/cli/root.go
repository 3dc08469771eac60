package cli

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/auth"
	"github.com/sallieha/HabitTrackerApp/internal/backup"
	"github.com/sallieha/HabitTrackerApp/internal/calendar"
	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/config"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/localstate"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
	"github.com/sallieha/HabitTrackerApp/internal/store"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

type Context struct {
	Store      storage.Provider
	App        *store.App
	Auth       *auth.Service
	Config     *config.Config
	ConfigPath string
	LocalState *localstate.Store
	Clock      clock.Clock
}

// ErrNotSignedIn is what commands report when no session is active.
var ErrNotSignedIn = errors.New("not signed in, run 'habittracker signin' first")

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock.Now()
}

func (c *Context) Today() string {
	return c.Now().Format(constants.DateFormat)
}

// Date returns s validated as YYYY-MM-DD, or today when s is empty.
func (c *Context) Date(s string) (string, error) {
	if s == "" {
		return c.Today(), nil
	}
	if _, err := utils.ParseDate(s, time.Local); err != nil {
		return "", err
	}
	return s, nil
}

// RequireUser resolves the signed-in user, mapping a missing session to ErrNotSignedIn.
func (c *Context) RequireUser(ctx context.Context) (models.User, error) {
	user, err := c.Auth.CurrentUser(ctx)
	if errors.Is(err, apperrors.ErrNotAuthenticated) {
		return models.User{}, ErrNotSignedIn
	}
	return user, err
}

// RetryPolicy builds the remote retry policy from config.
func (c *Context) RetryPolicy() retry.Policy {
	p := retry.DefaultPolicy()
	if c.Config != nil {
		p.MaxRetries = c.Config.Retry.MaxRetries
		p.InitialDelay = c.Config.Retry.InitialDelay
	}
	if c.Clock != nil {
		p.Clock = c.Clock
	}
	return p
}

// Loader builds the calendar loader over the remote source.
func (c *Context) Loader() *calendar.Loader {
	clk := c.Clock
	if clk == nil {
		clk = clock.Real()
	}
	ttl, window := constants.CalendarCacheTTL, constants.CalendarLoadRaceWindow
	if c.Config != nil {
		ttl, window = c.Config.Cache.TTL, c.Config.Cache.RaceWindow
	}
	src := &calendar.RemoteSource{
		Provider: c.Store,
		Session:  c.Auth,
		Retry:    c.RetryPolicy(),
		Clock:    clk,
	}
	return calendar.NewLoader(src, calendar.NewCache(clk, ttl),
		calendar.WithClock(clk),
		calendar.WithRaceWindow(window),
	)
}

// BackupManager returns a backup manager for SQLite stores. PostgreSQL
// databases are backed up with their own tooling.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return nil, errors.New("backups are only supported for SQLite storage")
	}
	var opts []backup.Option
	if c.Clock != nil {
		opts = append(opts, backup.WithClock(c.Clock))
	}
	return backup.NewManager(c.Store.GetConfigPath(), opts...), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var weekdayOrder = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// FormatFrequency renders a weekday list as "daily", "weekdays",
// "weekends" or a comma list of short names in calendar order.
func FormatFrequency(days []string) string {
	set := make(map[string]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	has := func(names ...string) bool {
		return !slices.ContainsFunc(names, func(n string) bool { return !set[n] })
	}
	switch {
	case len(set) == 7:
		return "daily"
	case len(set) == 5 && has("Monday", "Tuesday", "Wednesday", "Thursday", "Friday"):
		return "weekdays"
	case len(set) == 2 && has("Saturday", "Sunday"):
		return "weekends"
	}

	var short []string
	for _, d := range weekdayOrder {
		if set[d] {
			short = append(short, d[:3])
		}
	}
	return strings.Join(short, ",")
}

// Truncate shortens s to n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}

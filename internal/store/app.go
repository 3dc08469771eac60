// Package store holds the in-memory copy of each domain's remote data and
// mediates every read and write to it.
//
// Every store follows the same two-phase pattern: the remote write is
// issued first, and only once it succeeds is a pure reducer applied to
// derive the new slice from the old one. Failed actions leave state
// untouched, record a message readable via LastError, and return the error.
package store

import (
	"context"
	"net/http"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
)

// SessionSource resolves the signed-in user. It returns
// errors.ErrNotAuthenticated when nobody is signed in.
type SessionSource interface {
	CurrentUser(ctx context.Context) (models.User, error)
	CurrentSession(ctx context.Context) (models.Session, error)
}

type Deps struct {
	Provider storage.Provider
	Session  SessionSource
	Retry    retry.Policy
	Clock    clock.Clock

	// Export endpoint used by the export store.
	HTTPClient *http.Client
	ExportURL  string
}

// App is the application state container. Each App owns independent
// stores, so tests can build as many as they like.
type App struct {
	Goals   *GoalStore
	Moods   *MoodStore
	Energy  *EnergyStore
	Planner *PlannerStore
	Avatars *AvatarStore
	Stats   *StatsStore
	Export  *ExportStore
}

func NewApp(d Deps) *App {
	if d.Clock == nil {
		d.Clock = clock.Real()
	}
	if d.Retry.Clock == nil {
		d.Retry.Clock = d.Clock
	}
	if d.HTTPClient == nil {
		d.HTTPClient = &http.Client{Timeout: 30 * time.Second}
	}

	e := &env{provider: d.Provider, session: d.Session, retry: d.Retry, clock: d.Clock}
	goals := &GoalStore{env: e}
	return &App{
		Goals:   goals,
		Moods:   &MoodStore{env: e},
		Energy:  &EnergyStore{env: e},
		Planner: &PlannerStore{env: e, goals: goals},
		Avatars: &AvatarStore{env: e},
		Stats:   &StatsStore{env: e},
		Export:  &ExportStore{env: e, client: d.HTTPClient, url: d.ExportURL},
	}
}

// env is what every store shares.
type env struct {
	provider storage.Provider
	session  SessionSource
	retry    retry.Policy
	clock    clock.Clock
}

func (e *env) userID(ctx context.Context) (string, error) {
	user, err := e.session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

func (e *env) now() time.Time { return e.clock.Now() }

func (e *env) today() string { return e.now().Format(constants.DateFormat) }

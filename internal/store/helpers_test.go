package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	apperrors "github.com/sallieha/HabitTrackerApp/internal/errors"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
	"github.com/sallieha/HabitTrackerApp/internal/storage/sqlite"
)

var testNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

var errBoom = errors.New("boom")

type staticSession struct {
	user models.User
	err  error
}

func (s staticSession) CurrentUser(context.Context) (models.User, error) {
	return s.user, s.err
}

func (s staticSession) CurrentSession(context.Context) (models.Session, error) {
	return models.Session{Token: "token-" + s.user.ID, UserID: s.user.ID}, s.err
}

// failingProvider fails selected calls and counts every attempt.
type failingProvider struct {
	storage.Provider
	calls atomic.Int32
}

func (p *failingProvider) GetGoals(context.Context, string) ([]models.Goal, error) {
	p.calls.Add(1)
	return nil, errBoom
}

func (p *failingProvider) SaveGoal(context.Context, models.Goal) error {
	p.calls.Add(1)
	return errBoom
}

func openTestStore(t *testing.T) (*sqlite.Store, models.User) {
	t.Helper()
	db := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := db.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	user := models.User{ID: "user-1", Email: "ada@example.com", PasswordHash: "hash", CreatedAt: testNow}
	if err := db.AddUser(context.Background(), user); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}
	return db, user
}

func newTestApp(provider storage.Provider, user models.User, clk *clock.FakeClock) *App {
	return NewApp(Deps{
		Provider: provider,
		Session:  staticSession{user: user},
		Clock:    clk,
		Retry:    retry.Policy{MaxRetries: 3, InitialDelay: time.Second, Clock: clk},
	})
}

func setupApp(t *testing.T) (*App, *sqlite.Store) {
	t.Helper()
	db, user := openTestStore(t)
	return newTestApp(db, user, clock.Fake(testNow).AutoAdvance()), db
}

func mondayGoal() models.Goal {
	return models.Goal{
		Title:     "Morning run",
		Color:     "#22c55e",
		Frequency: []string{"Monday"},
		StartDate: "2024-01-01",
		StartTime: "07:00",
		EndTime:   "07:45",
	}
}

// saveFailingProvider deletes normally but fails every completion and
// miss write.
type saveFailingProvider struct {
	storage.Provider
}

func (saveFailingProvider) SaveCompletion(context.Context, models.Completion) error { return errBoom }
func (saveFailingProvider) SaveMiss(context.Context, models.Miss) error             { return errBoom }

// signedOutApp returns an App whose every user-scoped call fails.
func signedOutApp(t *testing.T) *App {
	t.Helper()
	db, _ := openTestStore(t)
	return NewApp(Deps{
		Provider: db,
		Session:  staticSession{err: apperrors.ErrNotAuthenticated},
		Clock:    clock.Fake(testNow),
	})
}

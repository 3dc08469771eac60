package calendar

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/retry"
	"github.com/sallieha/HabitTrackerApp/internal/storage"
	"github.com/sallieha/HabitTrackerApp/internal/store"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

// Source runs the individual queries a snapshot is built from.
type Source interface {
	Goals(ctx context.Context) ([]models.Goal, error)
	Completions(ctx context.Context, start, end string) ([]models.Completion, error)
	Misses(ctx context.Context, start, end string) ([]models.Miss, error)
	Moods(ctx context.Context, from, to time.Time) ([]models.Mood, error)
	TodaysMood(ctx context.Context) (*models.Mood, error)
}

// fetchSnapshot runs every query for k in parallel. Any failure fails the
// snapshot.
func fetchSnapshot(ctx context.Context, src Source, k Key) (Snapshot, error) {
	start, err := utils.ParseDate(k.Start, time.Local)
	if err != nil {
		return Snapshot{}, err
	}
	end, err := utils.ParseDate(k.End, time.Local)
	if err != nil {
		return Snapshot{}, err
	}

	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		snap.Goals, err = src.Goals(ctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Completions, err = src.Completions(ctx, k.Start, k.End)
		return err
	})
	g.Go(func() (err error) {
		snap.Misses, err = src.Misses(ctx, k.Start, k.End)
		return err
	})
	g.Go(func() (err error) {
		snap.Moods, err = src.Moods(ctx, start, end.AddDate(0, 0, 1))
		return err
	})
	g.Go(func() (err error) {
		snap.TodaysMood, err = src.TodaysMood(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// RemoteSource queries the data service directly, leaving the domain
// stores' slices alone, so background fetches for neighbouring ranges
// never overwrite what another view is showing.
type RemoteSource struct {
	Provider storage.Provider
	Session  store.SessionSource
	Retry    retry.Policy
	Clock    clock.Clock
}

func query[T any](ctx context.Context, r *RemoteSource, fn func(ctx context.Context, uid string) (T, error)) (T, error) {
	user, err := r.Session.CurrentUser(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return retry.Do(ctx, r.Retry, func(ctx context.Context) (T, error) {
		return fn(ctx, user.ID)
	})
}

func (r *RemoteSource) Goals(ctx context.Context) ([]models.Goal, error) {
	return query(ctx, r, r.Provider.GetGoals)
}

func (r *RemoteSource) Completions(ctx context.Context, start, end string) ([]models.Completion, error) {
	return query(ctx, r, func(ctx context.Context, uid string) ([]models.Completion, error) {
		return r.Provider.GetCompletions(ctx, uid, start, end)
	})
}

func (r *RemoteSource) Misses(ctx context.Context, start, end string) ([]models.Miss, error) {
	return query(ctx, r, func(ctx context.Context, uid string) ([]models.Miss, error) {
		return r.Provider.GetMisses(ctx, uid, start, end)
	})
}

func (r *RemoteSource) Moods(ctx context.Context, from, to time.Time) ([]models.Mood, error) {
	return query(ctx, r, func(ctx context.Context, uid string) ([]models.Mood, error) {
		return r.Provider.GetMoods(ctx, uid, from, to)
	})
}

func (r *RemoteSource) TodaysMood(ctx context.Context) (*models.Mood, error) {
	clk := r.Clock
	if clk == nil {
		clk = clock.Real()
	}
	start := utils.StartOfDay(clk.Now())
	moods, err := r.Moods(ctx, start, start.AddDate(0, 0, 1))
	if err != nil || len(moods) == 0 {
		return nil, err
	}
	latest := moods[len(moods)-1]
	return &latest, nil
}

var _ Source = (*RemoteSource)(nil)

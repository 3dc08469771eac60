package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
)

// View is the result of a load.
type View struct {
	Key      Key
	Snapshot Snapshot
	// FromCache is set when a valid cache entry was served.
	FromCache bool
	// Loading is true only while nothing can be shown yet. Load always
	// returns with it cleared.
	Loading bool
	// Pending is set when the race window elapsed before the fetch
	// finished. The fetch keeps running and Later delivers its outcome.
	Pending bool
	Later   <-chan View
	Err     error
}

type Loader struct {
	source Source
	cache  *Cache
	clock  clock.Clock
	window time.Duration
	wg     sync.WaitGroup
}

type Option func(*Loader)

func WithClock(c clock.Clock) Option { return func(l *Loader) { l.clock = c } }

// WithRaceWindow sets how long Load waits for a fetch before returning.
func WithRaceWindow(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.window = d
		}
	}
}

func NewLoader(src Source, cache *Cache, opts ...Option) *Loader {
	l := &Loader{
		source: src,
		cache:  cache,
		clock:  clock.Real(),
		window: constants.CalendarLoadRaceWindow,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) Cache() *Cache { return l.cache }

// Load returns the view for the range containing anchor. A valid cache
// entry is served without any remote call. Otherwise every query runs
// in parallel and races the window: whichever finishes first decides
// what Load returns. The fetch is never cancelled by losing the race;
// it completes in the background and fills the cache.
func (l *Loader) Load(ctx context.Context, anchor time.Time, view constants.ViewMode) View {
	key := KeyFor(anchor, view)
	if snap, ok := l.cache.Get(key); ok {
		return View{Key: key, Snapshot: snap, FromCache: true}
	}
	return l.race(ctx, key)
}

// Refresh re-fetches the range containing anchor even if it is cached,
// typically after a completion or miss was recorded. The new snapshot
// replaces the entry under the same key.
func (l *Loader) Refresh(ctx context.Context, anchor time.Time, view constants.ViewMode) View {
	return l.race(ctx, KeyFor(anchor, view))
}

func (l *Loader) race(ctx context.Context, key Key) View {
	done := l.fetch(ctx, key)
	timer := l.clock.After(l.window)

	select {
	case v := <-done:
		return v
	case <-timer:
		later := make(chan View, 1)
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			later <- <-done
		}()
		return View{Key: key, Pending: true, Later: later}
	}
}

// fetch starts the queries for key and delivers exactly one View.
func (l *Loader) fetch(ctx context.Context, key Key) <-chan View {
	done := make(chan View, 1)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		snap, err := fetchSnapshot(ctx, l.source, key)
		if err == nil {
			l.cache.Put(key, snap)
			done <- View{Key: key, Snapshot: snap}
			return
		}

		logger.Warn("Failed to load calendar data", "start", key.Start, "end", key.End, "error", err)
		if cached, ok := l.cache.Get(key); ok {
			done <- View{Key: key, Snapshot: cached, FromCache: true}
			return
		}
		done <- View{Key: key, Err: err}
	}()
	return done
}

// Preload fetches the next and previous ranges in the background unless
// they are already cached. Failures are logged and otherwise ignored.
func (l *Loader) Preload(ctx context.Context, anchor time.Time, view constants.ViewMode) {
	next, prev := Adjacent(anchor, view)
	for _, a := range []time.Time{next, prev} {
		key := KeyFor(a, view)
		if _, ok := l.cache.Get(key); ok {
			continue
		}
		l.wg.Add(1)
		go func() {
			defer l.wg.Done()
			snap, err := fetchSnapshot(ctx, l.source, key)
			if err != nil {
				logger.Debug("Calendar preload failed", "start", key.Start, "end", key.End, "error", err)
				return
			}
			l.cache.Put(key, snap)
		}()
	}
}

// Wait blocks until every background fetch has finished.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Package calendar caches the data behind the month and week views and
// loads it without making the view wait on slow fetches.
package calendar

import (
	"sync"
	"time"

	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

// Key identifies one view's date range.
type Key struct {
	Start string // YYYY-MM-DD
	End   string // YYYY-MM-DD, inclusive
	View  constants.ViewMode
}

// KeyFor returns the key of the range containing anchor.
func KeyFor(anchor time.Time, view constants.ViewMode) Key {
	start, end := RangeFor(anchor, view)
	return Key{
		Start: start.Format(constants.DateFormat),
		End:   end.Format(constants.DateFormat),
		View:  view,
	}
}

// RangeFor returns the first and last day shown for anchor: the calendar
// month, or the Sunday-to-Saturday week.
func RangeFor(anchor time.Time, view constants.ViewMode) (start, end time.Time) {
	if view == constants.ViewWeek {
		return utils.StartOfWeek(anchor), utils.EndOfWeek(anchor)
	}
	return utils.StartOfMonth(anchor), utils.EndOfMonth(anchor)
}

// Adjacent returns anchors for the next and previous ranges.
func Adjacent(anchor time.Time, view constants.ViewMode) (next, prev time.Time) {
	if view == constants.ViewWeek {
		return anchor.AddDate(0, 0, 7), anchor.AddDate(0, 0, -7)
	}
	// Step from the first of the month so Jan 31 + 1 month is February.
	first := utils.StartOfMonth(anchor)
	return first.AddDate(0, 1, 0), first.AddDate(0, -1, 0)
}

// Snapshot is everything one view renders.
type Snapshot struct {
	Goals       []models.Goal
	Completions []models.Completion
	Misses      []models.Miss
	Moods       []models.Mood
	TodaysMood  *models.Mood
}

// StatusOf reports the status of goalID on date within the snapshot.
func (s Snapshot) StatusOf(goalID, date string) models.Status {
	for _, c := range s.Completions {
		if c.GoalID == goalID && c.CompletedDate == date {
			return models.StatusCompleted
		}
	}
	for _, m := range s.Misses {
		if m.GoalID == goalID && m.MissedDate == date {
			return models.StatusMissed
		}
	}
	return models.StatusUnset
}

// GoalsOn returns the goals active on day.
func (s Snapshot) GoalsOn(day time.Time) []models.Goal {
	var out []models.Goal
	for _, g := range s.Goals {
		if g.IsActiveOn(day) {
			out = append(out, g)
		}
	}
	return out
}

type Entry struct {
	Value      Snapshot
	InsertedAt time.Time
}

// Cache holds snapshots by key. An entry is valid while less than the TTL
// has passed since it was inserted; after that lookups treat it as absent.
type Cache struct {
	mu      sync.Mutex
	clock   clock.Clock
	ttl     time.Duration
	entries map[Key]Entry
}

func NewCache(clk clock.Clock, ttl time.Duration) *Cache {
	if clk == nil {
		clk = clock.Real()
	}
	if ttl <= 0 {
		ttl = constants.CalendarCacheTTL
	}
	return &Cache{clock: clk, ttl: ttl, entries: make(map[Key]Entry)}
}

func (c *Cache) Get(k Key) (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	if !ok || c.clock.Now().Sub(e.InsertedAt) >= c.ttl {
		return Snapshot{}, false
	}
	return e.Value, true
}

// Put stores v under k, replacing any previous entry.
func (c *Cache) Put(k Key, v Snapshot) {
	c.mu.Lock()
	c.entries[k] = Entry{Value: v, InsertedAt: c.clock.Now()}
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sallieha/HabitTrackerApp/internal/calendar"
	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
)

type fakeLoader struct {
	mu        sync.Mutex
	snap      calendar.Snapshot
	loads     []calendar.Key
	refreshes []calendar.Key
	preloads  []calendar.Key
	pending   chan calendar.View
}

func (f *fakeLoader) Load(_ context.Context, anchor time.Time, view constants.ViewMode) calendar.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := calendar.KeyFor(anchor, view)
	f.loads = append(f.loads, key)
	if f.pending != nil {
		return calendar.View{Key: key, Pending: true, Later: f.pending}
	}
	return calendar.View{Key: key, Snapshot: f.snap}
}

func (f *fakeLoader) Refresh(_ context.Context, anchor time.Time, view constants.ViewMode) calendar.View {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := calendar.KeyFor(anchor, view)
	f.refreshes = append(f.refreshes, key)
	return calendar.View{Key: key, Snapshot: f.snap}
}

func (f *fakeLoader) Preload(_ context.Context, anchor time.Time, view constants.ViewMode) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.preloads = append(f.preloads, calendar.KeyFor(anchor, view))
}

type fakeTracker struct {
	calls []string
	err   error
}

func (f *fakeTracker) ToggleCompletion(_ context.Context, goalID, date string) error {
	f.calls = append(f.calls, goalID+"@"+date)
	return f.err
}

// Wednesday 2024-01-10.
var now = time.Date(2024, 1, 10, 9, 0, 0, 0, time.Local)

func testSnapshot() calendar.Snapshot {
	return calendar.Snapshot{
		Goals: []models.Goal{
			{ID: "g1", Title: "Run", Frequency: []string{"Wednesday"}, StartDate: "2024-01-01"},
			{ID: "g2", Title: "Read", Frequency: []string{"Wednesday", "Thursday"}, StartDate: "2024-01-01"},
		},
		Completions: []models.Completion{{ID: "c1", GoalID: "g1", CompletedDate: "2024-01-03"}},
		Misses:      []models.Miss{{ID: "m1", GoalID: "g2", MissedDate: "2024-01-03"}},
	}
}

func newModel(t *testing.T) (Model, *fakeLoader, *fakeTracker) {
	t.Helper()
	loader := &fakeLoader{snap: testSnapshot()}
	tracker := &fakeTracker{}
	m := New(loader, tracker, WithClock(clock.Fake(now)))
	return m, loader, tracker
}

// run executes cmd and feeds its message back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg := cmd()
	next, out := m.Update(msg)
	return next.(Model), out
}

func press(m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T) (Model, *fakeLoader, *fakeTracker) {
	t.Helper()
	m, loader, tracker := newModel(t)
	m, preload := run(t, m, m.Init())
	if preload == nil {
		t.Fatal("expected preload after a successful load")
	}
	if msg := preload(); msg != nil {
		t.Fatalf("preload produced message %T", msg)
	}
	return m, loader, tracker
}

func TestInitLoadsCurrentMonth(t *testing.T) {
	m, loader, _ := loaded(t)

	want := calendar.Key{Start: "2024-01-01", End: "2024-01-31", View: constants.ViewMonth}
	if len(loader.loads) != 1 || loader.loads[0] != want {
		t.Fatalf("loads = %v, want [%v]", loader.loads, want)
	}
	if len(loader.preloads) != 1 || loader.preloads[0] != want {
		t.Errorf("preloads = %v", loader.preloads)
	}
	if m.loading {
		t.Error("still loading after view arrived")
	}
	if got := len(m.goalsOnSelected()); got != 2 {
		t.Errorf("goals on selected day = %d, want 2", got)
	}
}

func TestPendingViewWaitsForLater(t *testing.T) {
	m, loader, _ := newModel(t)
	later := make(chan calendar.View, 1)
	loader.pending = later

	m, wait := run(t, m, m.Init())
	if m.loading {
		t.Fatal("loading indicator kept after the race window")
	}
	if got := m.footer(); strings.Contains(got, "Loading") {
		t.Errorf("footer = %q while fetch finishes in the background", got)
	}
	if wait == nil {
		t.Fatal("expected a command waiting for the late view")
	}

	key := calendar.KeyFor(now, constants.ViewMonth)
	later <- calendar.View{Key: key, Snapshot: testSnapshot()}
	m, _ = run(t, m, wait)
	if len(m.snapshot().Goals) != 2 {
		t.Errorf("snapshot goals = %d, want 2", len(m.snapshot().Goals))
	}
}

func TestStaleViewIgnored(t *testing.T) {
	m, _, _ := newModel(t)
	stale := calendar.View{
		Key:      calendar.KeyFor(now.AddDate(0, -1, 0), constants.ViewMonth),
		Snapshot: testSnapshot(),
	}
	next, cmd := m.Update(viewMsg{view: stale})
	if cmd != nil {
		t.Error("stale view should not trigger commands")
	}
	if len(next.(Model).snapshot().Goals) != 0 {
		t.Error("stale view was applied")
	}
}

func TestLoadErrorShown(t *testing.T) {
	m, _, _ := newModel(t)
	failed := calendar.View{Key: m.key(), Err: errors.New("offline")}
	next, _ := m.Update(viewMsg{view: failed})
	out := next.(Model).View()
	if !strings.Contains(out, "offline") {
		t.Errorf("view does not mention the error:\n%s", out)
	}
}

func TestNavigation(t *testing.T) {
	tests := []struct {
		name     string
		key      tea.KeyMsg
		wantDate string
		wantLoad bool
	}{
		{"next day stays in month", tea.KeyMsg{Type: tea.KeyRight}, "2024-01-11", false},
		{"prev week stays in month", tea.KeyMsg{Type: tea.KeyUp}, "2024-01-03", false},
		{"next range", runes("]"), "2024-02-01", true},
		{"prev range", runes("["), "2023-12-01", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, loader, _ := loaded(t)
			m, cmd := press(m, tt.key)
			if got := m.selectedDate(); got != tt.wantDate {
				t.Errorf("selected = %s, want %s", got, tt.wantDate)
			}
			if (cmd != nil) != tt.wantLoad {
				t.Fatalf("load command = %v, want %v", cmd != nil, tt.wantLoad)
			}
			if tt.wantLoad {
				cmd()
				if len(loader.loads) != 2 || loader.loads[1] != m.key() {
					t.Errorf("loads = %v", loader.loads)
				}
			}
		})
	}
}

func TestSwitchViewLoadsWeek(t *testing.T) {
	m, loader, _ := loaded(t)
	m, cmd := press(m, runes("v"))
	if m.view != constants.ViewWeek {
		t.Fatalf("view = %s, want week", m.view)
	}
	m, _ = run(t, m, cmd)

	want := calendar.Key{Start: "2024-01-07", End: "2024-01-13", View: constants.ViewWeek}
	if got := loader.loads[len(loader.loads)-1]; got != want {
		t.Errorf("load key = %v, want %v", got, want)
	}
	if out := m.View(); !strings.Contains(out, "Run") || !strings.Contains(out, "Read") {
		t.Errorf("week view missing goals:\n%s", out)
	}
}

func TestToggleRefreshesRange(t *testing.T) {
	m, loader, tracker := loaded(t)

	m, _ = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want 1", m.cursor)
	}
	m, toggle := press(m, tea.KeyMsg{Type: tea.KeySpace})
	m, refresh := run(t, m, toggle)
	if len(tracker.calls) != 1 || tracker.calls[0] != "g2@2024-01-10" {
		t.Fatalf("toggle calls = %v", tracker.calls)
	}
	if !m.loading {
		t.Error("expected loading during refresh")
	}

	run(t, m, refresh)
	if len(loader.refreshes) != 1 || loader.refreshes[0] != m.key() {
		t.Errorf("refreshes = %v", loader.refreshes)
	}
}

func TestToggleFailureKeepsView(t *testing.T) {
	m, loader, tracker := loaded(t)
	tracker.err = errors.New("write failed")

	m, toggle := press(m, tea.KeyMsg{Type: tea.KeySpace})
	m, cmd := run(t, m, toggle)
	if cmd != nil {
		t.Error("failed toggle should not refresh")
	}
	if m.err == nil {
		t.Error("error not recorded")
	}
	if len(loader.refreshes) != 0 {
		t.Errorf("refreshes = %v", loader.refreshes)
	}
}

func TestToggleRejectsFutureAndEmptyDays(t *testing.T) {
	m, _, tracker := loaded(t)

	// Thursday only has g2, and it is in the future.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := press(m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		t.Error("toggle in the future produced a command")
	}

	// Tuesday has no goals.
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	m, cmd = press(m, tea.KeyMsg{Type: tea.KeySpace})
	if cmd != nil {
		t.Error("toggle on an empty day produced a command")
	}
	if m.status == "" {
		t.Error("expected a status message")
	}
	if len(tracker.calls) != 0 {
		t.Errorf("tracker calls = %v", tracker.calls)
	}
}

func TestQuitDiscardsLateResults(t *testing.T) {
	m, _, _ := newModel(t)
	m, cmd := press(m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.ctx.Err() == nil {
		t.Error("context not cancelled on quit")
	}

	next, cmd := m.Update(viewMsg{view: calendar.View{Key: m.key(), Snapshot: testSnapshot()}})
	if cmd != nil || len(next.(Model).current.Snapshot.Goals) != 0 {
		t.Error("result applied after quit")
	}
}

func TestMonthViewMarks(t *testing.T) {
	m, _, _ := loaded(t)
	cases := []struct {
		day  time.Time
		want string
	}{
		{time.Date(2024, 1, 3, 0, 0, 0, 0, time.Local), "✗"},
		{time.Date(2024, 1, 10, 0, 0, 0, 0, time.Local), "·"},
		{time.Date(2024, 1, 9, 0, 0, 0, 0, time.Local), " "},
	}
	for _, c := range cases {
		if got := m.dayMark(c.day); got != c.want {
			t.Errorf("dayMark(%s) = %q, want %q", c.day.Format(constants.DateFormat), got, c.want)
		}
	}
}

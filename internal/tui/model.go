// Package tui renders the goal calendar as a bubbletea program.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sallieha/HabitTrackerApp/internal/calendar"
	"github.com/sallieha/HabitTrackerApp/internal/clock"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

// Loader is the part of calendar.Loader the view needs.
type Loader interface {
	Load(ctx context.Context, anchor time.Time, view constants.ViewMode) calendar.View
	Refresh(ctx context.Context, anchor time.Time, view constants.ViewMode) calendar.View
	Preload(ctx context.Context, anchor time.Time, view constants.ViewMode)
}

// Tracker records completions.
type Tracker interface {
	ToggleCompletion(ctx context.Context, goalID, date string) error
}

type Model struct {
	loader  Loader
	tracker Tracker
	clock   clock.Clock

	ctx    context.Context
	cancel context.CancelFunc

	view     constants.ViewMode
	selected time.Time
	cursor   int
	current  calendar.View
	loading  bool
	status   string
	err      error

	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
}

type Option func(*Model)

func WithClock(c clock.Clock) Option {
	return func(m *Model) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithView sets the initial view mode.
func WithView(v constants.ViewMode) Option {
	return func(m *Model) {
		if v == constants.ViewWeek || v == constants.ViewMonth {
			m.view = v
		}
	}
}

func New(loader Loader, tracker Tracker, opts ...Option) Model {
	ctx, cancel := context.WithCancel(context.Background())
	m := Model{
		loader:  loader,
		tracker: tracker,
		clock:   clock.Real(),
		ctx:     ctx,
		cancel:  cancel,
		view:    constants.ViewMonth,
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.selected = utils.StartOfDay(m.clock.Now())
	return m
}

func (m Model) Init() tea.Cmd {
	return m.load()
}

// viewMsg carries a finished or deferred load.
type viewMsg struct {
	view calendar.View
}

type toggledMsg struct {
	goal models.Goal
	date string
	err  error
}

func (m Model) load() tea.Cmd {
	loader, ctx, anchor, view := m.loader, m.ctx, m.selected, m.view
	return func() tea.Msg {
		return viewMsg{view: loader.Load(ctx, anchor, view)}
	}
}

func (m Model) refresh() tea.Cmd {
	loader, ctx, anchor, view := m.loader, m.ctx, m.selected, m.view
	return func() tea.Msg {
		return viewMsg{view: loader.Refresh(ctx, anchor, view)}
	}
}

func (m Model) preload() tea.Cmd {
	loader, ctx, anchor, view := m.loader, m.ctx, m.selected, m.view
	return func() tea.Msg {
		loader.Preload(ctx, anchor, view)
		return nil
	}
}

func waitLater(later <-chan calendar.View) tea.Cmd {
	return func() tea.Msg {
		return viewMsg{view: <-later}
	}
}

func (m Model) toggle(goal models.Goal, date string) tea.Cmd {
	tracker, ctx := m.tracker, m.ctx
	return func() tea.Msg {
		return toggledMsg{goal: goal, date: date, err: tracker.ToggleCompletion(ctx, goal.ID, date)}
	}
}

// key is the cache key of the range the selection falls in.
func (m Model) key() calendar.Key {
	return calendar.KeyFor(m.selected, m.view)
}

// snapshot returns the data for the visible range, or an empty snapshot
// while it has not arrived.
func (m Model) snapshot() calendar.Snapshot {
	if m.current.Key != m.key() {
		return calendar.Snapshot{}
	}
	return m.current.Snapshot
}

// goalsOnSelected lists the goals active on the selected day.
func (m Model) goalsOnSelected() []models.Goal {
	return m.snapshot().GoalsOn(m.selected)
}

func (m Model) selectedDate() string {
	return m.selected.Format(constants.DateFormat)
}

func (m Model) today() time.Time {
	return utils.StartOfDay(m.clock.Now())
}

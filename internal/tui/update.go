package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sallieha/HabitTrackerApp/internal/calendar"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/logger"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case viewMsg:
		return m.applyView(msg.view)

	case toggledMsg:
		if msg.err != nil {
			logger.Warn("Toggle completion failed", "goal", msg.goal.ID, "date", msg.date, "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Toggled %q on %s", msg.goal.Title, msg.date)
		m.loading = true
		return m, m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// applyView installs a load result. Results for a range the user has
// already navigated away from are dropped.
func (m Model) applyView(v calendar.View) (tea.Model, tea.Cmd) {
	if v.Key != m.key() {
		return m, nil
	}
	m.loading = false
	if v.Pending {
		// keep the current grid; the fetch lands later
		return m, waitLater(v.Later)
	}

	if v.Err != nil {
		m.err = fmt.Errorf("failed to load calendar: %w", v.Err)
		return m, nil
	}
	m.err = nil
	m.current = v
	m.clampCursor()
	return m, m.preload()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		return m.moveTo(m.selected.AddDate(0, 0, -1))
	case key.Matches(msg, m.keys.Right):
		return m.moveTo(m.selected.AddDate(0, 0, 1))
	case key.Matches(msg, m.keys.Up):
		return m.moveTo(m.selected.AddDate(0, 0, -7))
	case key.Matches(msg, m.keys.Down):
		return m.moveTo(m.selected.AddDate(0, 0, 7))

	case key.Matches(msg, m.keys.PrevRange):
		_, prev := calendar.Adjacent(m.selected, m.view)
		return m.moveTo(prev)
	case key.Matches(msg, m.keys.NextRange):
		next, _ := calendar.Adjacent(m.selected, m.view)
		return m.moveTo(next)
	case key.Matches(msg, m.keys.Today):
		return m.moveTo(m.today())

	case key.Matches(msg, m.keys.SwitchView):
		if m.view == constants.ViewMonth {
			m.view = constants.ViewWeek
		} else {
			m.view = constants.ViewMonth
		}
		return m.reload()

	case key.Matches(msg, m.keys.Refresh):
		m.loading = true
		return m, m.refresh()

	case key.Matches(msg, m.keys.NextGoal):
		m.cursor++
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.PrevGoal):
		m.cursor--
		m.clampCursor()
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.toggleSelected()
	}
	return m, nil
}

// moveTo selects day, loading its range when it differs from the current one.
func (m Model) moveTo(day time.Time) (tea.Model, tea.Cmd) {
	before := m.key()
	m.selected = utils.StartOfDay(day)
	m.status = ""
	m.clampCursor()
	if m.key() == before {
		return m, nil
	}
	return m.reload()
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	m.cursor = 0
	m.loading = true
	return m, m.load()
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	goals := m.goalsOnSelected()
	if len(goals) == 0 {
		m.status = "No goals scheduled for this day"
		return m, nil
	}
	if m.selected.After(m.today()) {
		m.status = "Cannot complete a goal in the future"
		return m, nil
	}
	return m, m.toggle(goals[m.cursor], m.selectedDate())
}

func (m *Model) clampCursor() {
	n := len(m.goalsOnSelected())
	switch {
	case n == 0:
		m.cursor = 0
	case m.cursor >= n:
		m.cursor = n - 1
	case m.cursor < 0:
		m.cursor = 0
	}
}

// statusOf reports a goal's status on day from the visible snapshot.
func (m Model) statusOf(goalID string, day time.Time) models.Status {
	return m.snapshot().StatusOf(goalID, day.Format(constants.DateFormat))
}

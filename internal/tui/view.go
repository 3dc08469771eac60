package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sallieha/HabitTrackerApp/internal/calendar"
	"github.com/sallieha/HabitTrackerApp/internal/constants"
	"github.com/sallieha/HabitTrackerApp/internal/models"
	"github.com/sallieha/HabitTrackerApp/internal/utils"
)

const goalColumnWidth = 18

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.view == constants.ViewWeek {
		body = m.weekView()
	} else {
		body = m.monthView()
	}

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		m.header(),
		"",
		body,
		"",
		m.dayDetail(),
		"",
		m.footer(),
		m.help.View(m.keys),
	))
}

func (m Model) header() string {
	month, week := inactiveTabStyle, inactiveTabStyle
	if m.view == constants.ViewWeek {
		week = activeTabStyle
	} else {
		month = activeTabStyle
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, month.Render("Month"), week.Render("Week"))

	var title string
	if m.view == constants.ViewWeek {
		start, end := calendar.RangeFor(m.selected, m.view)
		title = fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
	} else {
		title = m.selected.Format("January 2006")
	}

	line := tabs + "  " + titleStyle.Render(title)
	if mood := m.snapshot().TodaysMood; mood != nil {
		line += mutedStyle.Render("  mood today: " + mood.Mood)
	}
	return line
}

func weekdayHeader() string {
	var cols []string
	for d := time.Sunday; d <= time.Saturday; d++ {
		cols = append(cols, weekdayStyle.Render(d.String()[:3]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) monthView() string {
	first := utils.StartOfMonth(m.selected)
	gridStart := utils.StartOfWeek(first)
	gridEnd := utils.EndOfWeek(utils.EndOfMonth(m.selected))
	today := m.today()

	rows := []string{weekdayHeader()}
	var cells []string
	utils.EachDay(gridStart, gridEnd, func(day time.Time) {
		label := fmt.Sprintf("%2d%s", day.Day(), m.dayMark(day))
		style := cellStyle
		switch {
		case day.Equal(m.selected):
			style = selectedCellStyle
		case day.Month() != first.Month():
			style = outsideCellStyle
		case day.Equal(today):
			style = todayCellStyle
		}
		cells = append(cells, style.Render(label))
		if len(cells) == 7 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	})
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// dayMark summarises every goal due on day: ✓ all done, ✗ something
// missed, · still open.
func (m Model) dayMark(day time.Time) string {
	goals := m.snapshot().GoalsOn(day)
	if len(goals) == 0 {
		return " "
	}
	done := 0
	for _, g := range goals {
		switch m.statusOf(g.ID, day) {
		case models.StatusMissed:
			return "✗"
		case models.StatusCompleted:
			done++
		}
	}
	if done == len(goals) {
		return "✓"
	}
	return "·"
}

func (m Model) weekView() string {
	start, end := calendar.RangeFor(m.selected, m.view)
	snap := m.snapshot()

	var header []string
	header = append(header, strings.Repeat(" ", goalColumnWidth))
	utils.EachDay(start, end, func(day time.Time) {
		style := weekdayStyle
		if day.Equal(m.selected) {
			style = selectedCellStyle
		}
		header = append(header, style.Render(fmt.Sprintf("%s %d", day.Format("Mon")[:2], day.Day())))
	})
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, header...)}

	for _, g := range snap.Goals {
		var cols []string
		active := false
		utils.EachDay(start, end, func(day time.Time) {
			mark := ""
			if g.IsActiveOn(day) {
				active = true
				mark = statusMark(m.statusOf(g.ID, day))
			}
			cols = append(cols, cellStyle.Render(mark))
		})
		if !active {
			continue
		}
		name := lipgloss.NewStyle().Width(goalColumnWidth).Render(truncate(g.Title, goalColumnWidth-2))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, append([]string{name}, cols...)...))
	}
	if len(rows) == 1 {
		rows = append(rows, mutedStyle.Render("No goals this week"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) dayDetail() string {
	lines := []string{titleStyle.Render(m.selected.Format("Monday, January 2"))}

	goals := m.goalsOnSelected()
	if len(goals) == 0 && !m.loading {
		lines = append(lines, mutedStyle.Render("No goals scheduled"))
	}
	for i, g := range goals {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s %s", cursor, styledMark(m.statusOf(g.ID, m.selected)), g.Title)
		if g.StartTime != "" {
			line += mutedStyle.Render(fmt.Sprintf("  %s–%s", g.StartTime, g.EndTime))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) footer() string {
	switch {
	case m.err != nil:
		return dangerStyle.Render("Error: " + m.err.Error())
	case m.loading:
		return warningStyle.Render("Loading…")
	default:
		return mutedStyle.Render(m.status)
	}
}

func statusMark(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return "✓"
	case models.StatusMissed:
		return "✗"
	default:
		return "·"
	}
}

func styledMark(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return completedStyle.Render(statusMark(s))
	case models.StatusMissed:
		return missedStyle.Render(statusMark(s))
	default:
		return mutedStyle.Render(statusMark(s))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	titleStyle = lipgloss.NewStyle().Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(cellWidth).
			Align(lipgloss.Center)

	cellStyle = lipgloss.NewStyle().
			Width(cellWidth).
			Align(lipgloss.Center)

	selectedCellStyle = cellStyle.
				Foreground(lipgloss.Color("205")).
				Background(lipgloss.Color("236")).
				Bold(true)

	todayCellStyle = cellStyle.Underline(true)

	outsideCellStyle = cellStyle.Foreground(lipgloss.Color("238"))

	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	missedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)

const cellWidth = 6

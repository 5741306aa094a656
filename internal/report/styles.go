package report

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("#F2A541") // amber
	gainColor    = lipgloss.Color("#4ECDC4") // teal
	expenseColor = lipgloss.Color("#FF6B6B") // red
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	gainStyle    = lipgloss.NewStyle().Foreground(gainColor)
	expenseStyle = lipgloss.NewStyle().Foreground(expenseColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(subtleColor).
			Padding(0, 2)

	headerCellStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle       = lipgloss.NewStyle().Padding(0, 1)
)

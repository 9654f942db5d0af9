package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	doneStyle     = lipgloss.NewStyle().Faint(true).Strikethrough(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)

	// folder tiles cycle through a fixed palette by position
	folderColors = []lipgloss.Color{"#FF6347", "#4682B4", "#3CB371", "#DAA520", "#9370DB", "#20B2AA"}

	boxChecked   = "☑"
	boxUnchecked = "☐"
)

func folderStyle(index int) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(folderColors[index%len(folderColors)])
}

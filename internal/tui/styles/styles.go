package styles

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	Base     = lipgloss.Color("#1e1e2e")
	Text     = lipgloss.Color("#cdd6f4")
	Subtext0 = lipgloss.Color("#a6adc8")
	Surface0 = lipgloss.Color("#313244")

	Pink  = lipgloss.Color("#f5c2e7")
	Mauve = lipgloss.Color("#cba6f7")
	Red   = lipgloss.Color("#f38ba8")
	Green = lipgloss.Color("#a6e3a1")
	Teal  = lipgloss.Color("#94e2d5")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Pink).
			Bold(true).
			Padding(0, 1)

	ListItemStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(Text)

	SelectedItemStyle = lipgloss.NewStyle().
				BorderLeft(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Pink).
				Padding(0, 1).
				Foreground(Text)

	ProgressBarEmptyStyle = lipgloss.NewStyle().Foreground(Surface0)

	StatusRunning   = lipgloss.NewStyle().Foreground(Teal).Bold(true)
	StatusCompleted = lipgloss.NewStyle().Foreground(Green).Bold(true)
	StatusStopped   = lipgloss.NewStyle().Foreground(Mauve).Bold(true)

	FooterStyle = lipgloss.NewStyle().
			Foreground(Subtext0).
			Padding(0, 1)
)

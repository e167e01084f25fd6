package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/pulse/internal/status"
	"github.com/NamanBalaji/pulse/internal/tui/styles"
)

// ProgressBar returns a styled progress bar.
func ProgressBar(width int, percent float64, s status.Status) string {
	if width <= 0 {
		return ""
	}

	if percent < 0 {
		percent = 0
	}

	if percent > 1.0 {
		percent = 1.0
	}

	filledWidth := int(float64(width) * percent)
	emptyWidth := width - filledWidth

	filledStr := strings.Repeat("█", filledWidth)
	emptyStr := strings.Repeat("░", emptyWidth)

	var filledStyle lipgloss.Style

	switch s {
	case status.Running:
		filledStyle = lipgloss.NewStyle().Foreground(styles.Teal)
	case status.Completed:
		filledStyle = lipgloss.NewStyle().Foreground(styles.Green)
	case status.Stopped:
		filledStyle = lipgloss.NewStyle().Foreground(styles.Mauve)
	default:
		filledStyle = lipgloss.NewStyle().Foreground(styles.Text)
	}

	return filledStyle.Render(filledStr) + styles.ProgressBarEmptyStyle.Render(emptyStr)
}

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/NamanBalaji/pulse/internal/render"
	"github.com/NamanBalaji/pulse/internal/status"
	"github.com/NamanBalaji/pulse/internal/tracker"
	"github.com/NamanBalaji/pulse/internal/tui/styles"
)

// JobItem renders a single tracked job given its snapshot, the available
// width, and selection state. spin is the current spinner frame, shown in
// place of a percentage for indefinite jobs.
func JobItem(s tracker.Snapshot, width int, selected bool, spin string) string {
	name := s.Name
	maxNameLen := 30
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}

	var statusLabel string
	switch s.Status {
	case status.Running:
		statusLabel = styles.StatusRunning.Render("● running")
	case status.Completed:
		statusLabel = styles.StatusCompleted.Render("✔ completed")
	case status.Stopped:
		statusLabel = styles.StatusStopped.Render("⊘ stopped")
	default:
		statusLabel = styles.StatusStopped.Render("unknown")
	}

	percent := fmt.Sprintf("%.1f%%", s.Percent*100)
	if s.Indefinite {
		percent = spin
	}

	nameWidth := maxNameLen
	statusWidth := lipgloss.Width(statusLabel)

	percentStyle := lipgloss.NewStyle().Width(10).Align(lipgloss.Right)
	formattedPercent := percentStyle.Render(percent)

	remainingSpace := width - nameWidth - statusWidth - lipgloss.Width(formattedPercent) - 3
	if remainingSpace < 2 {
		remainingSpace = 2
	}

	padding := strings.Repeat(" ", remainingSpace)

	line1 := fmt.Sprintf("%-*s %s%s%s",
		nameWidth,
		name,
		statusLabel,
		padding,
		formattedPercent)

	barWidth := width - 2
	if barWidth < 10 {
		barWidth = 10
	}

	var bar string
	if s.Indefinite {
		bar = marqueeBar(barWidth, s.Progress)
	} else {
		bar = ProgressBar(barWidth, s.Percent, s.Status)
	}

	line2 := styles.ListItemStyle.Render(bar)

	var info string
	if s.Indefinite {
		info = fmt.Sprintf("%d units  %s", s.Progress, render.FormatTime("Elapsed:", s.Elapsed))
	} else {
		info = fmt.Sprintf("%d / %d units  %s  %s",
			s.Progress,
			s.Total,
			render.FormatTime("Elapsed:", s.Elapsed),
			render.FormatTime("ETC:", s.ETC))
	}

	line3 := styles.ListItemStyle.Faint(true).Render(info)

	item := lipgloss.JoinVertical(lipgloss.Left, line1, line2, line3)
	if selected {
		return styles.SelectedItemStyle.Width(width).Render(item)
	}

	return styles.ListItemStyle.Width(width).Render(item)
}

// marqueeBar renders an indefinite-mode bar: a single marker cycling through
// the track.
func marqueeBar(width int, progress int64) string {
	position := int(progress % int64(width))

	var b strings.Builder
	b.WriteString(styles.ProgressBarEmptyStyle.Render(strings.Repeat("░", position)))
	b.WriteString(styles.StatusRunning.Render("█"))
	b.WriteString(styles.ProgressBarEmptyStyle.Render(strings.Repeat("░", width-position-1)))

	return b.String()
}

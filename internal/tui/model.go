package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NamanBalaji/pulse/internal/tracker"
	"github.com/NamanBalaji/pulse/internal/tui/components"
	"github.com/NamanBalaji/pulse/internal/tui/styles"
)

// Model is the main TUI application model: a live list of tracked jobs.
type Model struct {
	order     []uuid.UUID
	snapshots map[uuid.UUID]tracker.Snapshot
	selected  int

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width, height int
}

type snapshotMsg tracker.Snapshot

// NewModel creates a TUI model seeded with the given trackers.
func NewModel(trackers []*tracker.Tracker) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(styles.Pink)

	order := make([]uuid.UUID, 0, len(trackers))
	snapshots := make(map[uuid.UUID]tracker.Snapshot, len(trackers))

	for _, t := range trackers {
		s := t.Snapshot()
		order = append(order, s.ID)
		snapshots[s.ID] = s
	}

	return &Model{
		order:     order,
		snapshots: snapshots,
		spinner:   sp,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Init starts the spinner.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.order)-1 {
				m.selected++
			}
		}

		return m, nil

	case snapshotMsg:
		s := tracker.Snapshot(msg)
		if _, known := m.snapshots[s.ID]; !known {
			m.order = append(m.order, s.ID)
		}
		m.snapshots[s.ID] = s

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

// View renders the tracked jobs.
func (m *Model) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	rows := []string{styles.TitleStyle.Render("pulse")}

	spin := m.spinner.View()

	for i, id := range m.order {
		s, ok := m.snapshots[id]
		if !ok {
			continue
		}

		rows = append(rows, components.JobItem(s, width-2, i == m.selected, spin), "")
	}

	rows = append(rows, styles.FooterStyle.Render(m.help.View(m.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

package tui

import (
	"context"

	"github.com/google/uuid"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NamanBalaji/pulse/internal/monitor"
	"github.com/NamanBalaji/pulse/internal/tracker"
)

// Run initializes and starts the TUI. Snapshots published to mon are
// forwarded into the program until ctx is cancelled or the user quits.
func Run(ctx context.Context, mon *monitor.Monitor, trackers []*tracker.Tracker) error {
	m := NewModel(trackers)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	listener := make(chan tracker.Snapshot, 64)
	id := uuid.New()
	mon.RegisterListener(id, listener)
	defer mon.UnregisterListener(id)

	go func() {
		for {
			select {
			case <-ctx.Done():
				p.Quit()
				return
			case s, ok := <-listener:
				if !ok {
					p.Quit()
					return
				}

				p.Send(snapshotMsg(s))
			}
		}
	}()

	_, err := p.Run()

	return err
}

package monitor

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/NamanBalaji/pulse/internal/tracker"
)

// Monitor fans tracker snapshots out to registered listeners. Producers tick
// their trackers and publish snapshots; display layers register a listener
// channel and consume them.
type Monitor struct {
	snapshots  chan tracker.Snapshot
	listeners  map[uuid.UUID]chan<- tracker.Snapshot
	listenerMu sync.RWMutex

	done chan struct{}
}

// New creates a monitor with the given snapshot buffer size.
func New(buffer int) *Monitor {
	return &Monitor{
		snapshots: make(chan tracker.Snapshot, buffer),
		listeners: make(map[uuid.UUID]chan<- tracker.Snapshot),
		done:      make(chan struct{}),
	}
}

// Start begins forwarding snapshots to listeners.
func (m *Monitor) Start(ctx context.Context) {
	go m.forward(ctx)
}

// Stop shuts the monitor down and closes all listener channels.
func (m *Monitor) Stop() {
	close(m.done)

	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	for _, ch := range m.listeners {
		close(ch)
	}

	m.listeners = make(map[uuid.UUID]chan<- tracker.Snapshot)
}

// Publish queues a snapshot for broadcast. It never blocks; snapshots are
// dropped when the monitor is saturated, the next tick supersedes them anyway.
func (m *Monitor) Publish(s tracker.Snapshot) {
	select {
	case m.snapshots <- s:
	default:
	}
}

// RegisterListener adds a listener channel under an id.
func (m *Monitor) RegisterListener(id uuid.UUID, listener chan<- tracker.Snapshot) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	m.listeners[id] = listener
}

// UnregisterListener removes a listener.
func (m *Monitor) UnregisterListener(id uuid.UUID) {
	m.listenerMu.Lock()
	defer m.listenerMu.Unlock()

	delete(m.listeners, id)
}

func (m *Monitor) forward(ctx context.Context) {
	for {
		select {
		case s := <-m.snapshots:
			m.broadcast(s)
		case <-m.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// broadcast forwards a snapshot to every listener without blocking on slow ones.
func (m *Monitor) broadcast(s tracker.Snapshot) {
	m.listenerMu.RLock()
	defer m.listenerMu.RUnlock()

	for _, listener := range m.listeners {
		select {
		case listener <- s:
		default:
		}
	}
}

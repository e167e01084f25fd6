package monitor_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/pulse/internal/monitor"
	"github.com/NamanBalaji/pulse/internal/tracker"
)

func TestBroadcastToListeners(t *testing.T) {
	m := monitor.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	a := make(chan tracker.Snapshot, 1)
	b := make(chan tracker.Snapshot, 1)
	m.RegisterListener(uuid.New(), a)
	m.RegisterListener(uuid.New(), b)

	want := tracker.Snapshot{Name: "job", Progress: 3, Total: 10}
	m.Publish(want)

	for i, ch := range []chan tracker.Snapshot{a, b} {
		select {
		case got := <-ch:
			if got.Name != want.Name || got.Progress != want.Progress {
				t.Errorf("listener %d got %+v, want %+v", i, got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("listener %d never received the snapshot", i)
		}
	}
}

func TestUnregisteredListenerReceivesNothing(t *testing.T) {
	m := monitor.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	id := uuid.New()
	kept := make(chan tracker.Snapshot, 4)
	dropped := make(chan tracker.Snapshot, 4)
	m.RegisterListener(uuid.New(), kept)
	m.RegisterListener(id, dropped)
	m.UnregisterListener(id)

	m.Publish(tracker.Snapshot{Name: "job"})

	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatalf("remaining listener never received the snapshot")
	}

	select {
	case s := <-dropped:
		t.Fatalf("unregistered listener received %+v", s)
	default:
	}
}

func TestSlowListenerDoesNotBlock(t *testing.T) {
	m := monitor.New(8)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	// Unbuffered and never read: every send to it must be skipped.
	stuck := make(chan tracker.Snapshot)
	live := make(chan tracker.Snapshot, 16)
	m.RegisterListener(uuid.New(), stuck)
	m.RegisterListener(uuid.New(), live)

	for i := range 10 {
		m.Publish(tracker.Snapshot{Progress: int64(i)})
	}

	select {
	case <-live:
	case <-time.After(time.Second):
		t.Fatalf("broadcast stalled behind a slow listener")
	}
}

func TestStopClosesListeners(t *testing.T) {
	m := monitor.New(1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.Start(ctx)

	ch := make(chan tracker.Snapshot, 1)
	m.RegisterListener(uuid.New(), ch)
	m.Stop()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatalf("expected listener channel to be closed")
		}
	case <-time.After(time.Second):
		t.Fatalf("listener channel not closed after Stop")
	}
}

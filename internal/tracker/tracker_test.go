package tracker

import (
	"testing"
	"time"

	"github.com/NamanBalaji/pulse/internal/etc"
	"github.com/NamanBalaji/pulse/internal/status"
)

// fakeClock advances by a fixed step on every read.
type fakeClock struct {
	now  time.Time
	step time.Duration
}

func (c *fakeClock) read() time.Time {
	c.now = c.now.Add(c.step)
	return c.now
}

func newFakeClock(step time.Duration) *fakeClock {
	return &fakeClock{
		now:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		step: step,
	}
}

func TestDeterminateLifecycle(t *testing.T) {
	clock := newFakeClock(10 * time.Millisecond)
	tr := newWithClock("build", 5, clock.read)

	if tr.Done() {
		t.Fatalf("fresh tracker reports done")
	}
	if tr.Status() != status.Running {
		t.Fatalf("fresh tracker status = %d, want Running", tr.Status())
	}
	if tr.ETC() != etc.Unavailable {
		t.Fatalf("ETC before first tick = %v, want Unavailable", tr.ETC())
	}

	for i := int64(1); i <= 5; i++ {
		tr.Tick()
		if tr.Progress() != i {
			t.Fatalf("progress after tick %d = %d", i, tr.Progress())
		}
	}

	if !tr.Done() {
		t.Fatalf("tracker not done after total ticks")
	}
	if tr.Status() != status.Completed {
		t.Fatalf("status after completion = %d, want Completed", tr.Status())
	}

	// Extra ticks past the total must not advance progress.
	tr.Tick()
	if tr.Progress() != 5 {
		t.Fatalf("progress advanced past total: %d", tr.Progress())
	}
}

func TestIndefiniteTracker(t *testing.T) {
	clock := newFakeClock(time.Millisecond)
	tr := newWithClock("scan", 0, clock.read)

	if !tr.Indefinite() {
		t.Fatalf("tracker with zero total should be indefinite")
	}

	for range 100 {
		tr.Tick()
	}

	if tr.Progress() != 100 {
		t.Fatalf("progress = %d, want 100", tr.Progress())
	}
	if tr.Done() {
		t.Fatalf("indefinite tracker reports done")
	}
	if tr.ETC() != etc.Unavailable {
		t.Fatalf("indefinite ETC = %v, want Unavailable", tr.ETC())
	}
}

func TestStopFreezesProgress(t *testing.T) {
	clock := newFakeClock(time.Millisecond)
	tr := newWithClock("scan", 0, clock.read)

	tr.Tick()
	tr.Tick()
	tr.Stop()

	if tr.Status() != status.Stopped {
		t.Fatalf("status after Stop = %d, want Stopped", tr.Status())
	}

	tr.Tick()
	if tr.Progress() != 2 {
		t.Fatalf("progress advanced after Stop: %d", tr.Progress())
	}
}

func TestSnapshot(t *testing.T) {
	clock := newFakeClock(100 * time.Millisecond)
	tr := newWithClock("copy", 10, clock.read)

	tr.Tick()
	tr.Tick()

	s := tr.Snapshot()
	if s.ID != tr.ID() || s.Name != "copy" {
		t.Fatalf("snapshot identity mismatch: %+v", s)
	}
	if s.Progress != 2 || s.Total != 10 || s.Percent != 0.2 {
		t.Fatalf("snapshot progress fields wrong: %+v", s)
	}
	if s.Indefinite {
		t.Fatalf("determinate snapshot flagged indefinite")
	}
	if s.ETC == etc.Unavailable || s.ETC <= 0 {
		t.Fatalf("snapshot ETC = %v, want a positive estimate", s.ETC)
	}
	if s.Elapsed <= 0 {
		t.Fatalf("snapshot elapsed = %v", s.Elapsed)
	}
}

func TestIndependentTrackers(t *testing.T) {
	clock := newFakeClock(time.Millisecond)
	a := newWithClock("a", 100, clock.read)
	b := newWithClock("b", 100, clock.read)

	for range 30 {
		a.Tick()
	}
	b.Tick()

	if a.Progress() != 30 || b.Progress() != 1 {
		t.Fatalf("trackers share state: a=%d b=%d", a.Progress(), b.Progress())
	}
}

package tracker

import (
	"time"

	"github.com/google/uuid"

	"github.com/NamanBalaji/pulse/internal/etc"
	"github.com/NamanBalaji/pulse/internal/status"
)

// Tracker follows a single job's progress against an optional total. A zero
// total makes the tracker indefinite: progress grows without bound and no
// completion estimate is available.
//
// Each tracker owns its estimator and counters outright, so any number of
// trackers can run side by side. A tracker is single-owner state: one
// goroutine ticks it and reads it, anything else must synchronize externally.
type Tracker struct {
	id        uuid.UUID
	name      string
	total     int64
	progress  int64
	startTime time.Time
	state     status.Status
	lastETC   time.Duration
	estimator *etc.Estimator

	now func() time.Time
}

// New creates a tracker for a named job. total is the number of units the job
// will complete, or 0 when unknown.
func New(name string, total int64) *Tracker {
	return newWithClock(name, total, time.Now)
}

func newWithClock(name string, total int64, now func() time.Time) *Tracker {
	start := now()

	return &Tracker{
		id:        uuid.New(),
		name:      name,
		total:     total,
		startTime: start,
		state:     status.Running,
		lastETC:   etc.Unavailable,
		estimator: etc.New(total, start),
		now:       now,
	}
}

// Tick records one completed unit of work and refreshes the completion
// estimate. Ticks past a determinate total are ignored.
func (t *Tracker) Tick() {
	if t.state == status.Stopped {
		return
	}

	if t.total == 0 || !t.Done() {
		t.progress++
	}

	if t.total == 0 {
		return
	}

	t.lastETC = t.estimator.Estimate(t.now(), t.progress)

	if t.Done() {
		t.state = status.Completed
	}
}

// Done reports whether a determinate tracker has reached its total. It is
// always false for indefinite trackers.
func (t *Tracker) Done() bool {
	return t.total != 0 && t.progress >= t.total
}

// Stop marks an unfinished tracker as stopped. Further ticks are ignored.
func (t *Tracker) Stop() {
	if t.state == status.Running {
		t.state = status.Stopped
	}
}

// ID returns the tracker's unique id.
func (t *Tracker) ID() uuid.UUID {
	return t.id
}

// Name returns the job name.
func (t *Tracker) Name() string {
	return t.name
}

// Progress returns the number of completed units.
func (t *Tracker) Progress() int64 {
	return t.progress
}

// Total returns the unit total, or 0 for indefinite trackers.
func (t *Tracker) Total() int64 {
	return t.total
}

// Indefinite reports whether the tracker has no known total.
func (t *Tracker) Indefinite() bool {
	return t.total == 0
}

// Status returns the tracker's lifecycle state.
func (t *Tracker) Status() status.Status {
	return t.state
}

// Elapsed returns the wall time since the tracker was created.
func (t *Tracker) Elapsed() time.Duration {
	return t.now().Sub(t.startTime)
}

// ETC returns the estimated time to completion as of the last tick, or
// etc.Unavailable for indefinite trackers and before the first tick.
func (t *Tracker) ETC() time.Duration {
	if t.total == 0 {
		return etc.Unavailable
	}

	return t.lastETC
}

// TickStats summarizes the recorded inter-tick durations, for reporting once
// a job finishes.
func (t *Tracker) TickStats() (etc.Stats, bool) {
	return t.estimator.WindowStats()
}

// Snapshot is an immutable view of a tracker for display layers.
type Snapshot struct {
	ID         uuid.UUID
	Name       string
	Progress   int64
	Total      int64
	Percent    float64
	Elapsed    time.Duration
	ETC        time.Duration
	Status     status.Status
	Indefinite bool
}

// Snapshot captures the tracker's current state.
func (t *Tracker) Snapshot() Snapshot {
	var percent float64
	if t.total > 0 {
		percent = float64(t.progress) / float64(t.total)
		if percent > 1.0 {
			percent = 1.0
		}
	}

	return Snapshot{
		ID:         t.id,
		Name:       t.name,
		Progress:   t.progress,
		Total:      t.total,
		Percent:    percent,
		Elapsed:    t.Elapsed(),
		ETC:        t.ETC(),
		Status:     t.state,
		Indefinite: t.total == 0,
	}
}

package etc

import (
	"math"
	"time"

	"github.com/NamanBalaji/pulse/internal/history"
)

// Unavailable is returned when no completion estimate can be made yet, for
// example before the first tick or when the total is unknown.
const Unavailable = time.Duration(math.MaxInt64)

const (
	// windowSize caps the number of inter-tick durations kept for the
	// recent-average signal.
	windowSize = 10

	// refreshInterval is the number of steady-state ticks between
	// recomputations. Returning a cached value in between keeps the per-tick
	// cost flat and stops the displayed number from jittering on every tick.
	refreshInterval = 5
)

// Estimator predicts the remaining time of a job from its tick timestamps.
// It blends two signals: the average rate over the whole run and the average
// over a rolling window of recent inter-tick durations, so bursty or
// decelerating workloads are smoothed without discarding the long-run trend.
//
// All state is owned by a single Estimator instance. Not safe for concurrent
// use; callers driving one estimator from several goroutines must serialize
// externally.
type Estimator struct {
	total     int64
	startTime time.Time
	lastTick  time.Time
	lastETC   time.Duration
	counter   int
	window    *history.History[int64]
}

// New creates an estimator for a job of total units starting at start.
// The rolling window holds at most windowSize samples, or total/2 for small
// jobs. A total of zero means the job is indefinite and Estimate always
// returns Unavailable.
func New(total int64, start time.Time) *Estimator {
	capacity := int64(windowSize)
	if total <= 2*windowSize {
		capacity = total / 2
	}

	return &Estimator{
		total:     total,
		startTime: start,
		lastTick:  start,
		lastETC:   Unavailable,
		window:    history.New[int64](int(capacity)),
	}
}

// Estimate returns the estimated time to completion as of now. It must be
// called exactly once per completed unit of work, with progress already
// advanced by one. Progress above total is a caller error and is not
// validated here.
func (e *Estimator) Estimate(now time.Time, progress int64) time.Duration {
	if progress == 0 || e.total == 0 {
		return Unavailable
	}

	elapsed := now.Sub(e.startTime).Milliseconds()
	overall := elapsed * (e.total - progress) / progress

	// Warm-up: the recent average is not trusted until the window is full.
	// These ticks still record their delta so the window can fill.
	if e.counter == 0 && e.window.Len() < e.window.Cap() {
		e.window.Push(now.Sub(e.lastTick).Milliseconds())
		e.lastTick = now
		e.lastETC = time.Duration(overall) * time.Millisecond

		return e.lastETC
	}

	e.counter++
	if e.counter%refreshInterval == 0 {
		e.window.Push(now.Sub(e.lastTick).Milliseconds())

		recentAvg, _ := e.window.Mean()
		recent := recentAvg * float64(e.total-progress) / float64(progress)
		combined := (float64(overall) + recent) / 2

		e.lastTick = now
		e.lastETC = time.Duration(combined) * time.Millisecond
		e.counter = 0

		return e.lastETC
	}

	// Between refreshes the previous estimate is returned unchanged.
	return e.lastETC
}

// Stats summarizes the inter-tick durations recorded so far, in milliseconds.
type Stats struct {
	Mean    float64
	Median  float64
	StdDev  float64
	Min     int64
	Max     int64
	Samples int
}

// WindowStats reports aggregate statistics over the recorded inter-tick
// durations. The second return value is false when no samples exist yet.
func (e *Estimator) WindowStats() (Stats, bool) {
	if e.window.Empty() {
		return Stats{}, false
	}

	mean, _ := e.window.Mean()
	median, _ := e.window.Median()
	sd, _ := e.window.StdDev()
	min, _ := e.window.Minimum()
	max, _ := e.window.Maximum()

	return Stats{
		Mean:    mean,
		Median:  median,
		StdDev:  sd,
		Min:     min,
		Max:     max,
		Samples: e.window.Len(),
	}, true
}

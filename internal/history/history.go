package history

import (
	"math"
	"slices"
)

// Number constrains the sample types the buffer can aggregate.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// History is a fixed-capacity rolling buffer of numeric samples. Once the
// buffer is full, each push evicts the single oldest sample, so memory stays
// bounded no matter how long the producing job runs. Aggregates are computed
// on demand rather than maintained incrementally.
//
// History is not safe for concurrent use; every instance has a single owner.
type History[T Number] struct {
	buf  []T
	head int
	size int
}

// New creates a buffer that holds at most capacity samples.
// Capacities below 1 are clamped to 1.
func New[T Number](capacity int) *History[T] {
	if capacity < 1 {
		capacity = 1
	}

	return &History[T]{buf: make([]T, capacity)}
}

// Push appends a sample, evicting the oldest one first if the buffer is full.
func (h *History[T]) Push(v T) {
	if h.size == len(h.buf) {
		h.buf[h.head] = v
		h.head = (h.head + 1) % len(h.buf)

		return
	}

	h.buf[(h.head+h.size)%len(h.buf)] = v
	h.size++
}

// Pop removes and returns the oldest sample. The second return value is false
// when the buffer is empty.
func (h *History[T]) Pop() (T, bool) {
	var zero T

	if h.size == 0 {
		return zero, false
	}

	v := h.buf[h.head]
	h.buf[h.head] = zero
	h.head = (h.head + 1) % len(h.buf)
	h.size--

	return v, true
}

// Values returns the samples in oldest-to-newest order.
func (h *History[T]) Values() []T {
	out := make([]T, h.size)
	for i := range out {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}

	return out
}

// Len returns the number of samples currently held.
func (h *History[T]) Len() int {
	return h.size
}

// Cap returns the fixed capacity set at construction.
func (h *History[T]) Cap() int {
	return len(h.buf)
}

// Empty reports whether the buffer holds no samples.
func (h *History[T]) Empty() bool {
	return h.size == 0
}

// Reset removes all samples; the capacity is unchanged.
func (h *History[T]) Reset() {
	var zero T
	for i := range h.buf {
		h.buf[i] = zero
	}

	h.head = 0
	h.size = 0
}

// Mean returns the arithmetic mean of the samples.
func (h *History[T]) Mean() (float64, bool) {
	if h.size == 0 {
		return 0, false
	}

	var sum float64
	for i := range h.size {
		sum += float64(h.buf[(h.head+i)%len(h.buf)])
	}

	return sum / float64(h.size), true
}

// Median returns the middle sample after sorting a private copy; an even
// count averages the two middle samples.
func (h *History[T]) Median() (float64, bool) {
	if h.size == 0 {
		return 0, false
	}

	sorted := h.Values()
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2, true
	}

	return float64(sorted[mid]), true
}

// Minimum returns the smallest sample.
func (h *History[T]) Minimum() (T, bool) {
	var min T

	if h.size == 0 {
		return min, false
	}

	min = h.buf[h.head]
	for i := 1; i < h.size; i++ {
		if v := h.buf[(h.head+i)%len(h.buf)]; v < min {
			min = v
		}
	}

	return min, true
}

// Maximum returns the largest sample.
func (h *History[T]) Maximum() (T, bool) {
	var max T

	if h.size == 0 {
		return max, false
	}

	max = h.buf[h.head]
	for i := 1; i < h.size; i++ {
		if v := h.buf[(h.head+i)%len(h.buf)]; v > max {
			max = v
		}
	}

	return max, true
}

// Variance returns the population variance, dividing by the sample count
// rather than count-1.
func (h *History[T]) Variance() (float64, bool) {
	mean, ok := h.Mean()
	if !ok {
		return 0, false
	}

	var sum float64

	for i := range h.size {
		d := float64(h.buf[(h.head+i)%len(h.buf)]) - mean
		sum += d * d
	}

	return sum / float64(h.size), true
}

// StdDev returns the square root of the population variance.
func (h *History[T]) StdDev() (float64, bool) {
	v, ok := h.Variance()
	if !ok {
		return 0, false
	}

	return math.Sqrt(v), true
}

package filter

import (
	"math"
	"slices"

	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
)

// MaxWindowSize bounds the number of buffered samples regardless of the
// time constant and sample rate.
const MaxWindowSize = 4096

// window is the time-constant sized sliding window shared by Mean and
// Median. Raw triads are kept in arrival order in a ring for FIFO eviction
// and, per axis, in ascending order for order statistics.
//
// The window capacity is ceil(τ / avg), avg being the cumulative mean
// sample interval since the first sample, so the window always spans about
// τ seconds.
type window struct {
	timeConstant float64

	samples ring
	sorted  [3][]float64

	firstTimestamp int64
	lastTimestamp  int64
	intervals      int64
	started        bool
}

func newWindow(timeConstant float64) window {
	return window{timeConstant: timeConstant}
}

// add buffers a sample and reports whether a time delta is established.
// A timestamp not after the previous one is ignored.
func (w *window) add(v [3]float64, timestamp int64) bool {
	if !w.started {
		w.started = true
		w.firstTimestamp = timestamp
		w.lastTimestamp = timestamp
		w.push(v)
		return false
	}

	dt := timestamp - w.lastTimestamp
	if dt <= 0 {
		if dt < 0 {
			monitoring.Debugf("window: ignoring out-of-order sample at %d (last %d)", timestamp, w.lastTimestamp)
		}
		return false
	}
	w.lastTimestamp = timestamp
	w.intervals++

	w.push(v)
	for c := w.capacity(); w.samples.len() > c; {
		w.evict()
	}
	return true
}

// capacityTolerance absorbs rounding in τ/avg so exact multiples of the
// sample interval do not gain an extra sample.
const capacityTolerance = 1e-9

// capacity is only meaningful once at least one interval was observed.
func (w *window) capacity() int {
	if w.intervals == 0 {
		return MaxWindowSize
	}
	avg := float64(w.lastTimestamp-w.firstTimestamp) / float64(w.intervals) / nanosPerSecond
	n := math.Ceil(w.timeConstant/avg - capacityTolerance)
	switch {
	case n < 1:
		return 1
	case n > MaxWindowSize:
		return MaxWindowSize
	}
	return int(n)
}

// averageInterval is the cumulative mean sample interval in seconds, or 0
// before two samples were seen.
func (w *window) averageInterval() float64 {
	if w.intervals == 0 {
		return 0
	}
	return float64(w.lastTimestamp-w.firstTimestamp) / float64(w.intervals) / nanosPerSecond
}

func (w *window) push(v [3]float64) {
	w.samples.pushBack(v)
	for i := range w.sorted {
		idx, _ := slices.BinarySearch(w.sorted[i], v[i])
		w.sorted[i] = slices.Insert(w.sorted[i], idx, v[i])
	}
}

func (w *window) evict() {
	v := w.samples.popFront()
	for i := range w.sorted {
		if idx, found := slices.BinarySearch(w.sorted[i], v[i]); found {
			w.sorted[i] = slices.Delete(w.sorted[i], idx, idx+1)
		}
	}
}

func (w *window) reset() {
	*w = newWindow(w.timeConstant)
}

func (w *window) clone() window {
	c := *w
	c.samples = w.samples.clone()
	for i := range w.sorted {
		c.sorted[i] = slices.Clone(w.sorted[i])
	}
	return c
}

// ring is a growable FIFO of triads with O(1) amortized push and pop.
type ring struct {
	buf  [][3]float64
	head int
	size int
}

func (r *ring) len() int {
	return r.size
}

func (r *ring) pushBack(v [3]float64) {
	if r.size == len(r.buf) {
		r.grow()
	}
	r.buf[(r.head+r.size)%len(r.buf)] = v
	r.size++
}

func (r *ring) popFront() [3]float64 {
	v := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.size--
	return v
}

// at returns the i-th oldest element.
func (r *ring) at(i int) [3]float64 {
	return r.buf[(r.head+i)%len(r.buf)]
}

func (r *ring) grow() {
	n := 2 * len(r.buf)
	if n < 8 {
		n = 8
	}
	buf := make([][3]float64, n)
	for i := 0; i < r.size; i++ {
		buf[i] = r.at(i)
	}
	r.buf = buf
	r.head = 0
}

func (r *ring) clone() ring {
	return ring{buf: slices.Clone(r.buf), head: r.head, size: r.size}
}

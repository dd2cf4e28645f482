package pipeline

import (
	"time"

	"github.com/banshee-data/inertial.conditioner/internal/interp"
)

// Aligner keeps a bounded history of one stream so it can be re-timed onto
// another stream's timestamps with interp.Resample. History is bounded by
// sample count and by age relative to the newest sample.
type Aligner[M interp.Sample[M]] struct {
	history    []M
	maxSamples int
	maxAge     int64 // nanoseconds, 0 disables
	newest     int64
}

// NewAligner returns an Aligner holding at most maxSamples samples no older
// than maxAge behind the newest one. maxSamples below 1 is treated as 1.
func NewAligner[M interp.Sample[M]](maxSamples int, maxAge time.Duration) *Aligner[M] {
	if maxSamples < 1 {
		maxSamples = 1
	}
	return &Aligner[M]{
		history:    make([]M, 0, maxSamples),
		maxSamples: maxSamples,
		maxAge:     maxAge.Nanoseconds(),
	}
}

// Add records m and evicts samples past the count or age bounds.
func (a *Aligner[M]) Add(m M) {
	if len(a.history) == 0 || m.Time() > a.newest {
		a.newest = m.Time()
	}
	if len(a.history) == a.maxSamples {
		a.history = append(a.history[:0], a.history[1:]...)
	}
	a.history = append(a.history, m)

	if a.maxAge <= 0 {
		return
	}
	cutoff := a.newest - a.maxAge
	kept := a.history[:0]
	for _, h := range a.history {
		if h.Time() >= cutoff {
			kept = append(kept, h)
		}
	}
	a.history = kept
}

// At writes the sample at t into dst. It returns false when no history is
// held.
func (a *Aligner[M]) At(t int64, dst *M) bool {
	return interp.Resample(a.history, t, dst)
}

// Closest returns the held sample nearest t without interpolating.
func (a *Aligner[M]) Closest(t int64) (M, bool) {
	return interp.FindClosest(a.history, t)
}

// Len returns the number of held samples.
func (a *Aligner[M]) Len() int {
	return len(a.history)
}

// Reset discards the history.
func (a *Aligner[M]) Reset() {
	a.history = a.history[:0]
	a.newest = 0
}

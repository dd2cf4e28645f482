package interp

// Linear interpolates, or extrapolates, from the two most recently pushed
// samples. For a query t with samples at t0 (older) and t1 (newer) the
// factor is (t - t0) / (t1 - t0).
type Linear[M Sample[M]] struct {
	history              history[M]
	copyIfNotInitialized bool
}

// NewLinear returns an empty linear interpolator.
func NewLinear[M Sample[M]](copyIfNotInitialized bool) *Linear[M] {
	return &Linear[M]{
		history:              newHistory[M](2),
		copyIfNotInitialized: copyIfNotInitialized,
	}
}

// Push records m as the newest sample.
func (l *Linear[M]) Push(m M) {
	l.history.push(m)
}

// Ready reports whether two samples have been pushed.
func (l *Linear[M]) Ready() bool {
	return l.history.full()
}

// Interpolate writes the sample at t into dst.
func (l *Linear[M]) Interpolate(current M, t int64, dst *M) bool {
	if !l.Ready() {
		return notReady(l.copyIfNotInitialized, current, dst)
	}
	*dst = lerpAt(l.history.at(0), l.history.at(1), t)
	return true
}

// Reset discards both samples.
func (l *Linear[M]) Reset() {
	l.history.reset()
}

package interp

// Quadratic fits a second-degree polynomial per field through the three
// most recently pushed samples and evaluates it at the query timestamp.
//
// The fit is the Lagrange form over the actual elapsed times, so unevenly
// spaced samples are handled exactly. With x measured from the oldest
// sample (x1, x2 for the two newer ones) the weights are:
//
//	w0 = (x-x1)(x-x2) / (x1·x2)
//	w1 = x(x-x2) / (x1(x1-x2))
//	w2 = x(x-x1) / (x2(x2-x1))
//
// Each weight is exactly 1 at its own sample, so buffered samples are
// reproduced bit-for-bit.
type Quadratic[M Sample[M]] struct {
	history              history[M]
	copyIfNotInitialized bool
}

// NewQuadratic returns an empty quadratic interpolator.
func NewQuadratic[M Sample[M]](copyIfNotInitialized bool) *Quadratic[M] {
	return &Quadratic[M]{
		history:              newHistory[M](3),
		copyIfNotInitialized: copyIfNotInitialized,
	}
}

// Push records m as the newest sample.
func (q *Quadratic[M]) Push(m M) {
	q.history.push(m)
}

// Ready reports whether three samples have been pushed.
func (q *Quadratic[M]) Ready() bool {
	return q.history.full()
}

// Interpolate writes the sample at t into dst.
func (q *Quadratic[M]) Interpolate(current M, t int64, dst *M) bool {
	if !q.Ready() {
		return notReady(q.copyIfNotInitialized, current, dst)
	}
	*dst = fitAt(q.history.at(0), q.history.at(1), q.history.at(2), t)
	return true
}

// Reset discards all samples.
func (q *Quadratic[M]) Reset() {
	q.history.reset()
}

// fitAt evaluates the parabola through m0, m1, m2 at t. A duplicated
// timestamp leaves only two distinct constraints; the older duplicate is
// dropped and the remaining pair is interpolated linearly.
func fitAt[M Sample[M]](m0, m1, m2 M, t int64) M {
	t0, t1, t2 := m0.Time(), m1.Time(), m2.Time()
	switch {
	case t1 == t2:
		return lerpAt(m0, m2, t)
	case t0 == t1, t0 == t2:
		return lerpAt(m1, m2, t)
	}

	x := float64(t - t0)
	x1 := float64(t1 - t0)
	x2 := float64(t2 - t0)
	w := [3]float64{
		(x - x1) * (x - x2) / (x1 * x2),
		x * (x - x2) / (x1 * (x1 - x2)),
		x * (x - x1) / (x2 * (x2 - x1)),
	}
	return m0.Blend(m1, m2, w, t)
}

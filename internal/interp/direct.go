package interp

// Direct is the pass-through strategy: it keeps no history and always
// returns the current sample verbatim.
type Direct[M Sample[M]] struct{}

// NewDirect returns a pass-through interpolator.
func NewDirect[M Sample[M]]() *Direct[M] {
	return &Direct[M]{}
}

// Push is a no-op.
func (*Direct[M]) Push(M) {}

// Interpolate copies current into dst.
func (*Direct[M]) Interpolate(current M, _ int64, dst *M) bool {
	*dst = current
	return true
}

// Reset is a no-op.
func (*Direct[M]) Reset() {}

// Ready is always true.
func (*Direct[M]) Ready() bool { return true }

package interp

import (
	"errors"
	"fmt"
)

// Sample is implemented by measurement types that can be interpolated.
type Sample[M any] interface {
	// Time returns the sample timestamp in nanoseconds.
	Time() int64
	// Retimed returns a copy stamped with t.
	Retimed(t int64) M
	// Lerp interpolates from the receiver (factor 0) to next (factor 1).
	Lerp(next M, factor float64, t int64) M
	// Blend combines the receiver, m1 and m2 with per-sample weights.
	Blend(m1, m2 M, w [3]float64, t int64) M
}

// Interpolator reconstructs a sample at a query timestamp from a short
// history of pushed samples.
type Interpolator[M Sample[M]] interface {
	// Push appends a copy of m to the history, evicting the oldest sample
	// once the history is full.
	Push(m M)
	// Interpolate writes the sample at timestamp t into dst and returns
	// true once enough history is available. Until then it returns false
	// and, if the interpolator copies when not initialized, writes current
	// into dst; otherwise dst is left untouched.
	Interpolate(current M, t int64, dst *M) bool
	// Reset discards the history.
	Reset()
	// Ready reports whether Interpolate will succeed.
	Ready() bool
}

// Method selects an interpolation strategy.
type Method string

const (
	// MethodDirect passes the current sample through unchanged.
	MethodDirect Method = "direct"
	// MethodLinear interpolates between the two most recent samples.
	MethodLinear Method = "linear"
	// MethodQuadratic fits a parabola through the three most recent samples.
	MethodQuadratic Method = "quadratic"
)

// ValidMethods lists the supported strategies.
var ValidMethods = []Method{MethodDirect, MethodLinear, MethodQuadratic}

// ErrUnknownMethod is returned for an unsupported Method.
var ErrUnknownMethod = errors.New("unknown interpolation method")

// ParseMethod validates a method name.
func ParseMethod(s string) (Method, error) {
	for _, m := range ValidMethods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// RequiredSamples returns how many pushes a method needs before it is ready.
func (m Method) RequiredSamples() int {
	switch m {
	case MethodLinear:
		return 2
	case MethodQuadratic:
		return 3
	default:
		return 0
	}
}

// New returns the interpolator for method.
func New[M Sample[M]](method Method, copyIfNotInitialized bool) (Interpolator[M], error) {
	switch method {
	case MethodDirect:
		return NewDirect[M](), nil
	case MethodLinear:
		return NewLinear[M](copyIfNotInitialized), nil
	case MethodQuadratic:
		return NewQuadratic[M](copyIfNotInitialized), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

func notReady[M any](copyIfNotInitialized bool, current M, dst *M) bool {
	if copyIfNotInitialized {
		*dst = current
	}
	return false
}

// lerpAt interpolates m0 → m1 at t. Equal timestamps make the factor
// undefined; the newer sample wins.
func lerpAt[M Sample[M]](m0, m1 M, t int64) M {
	t0, t1 := m0.Time(), m1.Time()
	if t0 == t1 {
		return m1.Retimed(t)
	}
	factor := float64(t-t0) / float64(t1-t0)
	return m0.Lerp(m1, factor, t)
}

package filter

import (
	"errors"
	"fmt"
	"math"
)

// OutputLength is the required length of the output slice.
const OutputLength = 3

// DefaultTimeConstant is the averaging duration used when none is configured.
const DefaultTimeConstant = 0.1 // seconds

const nanosPerSecond = 1e9

var (
	// ErrOutputLength is returned when output does not hold exactly three values.
	ErrOutputLength = errors.New("output must hold exactly 3 values")
	// ErrTimeConstant is returned for a negative, NaN or infinite time constant.
	ErrTimeConstant = errors.New("time constant must be a finite non-negative number of seconds")
	// ErrUnknownKind is returned by New for an unsupported filter kind.
	ErrUnknownKind = errors.New("unknown averaging filter")
)

// Averaging is the capability shared by all filters.
type Averaging interface {
	// Filter feeds one sample taken at timestamp (nanoseconds) and writes the
	// filtered triad into output when it returns true.
	Filter(x, y, z float64, output []float64, timestamp int64) (bool, error)
	// Reset returns the filter to its never-filtered state.
	Reset()
	// TimeConstant returns the averaging duration in seconds.
	TimeConstant() float64
}

// Kind names a filter implementation.
type Kind string

const (
	KindLowPass Kind = "lowpass"
	KindMean    Kind = "mean"
	KindMedian  Kind = "median"
)

// ValidKinds lists the supported filters.
var ValidKinds = []Kind{KindLowPass, KindMean, KindMedian}

// ParseKind validates a filter name.
func ParseKind(s string) (Kind, error) {
	for _, k := range ValidKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New constructs the filter of the given kind.
func New(kind Kind, timeConstant float64) (Averaging, error) {
	switch kind {
	case KindLowPass:
		return NewLowPass(timeConstant)
	case KindMean:
		return NewMean(timeConstant)
	case KindMedian:
		return NewMedian(timeConstant)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func validateTimeConstant(tc float64) error {
	if tc < 0 || math.IsNaN(tc) || math.IsInf(tc, 0) {
		return fmt.Errorf("%w: got %v", ErrTimeConstant, tc)
	}
	return nil
}

func checkOutput(output []float64) error {
	if len(output) != OutputLength {
		return fmt.Errorf("%w: got %d", ErrOutputLength, len(output))
	}
	return nil
}

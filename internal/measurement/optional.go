package measurement

// Optional holds a value that a sensor variant may or may not deliver,
// such as the bias triad of an uncalibrated gyroscope.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some wraps v as a present value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent value.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

// Both returns the two values when present in a and b. Interpolation keeps
// a secondary field only when every input carries it.
func Both[T any](a, b Optional[T]) (T, T, bool) {
	if !a.Valid || !b.Valid {
		var zero T
		return zero, zero, false
	}
	return a.Value, b.Value, true
}

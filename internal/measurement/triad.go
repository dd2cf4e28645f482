package measurement

import "gonum.org/v1/gonum/spatial/r3"

// Triad is a timestamped three-axis measurement: acceleration (m/s²),
// angular rate (rad/s), magnetic field (µT) or gravity (m/s²).
type Triad struct {
	Kind    Kind
	Variant Variant
	Value   r3.Vec
	// Bias is the accelerometer/gyroscope bias or magnetometer hard-iron
	// estimate reported by uncalibrated variants.
	Bias      Optional[r3.Vec]
	Timestamp int64 // monotonic nanoseconds
	Accuracy  Accuracy
	Frame     Frame
}

// Time returns the sample timestamp in nanoseconds.
func (m Triad) Time() int64 {
	return m.Timestamp
}

// Retimed returns a copy of m stamped with t.
func (m Triad) Retimed(t int64) Triad {
	m.Timestamp = t
	return m
}

// Lerp interpolates between m and next. factor 0 reproduces m and factor 1
// reproduces next exactly; other values interpolate or extrapolate. Tags
// are taken from next and the result is stamped with t.
func (m Triad) Lerp(next Triad, factor float64, t int64) Triad {
	out := next
	out.Timestamp = t
	out.Value = lerpVec(m.Value, next.Value, factor)
	if a, b, ok := Both(m.Bias, next.Bias); ok {
		out.Bias = Some(lerpVec(a, b, factor))
	} else {
		out.Bias = None[r3.Vec]()
	}
	return out
}

// Blend combines m, m1 and m2 with the given per-sample weights, the
// evaluation of a polynomial fit through the three samples. Tags are taken
// from m2, the newest sample.
func (m Triad) Blend(m1, m2 Triad, w [3]float64, t int64) Triad {
	out := m2
	out.Timestamp = t
	out.Value = blendVec(w, m.Value, m1.Value, m2.Value)
	if m.Bias.Valid && m1.Bias.Valid && m2.Bias.Valid {
		out.Bias = Some(blendVec(w, m.Bias.Value, m1.Bias.Value, m2.Bias.Value))
	} else {
		out.Bias = None[r3.Vec]()
	}
	return out
}

// (1-f)·a + f·b keeps both endpoints bit-exact, unlike a + f·(b-a).
func lerpVec(a, b r3.Vec, f float64) r3.Vec {
	return r3.Add(r3.Scale(1-f, a), r3.Scale(f, b))
}

func blendVec(w [3]float64, a, b, c r3.Vec) r3.Vec {
	return r3.Add(r3.Add(r3.Scale(w[0], a), r3.Scale(w[1], b)), r3.Scale(w[2], c))
}

func lerpScalar(a, b, f float64) float64 {
	return (1-f)*a + f*b
}

package measurement

import "gonum.org/v1/gonum/num/quat"

// Attitude is a timestamped orientation reported as a unit quaternion.
type Attitude struct {
	Variant Variant
	Value   quat.Number
	// HeadingAccuracy is the heading uncertainty in radians reported by
	// absolute attitude variants.
	HeadingAccuracy Optional[float64]
	Timestamp       int64 // monotonic nanoseconds
	Accuracy        Accuracy
	Frame           Frame
}

// Time returns the sample timestamp in nanoseconds.
func (a Attitude) Time() int64 {
	return a.Timestamp
}

// Retimed returns a copy of a stamped with t.
func (a Attitude) Retimed(t int64) Attitude {
	a.Timestamp = t
	return a
}

// Lerp spherically interpolates between a and next.
//
// The delta rotation Δ = q1·q0⁻¹ is scaled along its great circle and
// applied to the newer sample: Δ^(f-1)·q1 for queries at or after next,
// (Δ⁻¹)^(1-f)·q1 for earlier ones. The result is renormalized.
func (a Attitude) Lerp(next Attitude, factor float64, t int64) Attitude {
	out := next
	out.Timestamp = t
	out.Value = slerpDelta(a.Value, next.Value, factor)
	if h0, h1, ok := Both(a.HeadingAccuracy, next.HeadingAccuracy); ok {
		out.HeadingAccuracy = Some(lerpScalar(h0, h1, factor))
	} else {
		out.HeadingAccuracy = None[float64]()
	}
	return out
}

// Blend evaluates a per-component polynomial fit through a, a1 and a2 after
// moving all three into the same hemisphere, then renormalizes.
func (a Attitude) Blend(a1, a2 Attitude, w [3]float64, t int64) Attitude {
	out := a2
	out.Timestamp = t

	q0 := Normalize(a.Value)
	q1 := AlignHemisphere(q0, Normalize(a1.Value))
	q2 := AlignHemisphere(q0, Normalize(a2.Value))
	sum := quat.Add(quat.Add(quat.Scale(w[0], q0), quat.Scale(w[1], q1)), quat.Scale(w[2], q2))
	out.Value = Normalize(sum)

	if a.HeadingAccuracy.Valid && a1.HeadingAccuracy.Valid && a2.HeadingAccuracy.Valid {
		h := w[0]*a.HeadingAccuracy.Value + w[1]*a1.HeadingAccuracy.Value + w[2]*a2.HeadingAccuracy.Value
		out.HeadingAccuracy = Some(h)
	} else {
		out.HeadingAccuracy = None[float64]()
	}
	return out
}

func slerpDelta(q0, q1 quat.Number, f float64) quat.Number {
	q1 = Normalize(q1)
	q0 = AlignHemisphere(q1, Normalize(q0))
	delta := Normalize(quat.Mul(q1, quat.Conj(q0)))

	var step quat.Number
	if f >= 1 {
		step = SlerpFromIdentity(delta, f-1)
	} else {
		step = SlerpFromIdentity(quat.Conj(delta), 1-f)
	}
	return Normalize(quat.Mul(step, q1))
}

package measurement

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Identity is the unit quaternion of the null rotation.
var Identity = quat.Number{Real: 1}

// Normalize scales q to unit length. A zero quaternion has no direction and
// is mapped to Identity.
func Normalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 {
		return Identity
	}
	return quat.Scale(1/n, q)
}

// Dot is the four-dimensional inner product of a and b.
func Dot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// AlignHemisphere returns q or -q, whichever lies in the same hemisphere as
// ref. Both encode the same rotation.
func AlignHemisphere(ref, q quat.Number) quat.Number {
	if Dot(ref, q) < 0 {
		return quat.Scale(-1, q)
	}
	return q
}

// SlerpFromIdentity interpolates along the shortest arc from Identity to
// delta. s = 0 yields Identity, s = 1 yields delta, values outside [0, 1]
// extrapolate along the same great circle.
func SlerpFromIdentity(delta quat.Number, s float64) quat.Number {
	if s == 0 {
		return Identity
	}
	delta = AlignHemisphere(Identity, Normalize(delta))
	return Normalize(quat.Pow(delta, quat.Number{Real: s}))
}

// ApproxEqualRotation reports whether a and b describe the same rotation
// within tol, treating q and -q as equal.
func ApproxEqualRotation(a, b quat.Number, tol float64) bool {
	a, b = Normalize(a), Normalize(b)
	return quat.Abs(quat.Sub(a, b)) <= tol || quat.Abs(quat.Add(a, b)) <= tol
}

// RotationAngle returns the rotation angle of q in radians, in [0, π].
func RotationAngle(q quat.Number) float64 {
	q = AlignHemisphere(Identity, Normalize(q))
	return 2 * math.Acos(math.Min(1, q.Real))
}

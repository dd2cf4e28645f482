package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrFrameMismatch is returned by the strict conversions when the input is
// not tagged with the expected source frame.
var ErrFrameMismatch = errors.New("coordinate frame mismatch")

// Measurement is the set of frame-tagged measurement types.
type Measurement interface {
	measurement.Triad | measurement.Attitude
}

// conversion is C, the ENU↔NED basis change: 180° about (1, 1, 0)/√2.
// As a rotation matrix it is [[0,1,0],[1,0,0],[0,0,-1]].
var conversion = quat.Number{Imag: math.Sqrt2 / 2, Jmag: math.Sqrt2 / 2}

// Vec swaps the first two axes and negates the third. It converts in either
// direction.
func Vec(v r3.Vec) r3.Vec {
	return r3.Vec{X: v.Y, Y: v.X, Z: -v.Z}
}

// Quaternion converts an orientation or delta rotation in either direction
// by conjugating it with C. The result is renormalized.
func Quaternion(q quat.Number) quat.Number {
	return measurement.Normalize(quat.Mul(quat.Mul(conversion, q), conversion))
}

// ConversionQuaternion returns C.
func ConversionQuaternion() quat.Number {
	return conversion
}

// ToNED returns m expressed in NED. A measurement already in NED is copied.
func ToNED[M Measurement](m M) M {
	return To(m, measurement.FrameNED)
}

// ToENU returns m expressed in ENU. A measurement already in ENU is copied.
func ToENU[M Measurement](m M) M {
	return To(m, measurement.FrameENU)
}

// ToNEDInto writes ToNED(m) into dst.
func ToNEDInto[M Measurement](m M, dst *M) {
	*dst = ToNED(m)
}

// ToENUInto writes ToENU(m) into dst.
func ToENUInto[M Measurement](m M, dst *M) {
	*dst = ToENU(m)
}

// To returns m expressed in target, copying it when no conversion is needed.
func To[M Measurement](m M, target measurement.Frame) M {
	if Of(m) == target {
		return m
	}
	return convert(m, target)
}

// ConvertToNED converts an ENU-tagged measurement to NED.
func ConvertToNED[M Measurement](m M) (M, error) {
	return convertStrict(m, measurement.FrameENU, measurement.FrameNED)
}

// ConvertToENU converts a NED-tagged measurement to ENU.
func ConvertToENU[M Measurement](m M) (M, error) {
	return convertStrict(m, measurement.FrameNED, measurement.FrameENU)
}

// ConvertToNEDInto writes ConvertToNED(m) into dst. dst is left untouched
// on error.
func ConvertToNEDInto[M Measurement](m M, dst *M) error {
	out, err := ConvertToNED(m)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}

// ConvertToENUInto writes ConvertToENU(m) into dst. dst is left untouched
// on error.
func ConvertToENUInto[M Measurement](m M, dst *M) error {
	out, err := ConvertToENU(m)
	if err != nil {
		return err
	}
	*dst = out
	return nil
}

func convertStrict[M Measurement](m M, source, target measurement.Frame) (M, error) {
	if f := Of(m); f != source {
		var zero M
		return zero, fmt.Errorf("%w: expected %s, got %q", ErrFrameMismatch, source, f)
	}
	return convert(m, target), nil
}

// Of returns the frame tag of m.
func Of[M Measurement](m M) measurement.Frame {
	switch v := any(m).(type) {
	case measurement.Triad:
		return v.Frame
	case measurement.Attitude:
		return v.Frame
	}
	return ""
}

func convert[M Measurement](m M, target measurement.Frame) M {
	switch v := any(m).(type) {
	case measurement.Triad:
		v.Value = Vec(v.Value)
		if v.Bias.Valid {
			v.Bias.Value = Vec(v.Bias.Value)
		}
		v.Frame = target
		return any(v).(M)
	case measurement.Attitude:
		v.Value = Quaternion(v.Value)
		v.Frame = target
		return any(v).(M)
	}
	return m
}

package measurement

import "fmt"

// Frame identifies the local-tangent-plane coordinate frame of a measurement.
type Frame string

const (
	// FrameENU is East-North-Up.
	FrameENU Frame = "ENU"
	// FrameNED is North-East-Down.
	FrameNED Frame = "NED"
)

// Valid reports whether f is one of the known frames.
func (f Frame) Valid() bool {
	return f == FrameENU || f == FrameNED
}

// Opposite returns the other frame. Unknown frames are returned unchanged.
func (f Frame) Opposite() Frame {
	switch f {
	case FrameENU:
		return FrameNED
	case FrameNED:
		return FrameENU
	default:
		return f
	}
}

// ParseFrame parses a frame tag case-sensitively ("ENU" or "NED").
func ParseFrame(s string) (Frame, error) {
	f := Frame(s)
	if !f.Valid() {
		return "", fmt.Errorf("unknown coordinate frame %q: expected ENU or NED", s)
	}
	return f, nil
}

// Accuracy is the ordinal reliability reported by the sensor source.
// The zero value means the source did not report one.
type Accuracy int8

const (
	AccuracyUnknown Accuracy = iota
	AccuracyUnreliable
	AccuracyLow
	AccuracyMedium
	AccuracyHigh
)

var accuracyNames = map[Accuracy]string{
	AccuracyUnknown:    "unknown",
	AccuracyUnreliable: "unreliable",
	AccuracyLow:        "low",
	AccuracyMedium:     "medium",
	AccuracyHigh:       "high",
}

func (a Accuracy) String() string {
	if name, ok := accuracyNames[a]; ok {
		return name
	}
	return fmt.Sprintf("accuracy(%d)", int8(a))
}

// ParseAccuracy maps a name produced by String back to an Accuracy.
// The empty string parses as AccuracyUnknown.
func ParseAccuracy(s string) (Accuracy, error) {
	if s == "" {
		return AccuracyUnknown, nil
	}
	for a, name := range accuracyNames {
		if name == s {
			return a, nil
		}
	}
	return AccuracyUnknown, fmt.Errorf("unknown accuracy %q", s)
}

// Kind is the physical quantity a measurement carries.
type Kind string

const (
	KindAcceleration  Kind = "acceleration"
	KindAngularRate   Kind = "angular_rate"
	KindMagneticField Kind = "magnetic_field"
	KindGravity       Kind = "gravity"
	KindAttitude      Kind = "attitude"
)

// ValidKinds lists every kind in pipeline order.
var ValidKinds = []Kind{KindAcceleration, KindAngularRate, KindMagneticField, KindGravity, KindAttitude}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range ValidKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown measurement kind %q", s)
}

// Variant identifies the concrete sensor that produced a measurement.
// It is carried through conversion, interpolation and filtering unchanged.
type Variant string

const (
	VariantAccelerometer               Variant = "accelerometer"
	VariantAccelerometerUncalibrated   Variant = "accelerometer_uncalibrated"
	VariantGyroscope                   Variant = "gyroscope"
	VariantGyroscopeUncalibrated       Variant = "gyroscope_uncalibrated"
	VariantMagnetometer                Variant = "magnetometer"
	VariantMagnetometerUncalibrated    Variant = "magnetometer_uncalibrated"
	VariantGravity                     Variant = "gravity"
	VariantRelativeAttitude            Variant = "relative_attitude"
	VariantAbsoluteAttitude            Variant = "absolute_attitude"
	VariantGeomagneticAbsoluteAttitude Variant = "geomagnetic_absolute_attitude"
)

// Uncalibrated reports whether the variant delivers a secondary correction
// triad (bias or hard-iron) alongside the primary value.
func (v Variant) Uncalibrated() bool {
	switch v {
	case VariantAccelerometerUncalibrated, VariantGyroscopeUncalibrated, VariantMagnetometerUncalibrated:
		return true
	}
	return false
}

// Absolute reports whether the variant is an attitude source that carries a
// heading accuracy estimate.
func (v Variant) Absolute() bool {
	return v == VariantAbsoluteAttitude || v == VariantGeomagneticAbsoluteAttitude
}

// DefaultVariant returns the calibrated sensor variant for a kind.
func DefaultVariant(k Kind) Variant {
	switch k {
	case KindAcceleration:
		return VariantAccelerometer
	case KindAngularRate:
		return VariantGyroscope
	case KindMagneticField:
		return VariantMagnetometer
	case KindGravity:
		return VariantGravity
	case KindAttitude:
		return VariantAbsoluteAttitude
	}
	return ""
}

package measurement

import (
	"github.com/banshee-data/inertial.conditioner/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scalar is a timestamped single-valued quantity derived from a triad.
type Scalar struct {
	Kind      Kind
	Variant   Variant
	Value     float64
	Timestamp int64
	Accuracy  Accuracy
}

// UnitTriad is a triad value packaged with its unit.
type UnitTriad struct {
	Value r3.Vec
	Unit  string
}

// Norm returns the Euclidean norm of the primary value.
func (m Triad) Norm() float64 {
	return r3.Norm(m.Value)
}

// NormOf packages the norm of m as a Scalar with the same tags.
func NormOf(m Triad) Scalar {
	return Scalar{
		Kind:      m.Kind,
		Variant:   m.Variant,
		Value:     m.Norm(),
		Timestamp: m.Timestamp,
		Accuracy:  m.Accuracy,
	}
}

// Packaged returns the primary value with its SI unit.
func (m Triad) Packaged() UnitTriad {
	return UnitTriad{Value: m.Value, Unit: units.SIUnit(string(m.Kind))}
}

// BiasPackaged returns the secondary value with its SI unit, if present.
func (m Triad) BiasPackaged() (UnitTriad, bool) {
	if !m.Bias.Valid {
		return UnitTriad{}, false
	}
	return UnitTriad{Value: m.Bias.Value, Unit: units.SIUnit(string(m.Kind))}, true
}

// Corrected returns the primary value minus the bias when present. This is
// how an uncalibrated sample is turned into its calibrated equivalent.
func (m Triad) Corrected() r3.Vec {
	if !m.Bias.Valid {
		return m.Value
	}
	return r3.Sub(m.Value, m.Bias.Value)
}

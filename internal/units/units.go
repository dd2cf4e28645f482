// Package units provides shared constants and conversions for inertial
// sensor units
package units

import (
	"fmt"
	"math"
	"strings"
)

// Unit constants. SI units are the canonical in-pipeline representation.
const (
	MetersPerSecondSquared = "mps2"
	StandardGravity        = "g"
	RadiansPerSecond       = "radps"
	DegreesPerSecond       = "degps"
	Microtesla             = "ut"
	Nanotesla              = "nt"
	Gauss                  = "gauss"
	Radians                = "rad"
	Degrees                = "deg"
)

// Dimensions group units that can be converted into each other.
const (
	DimensionAcceleration  = "acceleration"
	DimensionAngularRate   = "angular_rate"
	DimensionMagneticField = "magnetic_field"
	DimensionAngle         = "angle"
)

// GravityMPS2 is standard gravity in m/s².
const GravityMPS2 = 9.80665

// ValidUnits contains all valid unit values
var ValidUnits = []string{
	MetersPerSecondSquared, StandardGravity,
	RadiansPerSecond, DegreesPerSecond,
	Microtesla, Nanotesla, Gauss,
	Radians, Degrees,
}

var dimensions = map[string]string{
	MetersPerSecondSquared: DimensionAcceleration,
	StandardGravity:        DimensionAcceleration,
	RadiansPerSecond:       DimensionAngularRate,
	DegreesPerSecond:       DimensionAngularRate,
	Microtesla:             DimensionMagneticField,
	Nanotesla:              DimensionMagneticField,
	Gauss:                  DimensionMagneticField,
	Radians:                DimensionAngle,
	Degrees:                DimensionAngle,
}

// factors multiply a value in the unit to obtain its SI equivalent.
var factors = map[string]float64{
	MetersPerSecondSquared: 1,
	StandardGravity:        GravityMPS2,
	RadiansPerSecond:       1,
	DegreesPerSecond:       math.Pi / 180,
	Microtesla:             1,
	Nanotesla:              1e-3,
	Gauss:                  100, // 1 G = 100 µT
	Radians:                1,
	Degrees:                math.Pi / 180,
}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	_, ok := dimensions[unit]
	return ok
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return strings.Join(ValidUnits, ", ")
}

// Dimension returns the physical dimension of unit, or "" if unknown.
func Dimension(unit string) string {
	return dimensions[unit]
}

// SIUnit returns the canonical unit for a measurement kind name
// ("acceleration", "gravity", "angular_rate", "magnetic_field").
func SIUnit(kind string) string {
	switch kind {
	case "acceleration", "gravity":
		return MetersPerSecondSquared
	case "angular_rate":
		return RadiansPerSecond
	case "magnetic_field":
		return Microtesla
	default:
		return ""
	}
}

// ToSI converts value expressed in unit to the SI unit of its dimension.
func ToSI(value float64, unit string) (float64, error) {
	f, ok := factors[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q: valid units are %s", unit, GetValidUnitsString())
	}
	return value * f, nil
}

// FromSI converts an SI value to unit.
func FromSI(value float64, unit string) (float64, error) {
	f, ok := factors[unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q: valid units are %s", unit, GetValidUnitsString())
	}
	return value / f, nil
}

// Convert converts value between two units of the same dimension.
func Convert(value float64, from, to string) (float64, error) {
	if !IsValid(from) || !IsValid(to) {
		return 0, fmt.Errorf("cannot convert %q to %q: valid units are %s", from, to, GetValidUnitsString())
	}
	if Dimension(from) != Dimension(to) {
		return 0, fmt.Errorf("cannot convert %s (%s) to %s (%s)", from, Dimension(from), to, Dimension(to))
	}
	si, _ := ToSI(value, from)
	return FromSI(si, to)
}

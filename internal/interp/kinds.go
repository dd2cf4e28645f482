package interp

import "github.com/banshee-data/inertial.conditioner/internal/measurement"

// TriadInterpolator interpolates acceleration, angular rate, magnetic field
// and gravity samples.
type TriadInterpolator = Interpolator[measurement.Triad]

// AttitudeInterpolator interpolates orientation samples.
type AttitudeInterpolator = Interpolator[measurement.Attitude]

// NewTriad returns a triad interpolator for method.
func NewTriad(method Method, copyIfNotInitialized bool) (TriadInterpolator, error) {
	return New[measurement.Triad](method, copyIfNotInitialized)
}

// NewAttitude returns an attitude interpolator for method.
func NewAttitude(method Method, copyIfNotInitialized bool) (AttitudeInterpolator, error) {
	return New[measurement.Attitude](method, copyIfNotInitialized)
}

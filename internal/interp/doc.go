// Package interp reconstructs measurements at arbitrary query timestamps.
//
// Responsibilities: the stateful interpolation strategies (Direct, Linear,
// Quadratic) that keep a short rolling history of pushed samples, and the
// stateless resampler (FindClosest, Resample) that searches an externally
// supplied history to re-time one sensor's samples onto another sensor's
// timeline.
// Key types: Interpolator, Method, Sample.
//
// Strategies are generic over the measurement type. The per-kind field
// arithmetic (vector lerp, quaternion slerp, polynomial blend) lives on the
// measurement types themselves; this package only decides which samples to
// combine and with which weights.
//
// Interpolators are single-writer: Push and Interpolate must be called from
// one goroutine with non-decreasing timestamps.
package interp

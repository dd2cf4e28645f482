// Package filter smooths noisy triads with time-constant driven averaging
// filters.
//
// Responsibilities: exponential (LowPass), sliding-window arithmetic mean
// (Mean) and sliding-window per-axis median (Median). The averaging
// duration is a time constant in seconds, not a sample count, so the
// filters behave the same when the sensor rate drifts.
// Key types: Averaging, LowPass, Mean, Median.
//
// Every filter returns false until a second sample establishes a time
// delta, and for a repeated timestamp. Callers keep using their previous
// output in that case; output is never written on a false return.
package filter

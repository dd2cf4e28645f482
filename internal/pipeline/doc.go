// Package pipeline chains frame conversion, interpolation and averaging
// into per-sensor conditioning streams.
//
// Responsibilities: normalizing each incoming sample into the configured
// frame, re-timing it onto a query timestamp, smoothing triads, and
// aligning one stream onto another's timestamps after the fact.
// Key types: TriadStream, AttitudeStream, Aligner, Metrics.
//
// Streams are single-writer: one goroutine owns a stream and calls
// Process sequentially.
package pipeline

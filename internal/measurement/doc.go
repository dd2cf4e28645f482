// Package measurement owns the value types that flow through the
// conditioning pipeline.
//
// Responsibilities: timestamped triads (acceleration, angular rate,
// magnetic field, gravity) and attitude quaternions, their optional
// secondary terms (bias, hard-iron, heading accuracy), accuracy and
// coordinate-frame tags, and the derived-quantity helpers (norm, unit
// packaging).
// Key types: Triad, Attitude, Optional, Frame.
//
// All types are plain values without pointers: assigning a measurement
// copies it completely, so interpolators and filters can keep their own
// copies without aliasing caller buffers.
package measurement

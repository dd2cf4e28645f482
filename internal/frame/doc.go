// Package frame converts measurements between the ENU (East-North-Up) and
// NED (North-East-Down) local-tangent-plane frames.
//
// Triads map as (x, y, z)_NED = (y, x, -z)_ENU; the mapping is its own
// inverse. Orientations are conjugated with the fixed basis-change
// quaternion C (a half turn about the axis bisecting X and Y):
// Q' = C·Q·C, renormalized. Relabeling the quaternion components per axis
// gives a different, wrong, rotation and is never used.
//
// Every conversion exists in an idempotent form (ToNED, ToENU), which copies
// a measurement already in the target frame, and a strict form (ConvertToNED,
// ConvertToENU), which fails with ErrFrameMismatch when the source tag is
// not the expected frame. Each has an allocating and an Into variant.
package frame

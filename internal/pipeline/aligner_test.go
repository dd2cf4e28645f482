package pipeline

import (
	"testing"
	"time"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAligner_At(t *testing.T) {
	t.Parallel()

	a := NewAligner[measurement.Triad](8, 0)

	var got measurement.Triad
	assert.False(t, a.At(0, &got))

	a.Add(accel(0, measurement.FrameNED, 0, 0, 0))
	a.Add(accel(100, measurement.FrameNED, 10, 20, 30))

	require.True(t, a.At(25, &got))
	assert.Equal(t, int64(25), got.Timestamp)
	assert.InDelta(t, 2.5, got.Value.X, 1e-12)
	assert.InDelta(t, 5, got.Value.Y, 1e-12)
	assert.InDelta(t, 7.5, got.Value.Z, 1e-12)

	// Outside the history the boundary sample is re-stamped.
	require.True(t, a.At(500, &got))
	assert.Equal(t, int64(500), got.Timestamp)
	assert.Equal(t, 10.0, got.Value.X)

	closest, ok := a.Closest(60)
	require.True(t, ok)
	assert.Equal(t, int64(100), closest.Timestamp)
}

func TestAligner_CountBound(t *testing.T) {
	t.Parallel()

	a := NewAligner[measurement.Triad](3, 0)
	for i := int64(0); i < 10; i++ {
		a.Add(accel(i, measurement.FrameNED, float64(i), 0, 0))
	}
	assert.Equal(t, 3, a.Len())

	oldest, ok := a.Closest(0)
	require.True(t, ok)
	assert.Equal(t, int64(7), oldest.Timestamp)
}

func TestAligner_AgeBound(t *testing.T) {
	t.Parallel()

	a := NewAligner[measurement.Triad](100, 50*time.Millisecond)
	for i := int64(0); i <= 10; i++ {
		a.Add(accel(i*tenMillis, measurement.FrameNED, 1, 0, 0))
	}
	// Samples at 50..100ms survive.
	assert.Equal(t, 6, a.Len())

	// A late sample older than the cutoff is dropped immediately.
	a.Add(accel(0, measurement.FrameNED, 1, 0, 0))
	assert.Equal(t, 6, a.Len())

	a.Reset()
	assert.Equal(t, 0, a.Len())
}

func TestAligner_MinimumCapacity(t *testing.T) {
	t.Parallel()

	a := NewAligner[measurement.Triad](0, 0)
	a.Add(accel(1, measurement.FrameNED, 1, 0, 0))
	a.Add(accel(2, measurement.FrameNED, 2, 0, 0))
	assert.Equal(t, 1, a.Len())
}

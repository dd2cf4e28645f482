package interp

import (
	"math"
	"testing"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

// unordered history on purpose
func resampleHistory() []measurement.Triad {
	return []measurement.Triad{
		triadAt(300, 3, 30, 300),
		triadAt(100, 1, 10, 100),
		triadAt(400, 4, 40, 400),
		triadAt(200, 2, 20, 200),
	}
}

func TestFindClosest(t *testing.T) {
	t.Parallel()

	_, ok := FindClosest[measurement.Triad](nil, 0)
	assert.False(t, ok)

	tests := []struct {
		name  string
		query int64
		want  int64
	}{
		{"exact", 300, 300},
		{"nearer to later", 290, 300},
		{"tie goes to earlier", 250, 200},
		{"before range", -1000, 100},
		{"after range", 9999, 400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindClosest(resampleHistory(), tt.query)
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Timestamp)
		})
	}
}

func TestResampleEmpty(t *testing.T) {
	t.Parallel()

	dst := triadAt(5, 5, 5, 5)
	before := dst
	assert.False(t, Resample([]measurement.Triad{}, 10, &dst))
	assert.Equal(t, before, dst)
}

func TestResampleBoundaryClamp(t *testing.T) {
	t.Parallel()

	history := resampleHistory()

	var out measurement.Triad
	require.True(t, Resample(history, 50, &out))
	want := triadAt(50, 1, 10, 100)
	assert.Equal(t, want, out)

	require.True(t, Resample(history, 1000, &out))
	want = triadAt(1000, 4, 40, 400)
	assert.Equal(t, want, out)
}

func TestResampleInterpolates(t *testing.T) {
	t.Parallel()

	history := resampleHistory()

	tests := []struct {
		query int64
		want  r3.Vec
	}{
		{150, r3.Vec{X: 1.5, Y: 15, Z: 150}},
		{225, r3.Vec{X: 2.25, Y: 22.5, Z: 225}},
		{390, r3.Vec{X: 3.9, Y: 39, Z: 390}},
		{200, r3.Vec{X: 2, Y: 20, Z: 200}},
	}
	for _, tt := range tests {
		var out measurement.Triad
		require.True(t, Resample(history, tt.query, &out))
		assertVecInDelta(t, tt.want, out.Value, 1e-9)
		assert.Equal(t, tt.query, out.Timestamp)
	}
}

func TestResampleSingleSample(t *testing.T) {
	t.Parallel()

	history := []measurement.Triad{triadAt(10, 1, 2, 3)}
	var out measurement.Triad
	require.True(t, Resample(history, 10, &out))
	assert.Equal(t, history[0], out)

	require.True(t, Resample(history, 20, &out))
	assert.Equal(t, history[0].Value, out.Value)
	assert.Equal(t, int64(20), out.Timestamp)
}

func TestResampleAttitude(t *testing.T) {
	t.Parallel()

	history := []measurement.Attitude{
		yawAt(200, math.Pi/2),
		yawAt(0, 0),
	}
	var out measurement.Attitude
	require.True(t, Resample(history, 100, &out))
	assert.True(t, measurement.ApproxEqualRotation(yawAt(0, math.Pi/4).Value, out.Value, 1e-9))

	require.True(t, Resample(history, 500, &out))
	assert.Equal(t, history[0].Value, out.Value)
	assert.Equal(t, int64(500), out.Timestamp)
}

package recording

import (
	"bytes"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestReader_MinimalColumns(t *testing.T) {
	t.Parallel()

	in := `timestamp_ns,kind,frame,x,y,z
# comment rows are skipped
1000, acceleration, ENU, 0.1, -0.2, 9.81
2000,magnetic_field,NED,20,-3.5,41
`
	r, err := NewReader(strings.NewReader(in))
	require.NoError(t, err)

	got, err := r.ReadAll()
	require.NoError(t, err)

	want := []measurement.Triad{
		{
			Kind:      measurement.KindAcceleration,
			Variant:   measurement.VariantAccelerometer,
			Value:     r3.Vec{X: 0.1, Y: -0.2, Z: 9.81},
			Timestamp: 1000,
			Frame:     measurement.FrameENU,
		},
		{
			Kind:      measurement.KindMagneticField,
			Variant:   measurement.VariantMagnetometer,
			Value:     r3.Vec{X: 20, Y: -3.5, Z: 41},
			Timestamp: 2000,
			Frame:     measurement.FrameNED,
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ReadAll mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterReader_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []measurement.Triad{
		{
			Kind:      measurement.KindAngularRate,
			Variant:   measurement.VariantGyroscopeUncalibrated,
			Value:     r3.Vec{X: 0.01, Y: -0.02, Z: 1e-9},
			Bias:      measurement.Some(r3.Vec{X: 0.001, Y: 0, Z: -0.003}),
			Timestamp: 123456789,
			Accuracy:  measurement.AccuracyMedium,
			Frame:     measurement.FrameNED,
		},
		{
			Kind:      measurement.KindGravity,
			Variant:   measurement.VariantGravity,
			Value:     r3.Vec{X: 0, Y: 0, Z: 9.80665},
			Timestamp: 223456789,
			Frame:     measurement.FrameENU,
		},
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, m := range in {
		require.NoError(t, w.Write(m))
	}
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Equal(t, "223456789,gravity,ENU,0,0,9.80665,,,,unknown,gravity", lines[2])

	r, err := NewReader(&buf)
	require.NoError(t, err)
	got, err := r.ReadAll()
	require.NoError(t, err)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestNewReader_MissingColumn(t *testing.T) {
	t.Parallel()

	_, err := NewReader(strings.NewReader("timestamp_ns,kind,x,y,z\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = NewReader(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReader_InvalidRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  string
		want string
	}{
		{name: "timestamp", row: "soon,acceleration,ENU,1,2,3", want: "timestamp_ns"},
		{name: "kind", row: "1,velocity,ENU,1,2,3", want: "velocity"},
		{name: "attitude", row: "1,attitude,ENU,1,2,3", want: "not triads"},
		{name: "frame", row: "1,acceleration,enu,1,2,3", want: "enu"},
		{name: "value", row: "1,acceleration,ENU,1,x,3", want: "invalid y"},
		{name: "short row", row: "1,acceleration,ENU,1,2", want: "invalid z"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader("timestamp_ns,kind,frame,x,y,z\n" + tt.row + "\n"))
			require.NoError(t, err)

			_, err = r.Read()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
			assert.Contains(t, err.Error(), tt.want)

			_, err = r.Read()
			assert.ErrorIs(t, err, io.EOF)
		})
	}
}

func TestReader_BiasAndAccuracyColumns(t *testing.T) {
	t.Parallel()

	in := "timestamp_ns,kind,frame,x,y,z,bx,by,bz,accuracy\n" +
		"5,magnetic_field,ENU,1,2,3,0.5,0.25,0,high\n" +
		"6,magnetic_field,ENU,1,2,3,bad,0,0,high\n" +
		"7,magnetic_field,ENU,1,2,3,,,,excellent\n"
	r, err := NewReader(strings.NewReader(in))
	require.NoError(t, err)

	m, err := r.Read()
	require.NoError(t, err)
	bias, ok := m.Bias.Get()
	require.True(t, ok)
	assert.Equal(t, r3.Vec{X: 0.5, Y: 0.25}, bias)
	assert.Equal(t, measurement.AccuracyHigh, m.Accuracy)

	_, err = r.Read()
	assert.ErrorContains(t, err, "invalid bx")

	_, err = r.Read()
	assert.ErrorContains(t, err, "excellent")
}

func TestReader_UnitColumn(t *testing.T) {
	t.Parallel()

	in := "timestamp_ns,kind,frame,x,y,z,bx,by,bz,unit\n" +
		"1,acceleration,ENU,0,0,1,,,,g\n" +
		"2,angular_rate,ENU,180,0,-90,0,0,0,degps\n" +
		"3,magnetic_field,NED,0.5,0,0,0.1,0,0,gauss\n" +
		"4,magnetic_field,NED,20,0,0,,,,mps2\n" +
		"5,gravity,ENU,0,0,9.81,,,,\n"
	r, err := NewReader(strings.NewReader(in))
	require.NoError(t, err)

	m, err := r.Read()
	require.NoError(t, err)
	assert.InDelta(t, 9.80665, m.Value.Z, 1e-12)

	m, err = r.Read()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, m.Value.X, 1e-12)
	assert.InDelta(t, -math.Pi/2, m.Value.Z, 1e-12)
	assert.True(t, m.Bias.Valid)

	m, err = r.Read()
	require.NoError(t, err)
	assert.InDelta(t, 50, m.Value.X, 1e-12)
	assert.InDelta(t, 10, m.Bias.Value.X, 1e-12)

	_, err = r.Read()
	assert.ErrorContains(t, err, "cannot convert")

	m, err = r.Read()
	require.NoError(t, err)
	assert.Equal(t, 9.81, m.Value.Z, "empty unit means SI")
}

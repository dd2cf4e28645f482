package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/inertial.conditioner/internal/config"
	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/monitor"
	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
	"github.com/banshee-data/inertial.conditioner/internal/recording"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const tenMillis = int64(10_000_000)

func TestMain(m *testing.M) {
	monitoring.SetLogger(nil)
	os.Exit(m.Run())
}

func triad(kind measurement.Kind, t int64, x, y, z float64) measurement.Triad {
	return measurement.Triad{
		Kind:      kind,
		Variant:   measurement.DefaultVariant(kind),
		Value:     r3.Vec{X: x, Y: y, Z: z},
		Timestamp: t,
		Frame:     measurement.FrameENU,
	}
}

func passthroughConfig() *config.ConditioningConfig {
	method, filter := "linear", config.FilterNone
	copyIfNot := false
	return &config.ConditioningConfig{
		Interpolation:        &method,
		Filter:               &filter,
		CopyIfNotInitialized: &copyIfNot,
	}
}

func TestConditionAll(t *testing.T) {
	raw := []measurement.Triad{
		triad(measurement.KindMagneticField, 0, 20, 0, -40),
		triad(measurement.KindAcceleration, 0, 0, 1, 9),
		triad(measurement.KindAcceleration, tenMillis, 0, 3, 9),
		triad(measurement.KindAcceleration, 2*tenMillis, 0, 5, 9),
	}

	series, err := conditionAll(context.Background(), raw, runOptions{cfg: passthroughConfig(), queryOffset: 5_000_000})
	require.NoError(t, err)
	require.Len(t, series, 2)

	// Kinds follow pipeline order, not input order.
	assert.Equal(t, measurement.KindAcceleration, series[0].Kind)
	assert.Equal(t, measurement.KindMagneticField, series[1].Kind)
	assert.Len(t, series[0].Raw, 3)
	assert.Empty(t, series[1].Conditioned, "a single sample never warms up a linear stream")

	// ENU y becomes NED x; queries trail by 5ms.
	require.Len(t, series[0].Conditioned, 2)
	got := series[0].Conditioned
	assert.Equal(t, int64(5_000_000), got[0].Timestamp)
	assert.InDelta(t, 2, got[0].Value.X, 1e-12)
	assert.InDelta(t, -9, got[0].Value.Z, 1e-12)
	assert.Equal(t, measurement.FrameNED, got[0].Frame)
	assert.InDelta(t, 4, got[1].Value.X, 1e-12)
}

func TestConditionAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conditionAll(ctx, []measurement.Triad{triad(measurement.KindGravity, 0, 0, 0, 9.8)}, runOptions{cfg: passthroughConfig()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConditionAll_AlignTo(t *testing.T) {
	var raw []measurement.Triad
	for i := int64(0); i < 5; i++ {
		raw = append(raw, triad(measurement.KindAcceleration, i*tenMillis, 0, 0, 9))
		raw = append(raw, triad(measurement.KindAngularRate, i*tenMillis+3_000_000, float64(i), 0, 0))
	}

	series, err := conditionAll(context.Background(), raw, runOptions{cfg: passthroughConfig(), alignTo: measurement.KindAcceleration})
	require.NoError(t, err)
	require.Len(t, series, 2)

	ref := series[0].Conditioned
	aligned := series[1].Conditioned
	require.Len(t, aligned, len(ref))
	for i := range ref {
		assert.Equal(t, ref[i].Timestamp, aligned[i].Timestamp)
	}
	// 10ms precedes the first gyro sample and is clamped to it. Samples at
	// 13ms and 23ms bracket 20ms; ENU x becomes NED y.
	assert.Equal(t, 1.0, aligned[0].Value.Y)
	assert.InDelta(t, 1.7, aligned[1].Value.Y, 1e-9)

	_, err = conditionAll(context.Background(), raw, runOptions{cfg: passthroughConfig(), alignTo: measurement.KindGravity})
	assert.ErrorContains(t, err, "not present")
}

func writeRecording(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "walk.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := recording.NewWriter(f)
	for i := int64(0); i < 50; i++ {
		require.NoError(t, w.Write(triad(measurement.KindAcceleration, i*tenMillis, 0.1, 0.2, 9.8)))
		require.NoError(t, w.Write(triad(measurement.KindMagneticField, i*tenMillis, 22, 5, -43)))
	}
	require.NoError(t, w.Flush())
	return path
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	input := writeRecording(t, dir)
	output := filepath.Join(dir, "out", "walk.ned.csv")
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0755))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run(context.Background(), []string{
		name, "run",
		"--input", input,
		"--output", output,
		"--query-offset", "5ms",
		"--plot", filepath.Join(dir, "out", "walk.png"),
		"--html", filepath.Join(dir, "out", "walk.html"),
	})
	require.NoError(t, err)

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()
	r, err := recording.NewReader(f)
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for i, m := range rows {
		assert.Equal(t, measurement.FrameNED, m.Frame)
		if i > 0 {
			assert.GreaterOrEqual(t, m.Timestamp, rows[i-1].Timestamp)
		}
	}

	for _, chart := range []string{"walk.png", "walk.html"} {
		_, err := os.Stat(filepath.Join(dir, "out", chart))
		assert.NoError(t, err, chart)
	}
}

func TestRunCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	input := writeRecording(t, dir)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing input", args: []string{"--input", filepath.Join(dir, "missing.csv")}},
		{name: "bad config", args: []string{"--input", input, "--config", filepath.Join(dir, "cfg.ini")}},
		{name: "bad align kind", args: []string{"--input", input, "--align-to", "velocity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newApp()
			app.Writer = &bytes.Buffer{}
			err := app.Run(context.Background(), append([]string{name, "run"}, tt.args...))
			assert.Error(t, err)
		})
	}
}

func TestDefaultsCommand(t *testing.T) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	require.NoError(t, app.Run(context.Background(), []string{name, "defaults"}))

	var got config.ConditioningConfig
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, config.MustLoadDefaultConfig().Resolved(), &got)

	buf.Reset()
	app = newApp()
	app.Writer = &buf
	require.NoError(t, app.Run(context.Background(), []string{name, "defaults", "--format", "yaml"}))

	var fromYAML config.ConditioningConfig
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &fromYAML))
	assert.Equal(t, &got, &fromYAML)
	assert.True(t, strings.HasPrefix(buf.String(), "target_frame: NED"))

	app = newApp()
	app.Writer = &buf
	assert.Error(t, app.Run(context.Background(), []string{name, "defaults", "--format", "toml"}))
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	series := []monitor.Series{
		{Kind: measurement.KindAcceleration, Conditioned: []measurement.Triad{triad(measurement.KindAcceleration, 2*tenMillis, 1, 0, 0)}},
		{Kind: measurement.KindGravity, Conditioned: []measurement.Triad{triad(measurement.KindGravity, tenMillis, 0, 0, 9)}},
	}

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, writeOutput(path, nil, series))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	r, err := recording.NewReader(f)
	require.NoError(t, err)
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, measurement.KindGravity, rows[0].Kind)
	assert.Equal(t, measurement.KindAcceleration, rows[1].Kind)

	var stdout bytes.Buffer
	require.NoError(t, writeOutput("-", &stdout, series))
	assert.True(t, strings.HasPrefix(stdout.String(), "timestamp_ns,"))

	err = writeOutput(filepath.Join(t.TempDir(), "missing", "out.csv"), nil, series)
	assert.ErrorContains(t, err, "failed to create output")
}

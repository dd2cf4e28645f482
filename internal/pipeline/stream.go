package pipeline

import (
	"errors"
	"fmt"

	"github.com/banshee-data/inertial.conditioner/internal/config"
	"github.com/banshee-data/inertial.conditioner/internal/filter"
	"github.com/banshee-data/inertial.conditioner/internal/frame"
	"github.com/banshee-data/inertial.conditioner/internal/interp"
	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/monitoring"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrUnknownFrame is returned when a sample carries neither ENU nor NED and
// the stream has a target frame.
var ErrUnknownFrame = errors.New("sample has unknown coordinate frame")

// Options configures a stream.
type Options struct {
	// TargetFrame is the frame emitted samples are expressed in. Empty
	// keeps each sample's own frame.
	TargetFrame          measurement.Frame
	Method               interp.Method
	CopyIfNotInitialized bool
	// Filter smooths triad values after interpolation. Nil disables
	// averaging. Ignored by AttitudeStream.
	Filter  filter.Averaging
	Metrics *Metrics
}

// OptionsFromConfig builds stream options from cfg, constructing a fresh
// averaging filter.
func OptionsFromConfig(cfg *config.ConditioningConfig, metrics *Metrics) (Options, error) {
	f, err := cfg.NewFilter()
	if err != nil {
		return Options{}, err
	}
	return Options{
		TargetFrame:          cfg.GetTargetFrame(),
		Method:               cfg.GetInterpolation(),
		CopyIfNotInitialized: cfg.GetCopyIfNotInitialized(),
		Filter:               f,
		Metrics:              metrics,
	}, nil
}

type conditionable[M any] interface {
	frame.Measurement
	interp.Sample[M]
}

// conditioner holds the convert → push → interpolate steps shared by both
// stream kinds.
type conditioner[M conditionable[M]] struct {
	id                   uuid.UUID
	target               measurement.Frame
	interpolator         interp.Interpolator[M]
	copyIfNotInitialized bool
	metrics              *Metrics
	lastFrame            measurement.Frame
	onReset              func()
}

func newConditioner[M conditionable[M]](opts Options) (conditioner[M], error) {
	if opts.TargetFrame != "" && !opts.TargetFrame.Valid() {
		return conditioner[M]{}, fmt.Errorf("invalid target frame %q", opts.TargetFrame)
	}
	method := opts.Method
	if method == "" {
		method = interp.MethodLinear
	}
	ip, err := interp.New[M](method, opts.CopyIfNotInitialized)
	if err != nil {
		return conditioner[M]{}, err
	}
	return conditioner[M]{
		id:                   uuid.New(),
		target:               opts.TargetFrame,
		interpolator:         ip,
		copyIfNotInitialized: opts.CopyIfNotInitialized,
		metrics:              opts.Metrics,
	}, nil
}

// step normalizes m, records it and interpolates at query. It returns
// false when the interpolator is not ready; dst then holds the current
// sample if the stream copies when not initialized.
func (c *conditioner[M]) step(kind string, m M, query int64, dst *M) (bool, error) {
	source := frame.Of(m)
	if c.target != "" {
		if !source.Valid() {
			c.metrics.observe(kind, OutcomeRejected)
			return false, fmt.Errorf("%w: %q", ErrUnknownFrame, source)
		}
		if source != c.target {
			m = frame.To(m, c.target)
			c.metrics.converted(c.target)
		}
	} else if c.lastFrame != "" && source != c.lastFrame {
		// Mixing frames in one history would interpolate between unrelated
		// axes.
		monitoring.Logf("stream %s: %s frame changed from %s to %s, resetting", c.id, kind, c.lastFrame, source)
		c.reset()
	}
	c.lastFrame = source

	c.interpolator.Push(m)
	if !c.interpolator.Interpolate(m, query, dst) {
		c.metrics.observe(kind, OutcomeWarming)
		return false, nil
	}
	return true, nil
}

func (c *conditioner[M]) reset() {
	c.interpolator.Reset()
	c.lastFrame = ""
	if c.onReset != nil {
		c.onReset()
	}
}

// TriadStream conditions one triad sensor.
type TriadStream struct {
	conditioner[measurement.Triad]
	filter filter.Averaging
	output [filter.OutputLength]float64
}

// NewTriadStream returns a stream configured by opts.
func NewTriadStream(opts Options) (*TriadStream, error) {
	c, err := newConditioner[measurement.Triad](opts)
	if err != nil {
		return nil, err
	}
	s := &TriadStream{conditioner: c, filter: opts.Filter}
	if s.filter != nil {
		s.onReset = s.filter.Reset
	}
	return s, nil
}

// NewTriadStreamFromConfig returns a stream configured by cfg.
func NewTriadStreamFromConfig(cfg *config.ConditioningConfig, metrics *Metrics) (*TriadStream, error) {
	opts, err := OptionsFromConfig(cfg, metrics)
	if err != nil {
		return nil, err
	}
	return NewTriadStream(opts)
}

// ID identifies the stream in logs.
func (s *TriadStream) ID() uuid.UUID {
	return s.id
}

// Process conditions m and writes the sample at query into dst. It returns
// true when dst holds a conditioned sample. While the interpolator warms up
// dst receives the converted current sample if the stream copies when not
// initialized; while the filter settles dst is left untouched.
func (s *TriadStream) Process(m measurement.Triad, query int64, dst *measurement.Triad) (bool, error) {
	kind := string(m.Kind)

	var sample measurement.Triad
	ok, err := s.step(kind, m, query, &sample)
	if err != nil {
		return false, err
	}
	if !ok {
		if s.copyIfNotInitialized {
			*dst = sample
		}
		return false, nil
	}

	if s.filter != nil {
		out := s.output[:]
		ok, err := s.filter.Filter(sample.Value.X, sample.Value.Y, sample.Value.Z, out, sample.Timestamp)
		if err != nil {
			s.metrics.observe(kind, OutcomeRejected)
			return false, fmt.Errorf("stream %s: %w", s.id, err)
		}
		if !ok {
			s.metrics.observe(kind, OutcomeSettling)
			return false, nil
		}
		sample.Value = r3.Vec{X: out[0], Y: out[1], Z: out[2]}
	}

	*dst = sample
	s.metrics.observe(kind, OutcomeEmitted)
	return true, nil
}

// Reset discards interpolation history and filter state.
func (s *TriadStream) Reset() {
	s.reset()
}

// AttitudeStream conditions one attitude sensor. Attitudes are not
// averaged.
type AttitudeStream struct {
	conditioner[measurement.Attitude]
}

// NewAttitudeStream returns a stream configured by opts.
func NewAttitudeStream(opts Options) (*AttitudeStream, error) {
	c, err := newConditioner[measurement.Attitude](opts)
	if err != nil {
		return nil, err
	}
	return &AttitudeStream{conditioner: c}, nil
}

// ID identifies the stream in logs.
func (s *AttitudeStream) ID() uuid.UUID {
	return s.id
}

// Process conditions m and writes the attitude at query into dst. See
// TriadStream.Process.
func (s *AttitudeStream) Process(m measurement.Attitude, query int64, dst *measurement.Attitude) (bool, error) {
	const kind = string(measurement.KindAttitude)

	ok, err := s.step(kind, m, query, dst)
	if err != nil || !ok {
		return false, err
	}
	s.metrics.observe(kind, OutcomeEmitted)
	return true, nil
}

// Reset discards interpolation history.
func (s *AttitudeStream) Reset() {
	s.reset()
}

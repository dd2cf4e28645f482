package filter

import "github.com/banshee-data/inertial.conditioner/internal/monitoring"

// LowPass is an exponential moving average whose weight adapts to the
// elapsed time between samples:
//
//	alpha  = τ / (τ + dt)
//	output = alpha·previous + (1 - alpha)·input
//
// The running value starts at zero unless WithSeedFromFirst is given.
type LowPass struct {
	timeConstant  float64
	seedFromFirst bool

	value         [3]float64
	lastTimestamp int64
	started       bool
}

// LowPassOption configures a LowPass.
type LowPassOption func(*LowPass)

// WithSeedFromFirst initializes the running value with the first sample
// instead of zero, removing the start-up ramp.
func WithSeedFromFirst() LowPassOption {
	return func(f *LowPass) { f.seedFromFirst = true }
}

// NewLowPass returns a low-pass filter with the given time constant in
// seconds.
func NewLowPass(timeConstant float64, opts ...LowPassOption) (*LowPass, error) {
	if err := validateTimeConstant(timeConstant); err != nil {
		return nil, err
	}
	f := &LowPass{timeConstant: timeConstant}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// TimeConstant returns τ in seconds.
func (f *LowPass) TimeConstant() float64 {
	return f.timeConstant
}

// Filter implements Averaging.
func (f *LowPass) Filter(x, y, z float64, output []float64, timestamp int64) (bool, error) {
	if err := checkOutput(output); err != nil {
		return false, err
	}

	if !f.started {
		f.started = true
		f.lastTimestamp = timestamp
		if f.seedFromFirst {
			f.value = [3]float64{x, y, z}
		}
		return false, nil
	}

	dt := timestamp - f.lastTimestamp
	if dt <= 0 {
		if dt < 0 {
			monitoring.Debugf("lowpass: ignoring out-of-order sample at %d (last %d)", timestamp, f.lastTimestamp)
		}
		return false, nil
	}
	f.lastTimestamp = timestamp

	alpha := f.timeConstant / (f.timeConstant + float64(dt)/nanosPerSecond)
	beta := 1 - alpha
	input := [3]float64{x, y, z}
	for i := range f.value {
		f.value[i] = alpha*f.value[i] + beta*input[i]
	}
	copy(output, f.value[:])
	return true, nil
}

// Value returns the running filtered triad.
func (f *LowPass) Value() [3]float64 {
	return f.value
}

// Reset clears the running value and timestamp.
func (f *LowPass) Reset() {
	f.value = [3]float64{}
	f.lastTimestamp = 0
	f.started = false
}

// CopyFrom makes f an exact copy of src, including its time constant.
func (f *LowPass) CopyFrom(src *LowPass) {
	*f = *src
}

// CopyTo makes dst an exact copy of f.
func (f *LowPass) CopyTo(dst *LowPass) {
	dst.CopyFrom(f)
}

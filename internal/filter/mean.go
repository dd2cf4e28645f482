package filter

import "gonum.org/v1/gonum/stat"

// Mean outputs the per-axis arithmetic mean of the samples received in the
// last τ seconds.
type Mean struct {
	window window
}

// NewMean returns a mean filter with the given time constant in seconds.
func NewMean(timeConstant float64) (*Mean, error) {
	if err := validateTimeConstant(timeConstant); err != nil {
		return nil, err
	}
	return &Mean{window: newWindow(timeConstant)}, nil
}

// TimeConstant returns τ in seconds.
func (f *Mean) TimeConstant() float64 {
	return f.window.timeConstant
}

// Len returns the number of buffered samples.
func (f *Mean) Len() int {
	return f.window.samples.len()
}

// AverageInterval returns the observed mean sample interval in seconds.
func (f *Mean) AverageInterval() float64 {
	return f.window.averageInterval()
}

// Filter implements Averaging.
func (f *Mean) Filter(x, y, z float64, output []float64, timestamp int64) (bool, error) {
	if err := checkOutput(output); err != nil {
		return false, err
	}
	if !f.window.add([3]float64{x, y, z}, timestamp) {
		return false, nil
	}
	for i := range output {
		output[i] = stat.Mean(f.window.sorted[i], nil)
	}
	return true, nil
}

// Reset discards the buffered samples and timing state.
func (f *Mean) Reset() {
	f.window.reset()
}

// CopyFrom makes f an exact deep copy of src.
func (f *Mean) CopyFrom(src *Mean) {
	f.window = src.window.clone()
}

// CopyTo makes dst an exact deep copy of f.
func (f *Mean) CopyTo(dst *Mean) {
	dst.CopyFrom(f)
}

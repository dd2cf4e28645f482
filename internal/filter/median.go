package filter

import "gonum.org/v1/gonum/stat"

// Median outputs the per-axis median of the samples received in the last τ
// seconds. The window keeps each axis sorted on insertion. For an even
// number of samples the lower of the two middle values is reported.
type Median struct {
	window window
}

// NewMedian returns a median filter with the given time constant in seconds.
func NewMedian(timeConstant float64) (*Median, error) {
	if err := validateTimeConstant(timeConstant); err != nil {
		return nil, err
	}
	return &Median{window: newWindow(timeConstant)}, nil
}

// TimeConstant returns τ in seconds.
func (f *Median) TimeConstant() float64 {
	return f.window.timeConstant
}

// Len returns the number of buffered samples.
func (f *Median) Len() int {
	return f.window.samples.len()
}

// AverageInterval returns the observed mean sample interval in seconds.
func (f *Median) AverageInterval() float64 {
	return f.window.averageInterval()
}

// Filter implements Averaging.
func (f *Median) Filter(x, y, z float64, output []float64, timestamp int64) (bool, error) {
	if err := checkOutput(output); err != nil {
		return false, err
	}
	if !f.window.add([3]float64{x, y, z}, timestamp) {
		return false, nil
	}
	for i := range output {
		output[i] = stat.Quantile(0.5, stat.Empirical, f.window.sorted[i], nil)
	}
	return true, nil
}

// Reset discards the buffered samples and timing state.
func (f *Median) Reset() {
	f.window.reset()
}

// CopyFrom makes f an exact deep copy of src.
func (f *Median) CopyFrom(src *Median) {
	f.window = src.window.clone()
}

// CopyTo makes dst an exact deep copy of f.
func (f *Median) CopyTo(dst *Median) {
	dst.CopyFrom(f)
}

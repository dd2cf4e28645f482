package monitor

import (
	"errors"
	"fmt"

	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/banshee-data/inertial.conditioner/internal/units"
)

// ErrNoData is returned when there is nothing to chart.
var ErrNoData = errors.New("no samples to chart")

// Series pairs one sensor's raw samples with the conditioned output.
type Series struct {
	Kind        measurement.Kind
	Raw         []measurement.Triad
	Conditioned []measurement.Triad
}

var axisNames = [3]string{"x", "y", "z"}

func (s Series) title() string {
	return fmt.Sprintf("%s (%s)", s.Kind, units.SIUnit(string(s.Kind)))
}

// origin returns the earliest timestamp across both sample sets.
func (s Series) origin() (int64, bool) {
	var t0 int64
	found := false
	for _, set := range [][]measurement.Triad{s.Raw, s.Conditioned} {
		for _, m := range set {
			if !found || m.Timestamp < t0 {
				t0, found = m.Timestamp, true
			}
		}
	}
	return t0, found
}

func seconds(t, origin int64) float64 {
	return float64(t-origin) / 1e9
}

func component(m measurement.Triad, axis int) float64 {
	switch axis {
	case 0:
		return m.Value.X
	case 1:
		return m.Value.Y
	default:
		return m.Value.Z
	}
}

func checkSeries(series []Series) error {
	for _, s := range series {
		if len(s.Raw) > 0 || len(s.Conditioned) > 0 {
			return nil
		}
	}
	return ErrNoData
}

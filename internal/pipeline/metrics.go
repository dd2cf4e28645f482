package pipeline

import (
	"github.com/banshee-data/inertial.conditioner/internal/measurement"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sample outcomes recorded by Metrics.
const (
	OutcomeEmitted  = "emitted"  // conditioned sample written
	OutcomeWarming  = "warming"  // interpolator history not yet full
	OutcomeSettling = "settling" // averaging filter needs another time delta
	OutcomeRejected = "rejected" // processing error
)

// Metrics counts stream activity. A nil *Metrics records nothing.
type Metrics struct {
	samples     *prometheus.CounterVec
	conversions *prometheus.CounterVec
}

// NewMetrics registers the conditioning counters with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		samples: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imu_conditioner_samples_total",
				Help: "Samples processed by conditioning streams",
			},
			[]string{"kind", "outcome"},
		),
		conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "imu_conditioner_frame_conversions_total",
				Help: "Samples converted between ENU and NED",
			},
			[]string{"target"},
		),
	}
}

func (m *Metrics) observe(kind, outcome string) {
	if m == nil {
		return
	}
	m.samples.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) converted(target measurement.Frame) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(string(target)).Inc()
}

package pvss

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts dealing and verification outcomes. A nil *Metrics
// records nothing.
type Metrics struct {
	dealt          prometheus.Counter
	verified       *prometheus.CounterVec
	aggregated     prometheus.Counter
	verifyDuration prometheus.Histogram
}

// NewMetrics creates the PVSS collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		dealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pvss",
			Name:      "transcripts_dealt_total",
			Help:      "Transcripts produced by Deal.",
		}),
		verified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pvss",
			Name:      "transcripts_verified_total",
			Help:      "Transcript verifications by result.",
		}, []string{"result"}),
		aggregated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pvss",
			Name:      "transcripts_aggregated_total",
			Help:      "Input transcripts combined by Aggregate.",
		}),
		verifyDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pvss",
			Name:      "verify_duration_seconds",
			Help:      "Time spent verifying a single transcript.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
	for _, c := range []prometheus.Collector{m.dealt, m.verified, m.aggregated, m.verifyDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observeDeal() {
	if m == nil {
		return
	}
	m.dealt.Inc()
}

func (m *Metrics) observeAggregate(inputs int) {
	if m == nil {
		return
	}
	m.aggregated.Add(float64(inputs))
}

func (m *Metrics) observeVerify(start time.Time, err error) {
	if m == nil {
		return
	}
	m.verifyDuration.Observe(time.Since(start).Seconds())
	result := "valid"
	switch {
	case err == nil:
	case isInvalid(err):
		result = "invalid"
	default:
		result = "error"
	}
	m.verified.WithLabelValues(result).Inc()
}

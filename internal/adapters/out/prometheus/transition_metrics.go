package prometheus

import (
	"time"

	"statusflow/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
)

var _ ports.TransitionObserver = (*TransitionMetrics)(nil)

const namespace = "workflow"

type TransitionMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewTransitionMetrics(reg prometheus.Registerer) (*TransitionMetrics, error) {
	m := &TransitionMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transition_requests_total",
			Help:      "Transition requests handled, by workflow domain and outcome.",
		}, []string{"domain", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "transition_request_duration_seconds",
			Help:      "Time from accepting a transition request to the resynced answer.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"domain"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *TransitionMetrics) ObserveTransition(domain string, outcome ports.TransitionOutcome, elapsed time.Duration) {
	m.requests.WithLabelValues(domain, string(outcome)).Inc()
	m.duration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

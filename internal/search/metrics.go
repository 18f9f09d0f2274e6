package search

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts suggestion lookups. A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookups *prometheus.CounterVec
	stale   prometheus.Counter
}

// NewMetrics creates and registers search metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_search_lookups_total",
				Help: "Suggestion lookups by result",
			},
			[]string{"result"},
		),
		stale: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_search_stale_responses_total",
			Help: "Suggestion responses discarded because a newer query superseded them",
		}),
	}
	reg.MustRegister(m.lookups, m.stale)
	return m
}

func (m *Metrics) lookup(result string) {
	if m != nil {
		m.lookups.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) discarded() {
	if m != nil {
		m.stale.Inc()
	}
}

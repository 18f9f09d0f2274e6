package cart

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/storefront/internal/cart/domain"
)

// Metrics tracks live carts and dispatched actions. A nil *Metrics records nothing.
type Metrics struct {
	activeCarts prometheus.Gauge
	actions     *prometheus.CounterVec
}

// NewMetrics creates and registers cart metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		activeCarts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_active_carts",
			Help: "Number of carts held in memory",
		}),
		actions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "storefront_cart_actions_total",
				Help: "Cart actions dispatched by type",
			},
			[]string{"action"},
		),
	}
	reg.MustRegister(m.activeCarts, m.actions)
	return m
}

func (m *Metrics) setActive(n int) {
	if m != nil {
		m.activeCarts.Set(float64(n))
	}
}

func (m *Metrics) listener() Listener {
	return func(_ context.Context, action domain.Action, _, _ domain.State) {
		if m != nil {
			m.actions.WithLabelValues(domain.Name(action)).Inc()
		}
	}
}

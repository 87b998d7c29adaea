package orderserver

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the server's prometheus instruments. A fresh registry per
// server keeps tests independent of global state.
type Metrics struct {
	registry       *prometheus.Registry
	OrdersCreated  prometheus.Counter
	OrdersReplayed prometheus.Counter
	OrdersRejected *prometheus.CounterVec
}

// NewMetrics creates and registers the server metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		OrdersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booktrade",
			Subsystem: "orderd",
			Name:      "orders_created_total",
			Help:      "Total number of orders created.",
		}),
		OrdersReplayed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "booktrade",
			Subsystem: "orderd",
			Name:      "orders_replayed_total",
			Help:      "Total number of order requests answered from an idempotency record.",
		}),
		OrdersRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "booktrade",
			Subsystem: "orderd",
			Name:      "orders_rejected_total",
			Help:      "Total number of rejected order requests.",
		}, []string{"reason"}),
	}

	m.registry.MustRegister(m.OrdersCreated, m.OrdersReplayed, m.OrdersRejected)
	return m
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the paywall operation counters and the registry they are
// registered on.
type Metrics struct {
	registry *prometheus.Registry

	authTotal     *prometheus.CounterVec
	validateTotal *prometheus.CounterVec
}

// NewMetrics creates a metrics set on a fresh registry, including the
// standard Go runtime collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		authTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgate_auth_total",
				Help: "Total number of authentication attempts by result",
			},
			[]string{"result"},
		),
		validateTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "contentgate_validate_total",
				Help: "Total number of session validations by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.authTotal,
		m.validateTotal,
	)

	return m
}

// RecordAuth counts one authentication attempt with the given result label
// ("ok" or the error code reported to the client).
func (m *Metrics) RecordAuth(result string) {
	m.authTotal.WithLabelValues(result).Inc()
}

// RecordValidate counts one validation attempt with the given result label.
func (m *Metrics) RecordValidate(result string) {
	m.validateTotal.WithLabelValues(result).Inc()
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

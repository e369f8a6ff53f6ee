package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cozyclinic/healthsuggest/matcher"
)

// metrics tracks suggestion outcomes on a private registry so tests can
// run multiple servers without duplicate-registration panics.
type metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "suggest_requests_total",
			Help: "Suggestion requests served, by outcome.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(m.requests)
	return m
}

func (m *metrics) observe(sug matcher.Suggestion) {
	switch {
	case sug.Fallback:
		m.requests.WithLabelValues("fallback").Inc()
	case sug.Matched():
		m.requests.WithLabelValues("matched").Inc()
	default:
		m.requests.WithLabelValues("none").Inc()
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

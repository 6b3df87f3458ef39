// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"time"

	"identity/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the authentication collectors and the registry serving them.
type Metrics struct {
	registry *prometheus.Registry

	AuthAttempts *prometheus.CounterVec
	AuthDuration *prometheus.HistogramVec
	TokenChecks  *prometheus.CounterVec
}

var _ service.AuthRecorder = (*Metrics)(nil)

// New creates a registry with the Go runtime collectors and the
// authentication metrics registered on it.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_auth_attempts_total",
				Help: "Total number of authentication attempts by outcome",
			},
			[]string{"outcome"},
		),
		AuthDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "identity_auth_duration_seconds",
				Help:    "Authentication duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		TokenChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "identity_token_checks_total",
				Help: "Total number of bearer token checks by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(m.AuthAttempts, m.AuthDuration, m.TokenChecks)

	return m
}

// NewRecorder exposes Metrics as the domain recorder.
func NewRecorder(m *Metrics) service.AuthRecorder {
	return m
}

// RecordAuthentication counts an authentication attempt and its duration.
func (m *Metrics) RecordAuthentication(outcome string, elapsed time.Duration) {
	m.AuthAttempts.WithLabelValues(outcome).Inc()
	m.AuthDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// RecordTokenCheck counts a bearer token check.
func (m *Metrics) RecordTokenCheck(outcome string) {
	m.TokenChecks.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Package metrics holds the Prometheus collectors exported by envd.
package metrics

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/thesunny/get-dynamic-env/env"
)

const namespace = "envd"

// Metrics owns a registry and the collectors registered on it. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec
	Validations  *prometheus.CounterVec
	PublicVars   prometheus.Gauge
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by method, route and status.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by method and route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		Validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "env_validations_total",
				Help:      "Validator calls by operation and result (ok or the failure reason).",
			},
			[]string{"op", "result"},
		),
		PublicVars: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "public_vars",
			Help:      "Number of public variables being served.",
		}),
	}

	m.Registry.MustRegister(
		m.HTTPRequests,
		m.HTTPLatency,
		m.Validations,
		m.PublicVars,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	route = LabelOrUnknown(route)
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveValidation implements env.Recorder. A nil reason counts as "ok".
func (m *Metrics) ObserveValidation(op string, reason error) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(op, Result(reason)).Inc()
}

// SetPublicVars records how many public variables are served.
func (m *Metrics) SetPublicVars(n int) {
	if m == nil {
		return
	}
	m.PublicVars.Set(float64(n))
}

// Result maps a validation reason to its metric label.
func Result(reason error) string {
	switch {
	case reason == nil:
		return "ok"
	case stderrors.Is(reason, env.ErrMissing):
		return "missing"
	case stderrors.Is(reason, env.ErrNotString):
		return "not_string"
	case stderrors.Is(reason, env.ErrMissingPrefix):
		return "missing_prefix"
	default:
		return "other"
	}
}

func LabelOrUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "unknown"
	}
	return s
}

package telemetry

import (
	"net/http"
	"time"

	"github.com/funvibe/chainlang/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics provides Prometheus metrics for propagation and dispatch.
// A nil or disabled Metrics accepts every call and records nothing.
type Metrics struct {
	passes          prometheus.Counter
	passDuration    prometheus.Histogram
	statements      *prometheus.CounterVec
	detached        prometheus.Counter
	argumentResets  prometheus.Counter
	errorValues     *prometheus.CounterVec
	recoveredFaults prometheus.Counter

	registry *prometheus.Registry
}

// PassStats summarizes one propagation pass.
type PassStats struct {
	Reconciled     int
	Reused         int
	Detached       int
	ArgumentResets int
	Errors         int // top-level statements whose result is an error value
	Duration       time.Duration
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics(cfg config.MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return &Metrics{}
	}
	ns := cfg.Namespace
	m := &Metrics{
		passes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "propagation_passes_total",
			Help:      "Total number of propagation passes",
		}),
		passDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "propagation_pass_duration_seconds",
			Help:      "Duration of propagation passes",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		statements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "statements_total",
			Help:      "Statements visited by propagation, by outcome",
		}, []string{"outcome"}),
		detached: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "references_detached_total",
			Help:      "References detached to their declared default",
		}),
		argumentResets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "argument_resets_total",
			Help:      "Call sites whose arguments were reset after a signature change",
		}),
		errorValues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "error_values_total",
			Help:      "Error values produced by operations, by error kind",
		}, []string{"kind"}),
		recoveredFaults: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "recovered_faults_total",
			Help:      "Native faults recovered at the dispatch boundary",
		}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(
		m.passes, m.passDuration, m.statements, m.detached,
		m.argumentResets, m.errorValues, m.recoveredFaults,
	)
	return m
}

func (m *Metrics) enabled() bool {
	return m != nil && m.registry != nil
}

// ObservePass records one propagation pass.
func (m *Metrics) ObservePass(s PassStats) {
	if !m.enabled() {
		return
	}
	m.passes.Inc()
	m.passDuration.Observe(s.Duration.Seconds())
	m.statements.WithLabelValues("reconciled").Add(float64(s.Reconciled))
	m.statements.WithLabelValues("reused").Add(float64(s.Reused))
	m.statements.WithLabelValues("error").Add(float64(s.Errors))
	m.detached.Add(float64(s.Detached))
	m.argumentResets.Add(float64(s.ArgumentResets))
}

// ObserveErrorValue records an error value produced by an operation.
func (m *Metrics) ObserveErrorValue(kind string) {
	if !m.enabled() {
		return
	}
	if kind == "" {
		kind = "unspecified"
	}
	m.errorValues.WithLabelValues(kind).Inc()
}

// ObserveRecoveredFault records a native fault converted to an error value.
func (m *Metrics) ObserveRecoveredFault() {
	if !m.enabled() {
		return
	}
	m.recoveredFaults.Inc()
}

// Registry exposes the underlying registry, nil when disabled.
func (m *Metrics) Registry() *prometheus.Registry {
	if !m.enabled() {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if !m.enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

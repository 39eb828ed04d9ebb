// Package rostermetrics defines the roster module's metrics surface.
package rostermetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RosterMetrics records roster operations.
type RosterMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordRosterSize(ctx context.Context, total int, active int)
}

// PrometheusMetrics implements RosterMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	total     prometheus.Gauge
	active    prometheus.Gauge
}

// NewPrometheusMetrics registers the roster collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_roster_operation_attempts_total",
			Help: "Roster operations attempted.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_roster_operation_success_total",
			Help: "Roster operations that succeeded.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_roster_operation_failure_total",
			Help: "Roster operations that failed or were rejected.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchday_roster_operation_duration_seconds",
			Help:    "Roster operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_roster_players",
			Help: "Players on the roster.",
		}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "matchday_roster_active_players",
			Help: "Players marked present today.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.total, m.active)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.attempts.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.successes.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.failures.WithLabelValues(operation).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.durations.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRosterSize(_ context.Context, total int, active int) {
	m.total.Set(float64(total))
	m.active.Set(float64(active))
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordRosterSize(context.Context, int, int)                      {}

// Package archivemetrics defines the archive module's metrics surface.
package archivemetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ArchiveMetrics records archive operations.
type ArchiveMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordSnapshotAppended(ctx context.Context)
}

// PrometheusMetrics implements ArchiveMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	appended  prometheus.Counter
}

// NewPrometheusMetrics registers the archive collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_archive_operation_attempts_total",
			Help: "Archive operations attempted.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_archive_operation_success_total",
			Help: "Archive operations that succeeded.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_archive_operation_failure_total",
			Help: "Archive operations that failed or were rejected.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchday_archive_operation_duration_seconds",
			Help:    "Archive operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		appended: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_archive_snapshots_appended_total",
			Help: "Day snapshots appended to the archive.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.appended)
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

func (m *PrometheusMetrics) RecordSnapshotAppended(_ context.Context) {
	m.appended.Inc()
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                  {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordSnapshotAppended(context.Context)                          {}

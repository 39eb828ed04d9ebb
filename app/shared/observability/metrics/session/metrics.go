// Package sessionmetrics defines the session module's metrics surface with a
// prometheus-backed implementation and a no-op used in tests.
package sessionmetrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SessionMetrics records session engine operations.
type SessionMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordRoundDrawn(ctx context.Context, round int, matches int)
	RecordSessionFinished(ctx context.Context, participants int)
}

// PrometheusMetrics implements SessionMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	rounds    *prometheus.CounterVec
	finished  prometheus.Counter
}

// NewPrometheusMetrics registers the session collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_session_operation_attempts_total",
			Help: "Session operations attempted.",
		}, []string{"operation"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_session_operation_success_total",
			Help: "Session operations that succeeded.",
		}, []string{"operation"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_session_operation_failure_total",
			Help: "Session operations that failed or were rejected.",
		}, []string{"operation"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matchday_session_operation_duration_seconds",
			Help:    "Session operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		rounds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "matchday_session_rounds_drawn_total",
			Help: "Rounds drawn, labelled by round number.",
		}, []string{"round"}),
		finished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "matchday_sessions_finished_total",
			Help: "Competition days finished.",
		}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations, m.rounds, m.finished)
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

func (m *PrometheusMetrics) RecordRoundDrawn(_ context.Context, round int, _ int) {
	m.rounds.WithLabelValues(strconv.Itoa(round)).Inc()
}

func (m *PrometheusMetrics) RecordSessionFinished(_ context.Context, _ int) {
	m.finished.Inc()
}

// NoOpMetrics discards everything.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordRoundDrawn(context.Context, int, int)                    {}
func (NoOpMetrics) RecordSessionFinished(context.Context, int)                    {}

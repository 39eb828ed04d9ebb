// Package sessionservice orchestrates the competition-day engine: it loads
// and stores the single active session, runs the state machine, publishes
// transition events and applies the end-of-day rating batch.
package sessionservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	rosterdb "github.com/ttv-club/matchday/app/modules/roster/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	sessionmetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/session"
	"github.com/ttv-club/matchday/app/shared/results"
)

// SessionOperationResult is the outcome of a session mutation.
type SessionOperationResult = results.OperationResult[sessiondomain.Session, events.SessionOperationFailedPayloadV1]

// FinishOperationResult carries the snapshot and rating deltas on success.
type FinishOperationResult = results.OperationResult[events.SessionFinishedPayloadV1, events.SessionOperationFailedPayloadV1]

// SessionService implements the session lifecycle.
type SessionService struct {
	repo     sessiondb.Repository
	roster   rosterdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  sessionmetrics.SessionMetrics
	tracer   trace.Tracer
	db       *bun.DB
	clock    clockwork.Clock
	rng      *rand.Rand

	// One in-flight mutation per session; transitions are atomic
	// read-modify-write against the single session row.
	mu sync.Mutex
}

// NewSessionService creates a new SessionService.
func NewSessionService(
	repo sessiondb.Repository,
	roster rosterdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics sessionmetrics.SessionMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	clock clockwork.Clock,
	rng *rand.Rand,
) *SessionService {
	return &SessionService{
		repo:     repo,
		roster:   roster,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
		clock:    clock,
		rng:      rng,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps an operation with tracing, metrics and panic recovery.
func withTelemetry[S any, F any](
	s *SessionService,
	ctx context.Context,
	operationName string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				attr.ExtractCorrelationID(ctx),
				attr.Error(err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Error(wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			attr.ExtractCorrelationID(ctx),
			attr.String("operation", operationName),
			attr.Any("failure_payload", *result.Failure),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName)
	}

	return result, nil
}

// runInTx runs the operation inside a transaction when a DB is wired.
func runInTx[S any, F any](
	s *SessionService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result results.OperationResult[S, F]
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

func sessionFailure(operation, reason string) events.SessionOperationFailedPayloadV1 {
	return events.SessionOperationFailedPayloadV1{Operation: operation, Reason: reason}
}

func (s *SessionService) publish(ctx context.Context, topic string, payload any) {
	if err := s.eventBus.Publish(ctx, topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			attr.String("topic", topic),
			attr.Error(err),
		)
	}
}

// Package rosterservice manages the club roster: who exists, who is present
// today, and what their rating is.
package rosterservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	rosterdb "github.com/ttv-club/matchday/app/modules/roster/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	rostermetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/roster"
	"github.com/ttv-club/matchday/app/shared/results"
)

// RosterOperationResult is the outcome of a roster mutation.
type RosterOperationResult = results.OperationResult[rosterdb.Player, events.RosterOperationFailedPayloadV1]

// RosterService implements the roster operations.
type RosterService struct {
	repo     rosterdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  rostermetrics.RosterMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	repo rosterdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics rostermetrics.RosterMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *RosterService {
	return &RosterService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps an operation with tracing, metrics and panic recovery.
func withTelemetry[S any, F any](
	s *RosterService,
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
	s *RosterService,
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

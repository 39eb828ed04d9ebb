// Package archiveservice owns the append-only archive of finished days and
// the season standings derived from it.
package archiveservice

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	archivedomain "github.com/ttv-club/matchday/app/modules/archive/domain"
	archivedb "github.com/ttv-club/matchday/app/modules/archive/infrastructure/repositories"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	"github.com/ttv-club/matchday/app/shared/attr"
	archivemetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/archive"
)

// ArchiveService implements the archive operations.
type ArchiveService struct {
	repo     archivedb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  archivemetrics.ArchiveMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewArchiveService creates a new ArchiveService.
func NewArchiveService(
	repo archivedb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics archivemetrics.ArchiveMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *ArchiveService {
	return &ArchiveService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

func (s *ArchiveService) instrument(ctx context.Context, operation string) (context.Context, func(err error)) {
	ctx, span := s.tracer.Start(ctx, operation, trace.WithAttributes(
		attribute.String("operation", operation),
	))
	s.metrics.RecordOperationAttempt(ctx, operation)
	startTime := time.Now()

	return ctx, func(err error) {
		s.metrics.RecordOperationDuration(ctx, operation, time.Since(startTime))
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, operation)
			span.RecordError(err)
		} else {
			s.metrics.RecordOperationSuccess(ctx, operation)
		}
		span.End()
	}
}

// AppendSnapshot stores a finished day. Duplicate snapshot ids are absorbed
// by the repository, so replays are safe.
func (s *ArchiveService) AppendSnapshot(ctx context.Context, snapshot sessiondomain.DaySnapshot) (err error) {
	ctx, done := s.instrument(ctx, "AppendSnapshot")
	defer func() { done(err) }()

	if err = s.repo.Append(ctx, nil, snapshot); err != nil {
		return fmt.Errorf("AppendSnapshot: %w", err)
	}
	s.metrics.RecordSnapshotAppended(ctx)
	s.logger.InfoContext(ctx, "Day snapshot archived",
		attr.ExtractCorrelationID(ctx),
		attr.String("snapshot_id", snapshot.ID.String()),
		attr.SessionID("session_id", snapshot.SessionID),
	)
	return nil
}

// ListSnapshots returns all archived days, newest first.
func (s *ArchiveService) ListSnapshots(ctx context.Context) (snapshots []sessiondomain.DaySnapshot, err error) {
	ctx, done := s.instrument(ctx, "ListSnapshots")
	defer func() { done(err) }()

	snapshots, err = s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ListSnapshots: %w", err)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].FinishedAt.After(snapshots[j].FinishedAt)
	})
	return snapshots, nil
}

// SeasonStandings recomputes the cumulative table from the whole archive.
func (s *ArchiveService) SeasonStandings(ctx context.Context) (rows []archivedomain.SeasonRow, err error) {
	ctx, done := s.instrument(ctx, "SeasonStandings")
	defer func() { done(err) }()

	snapshots, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("SeasonStandings: %w", err)
	}
	return archivedomain.AggregateSeason(snapshots), nil
}

// ClearArchive wipes every snapshot.
func (s *ArchiveService) ClearArchive(ctx context.Context) (cleared int, err error) {
	ctx, done := s.instrument(ctx, "ClearArchive")
	defer func() { done(err) }()

	cleared, err = s.repo.Clear(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("ClearArchive: %w", err)
	}

	payload := events.ArchiveClearedPayloadV1{ClearedAt: time.Now().UTC(), Snapshots: cleared}
	if pubErr := s.eventBus.Publish(ctx, events.TopicArchiveCleared, payload); pubErr != nil {
		s.logger.WarnContext(ctx, "Failed to publish archive cleared event", attr.Error(pubErr))
	}
	return cleared, nil
}

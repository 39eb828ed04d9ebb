package archiveservice

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	archivedb "github.com/ttv-club/matchday/app/modules/archive/infrastructure/repositories"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	"github.com/ttv-club/matchday/app/shared/attr"
	archivemetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/archive"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func newTestService(repo *archivedb.FakeRepository, bus *eventbus.FakeEventBus) *ArchiveService {
	return NewArchiveService(
		repo,
		bus,
		attr.NoOpLogger,
		archivemetrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"),
		nil,
	)
}

func daySnapshot(id string, finishedAt time.Time, rows ...sessiondomain.StandingsRow) sessiondomain.DaySnapshot {
	return sessiondomain.DaySnapshot{
		ID:         sharedtypes.SnapshotID(id),
		SessionID:  sharedtypes.NewSessionID(),
		FinishedAt: finishedAt,
		Rounds:     sessiondomain.SessionRounds,
		Standings:  rows,
	}
}

func TestAppendSnapshotIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := archivedb.NewFakeRepository()
	service := newTestService(repo, eventbus.NewFakeEventBus())

	snapshot := daySnapshot("snap-1", time.Now())
	if err := service.AppendSnapshot(ctx, snapshot); err != nil {
		t.Fatal(err)
	}
	// Replaying the same event must not duplicate the day.
	if err := service.AppendSnapshot(ctx, snapshot); err != nil {
		t.Fatal(err)
	}

	snapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 1 {
		t.Errorf("archive holds %d snapshots, want 1", len(snapshots))
	}
}

func TestListSnapshotsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := archivedb.NewFakeRepository()
	service := newTestService(repo, eventbus.NewFakeEventBus())

	base := time.Date(2026, 1, 5, 21, 0, 0, 0, time.UTC)
	for i, id := range []string{"snap-old", "snap-mid", "snap-new"} {
		if err := service.AppendSnapshot(ctx, daySnapshot(id, base.AddDate(0, 0, 7*i))); err != nil {
			t.Fatal(err)
		}
	}

	snapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"snap-new", "snap-mid", "snap-old"}
	for i, id := range want {
		if snapshots[i].ID.String() != id {
			t.Fatalf("position %d: got %s, want %s", i, snapshots[i].ID, id)
		}
	}
}

func TestSeasonStandings(t *testing.T) {
	ctx := context.Background()
	repo := archivedb.NewFakeRepository()
	service := newTestService(repo, eventbus.NewFakeEventBus())

	base := time.Date(2026, 1, 5, 21, 0, 0, 0, time.UTC)
	service.AppendSnapshot(ctx, daySnapshot("snap-1", base,
		sessiondomain.StandingsRow{PlayerID: "p-alice", Name: "Alice", Points: 12, Wins: 6, SetsWon: 18, Played: 6},
		sessiondomain.StandingsRow{PlayerID: "p-bob", Name: "Bob", Losses: 6, SetsLost: 18, Played: 6},
	))
	service.AppendSnapshot(ctx, daySnapshot("snap-2", base.AddDate(0, 0, 7),
		sessiondomain.StandingsRow{PlayerID: "p-alice", Name: "Alice", Points: 8, Wins: 4, Losses: 2, SetsWon: 14, SetsLost: 8, Played: 6},
		sessiondomain.StandingsRow{PlayerID: "p-bob", Name: "Bob", Points: 4, Wins: 2, Losses: 4, SetsWon: 8, SetsLost: 14, Played: 6},
	))

	rows, err := service.SeasonStandings(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if rows[0].Name != "Alice" || rows[0].Points != 20 || rows[0].DaysPlayed != 2 {
		t.Errorf("leader row wrong: %+v", rows[0])
	}
}

func TestClearArchive(t *testing.T) {
	ctx := context.Background()
	repo := archivedb.NewFakeRepository()
	bus := eventbus.NewFakeEventBus()
	service := newTestService(repo, bus)

	service.AppendSnapshot(ctx, daySnapshot("snap-1", time.Now()))
	service.AppendSnapshot(ctx, daySnapshot("snap-2", time.Now()))

	cleared, err := service.ClearArchive(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if cleared != 2 {
		t.Errorf("cleared = %d, want 2", cleared)
	}

	snapshots, err := service.ListSnapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(snapshots) != 0 {
		t.Errorf("archive still holds %d snapshots", len(snapshots))
	}

	topics := bus.PublishedTopics()
	if len(topics) != 1 || topics[0] != events.TopicArchiveCleared {
		t.Errorf("topics = %v, want [%s]", topics, events.TopicArchiveCleared)
	}
}

func TestExportSeasonXLSX(t *testing.T) {
	ctx := context.Background()
	repo := archivedb.NewFakeRepository()
	service := newTestService(repo, eventbus.NewFakeEventBus())

	service.AppendSnapshot(ctx, daySnapshot("snap-1", time.Now(),
		sessiondomain.StandingsRow{PlayerID: "p-alice", Name: "Alice", Points: 12, Wins: 6, SetsWon: 18, Played: 6},
		sessiondomain.StandingsRow{PlayerID: "p-bob", Name: "Bob", Losses: 6, SetsLost: 18, Played: 6},
	))

	data, err := service.ExportSeasonXLSX(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Fatal("empty workbook")
	}

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("exported bytes are not a workbook: %v", err)
	}
	defer workbook.Close()

	name, err := workbook.GetCellValue(seasonSheet, "B2")
	if err != nil {
		t.Fatal(err)
	}
	if name != "Alice" {
		t.Errorf("B2 = %q, want the season leader %q", name, "Alice")
	}
	points, err := workbook.GetCellValue(seasonSheet, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if points != "12" {
		t.Errorf("C2 = %q, want %q", points, "12")
	}
}

package archivesubscribers

import (
	"context"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	archiveservice "github.com/ttv-club/matchday/app/modules/archive/application"
	archivedb "github.com/ttv-club/matchday/app/modules/archive/infrastructure/repositories"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	"github.com/ttv-club/matchday/app/shared/attr"
	archivemetrics "github.com/ttv-club/matchday/app/shared/observability/metrics/archive"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func TestSubscriberArchivesFinishedSessions(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus := eventbus.New(attr.NoOpLogger)
	defer bus.Close()

	repo := archivedb.NewFakeRepository()
	service := archiveservice.NewArchiveService(
		repo, bus, attr.NoOpLogger, archivemetrics.NoOpMetrics{},
		noop.NewTracerProvider().Tracer("test"), nil,
	)
	subscriber := NewArchiveSubscriber(service, attr.NoOpLogger)

	done := make(chan error, 1)
	go func() { done <- subscriber.Run(ctx, bus) }()

	// Give the subscription a moment to attach before publishing.
	time.Sleep(50 * time.Millisecond)

	snapshot := sessiondomain.DaySnapshot{
		ID:         "snap-1",
		SessionID:  sharedtypes.NewSessionID(),
		FinishedAt: time.Now().UTC(),
		Rounds:     sessiondomain.SessionRounds,
		Standings: []sessiondomain.StandingsRow{
			{PlayerID: "p-alice", Name: "Alice", Points: 12, Wins: 6, Played: 6},
		},
	}
	payload := events.SessionFinishedPayloadV1{Snapshot: snapshot}
	if err := bus.Publish(ctx, events.TopicSessionFinished, payload); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(2 * time.Second)
	for {
		snapshots, err := repo.List(ctx, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(snapshots) == 1 {
			if snapshots[0].ID != "snap-1" {
				t.Fatalf("archived id = %s, want snap-1", snapshots[0].ID)
			}
			break
		}
		select {
		case <-deadline:
			t.Fatal("snapshot never reached the archive")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("subscriber returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Error("subscriber did not stop on context cancel")
	}
}

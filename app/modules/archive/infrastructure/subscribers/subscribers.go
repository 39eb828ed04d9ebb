// Package archivesubscribers wires the archive module onto the event bus:
// every session.finished event lands its day snapshot in the archive.
package archivesubscribers

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ttv-club/matchday/app/eventbus"
	"github.com/ttv-club/matchday/app/events"
	archiveservice "github.com/ttv-club/matchday/app/modules/archive/application"
	"github.com/ttv-club/matchday/app/shared/attr"
)

// ArchiveSubscriber consumes session.finished events.
type ArchiveSubscriber struct {
	service *archiveservice.ArchiveService
	logger  *slog.Logger
}

// NewArchiveSubscriber creates a new ArchiveSubscriber.
func NewArchiveSubscriber(service *archiveservice.ArchiveService, logger *slog.Logger) *ArchiveSubscriber {
	return &ArchiveSubscriber{service: service, logger: logger}
}

// Run subscribes and processes events until the context is canceled or the
// bus closes the channel.
func (s *ArchiveSubscriber) Run(ctx context.Context, bus eventbus.EventBus) error {
	messages, err := bus.Subscribe(ctx, events.TopicSessionFinished)
	if err != nil {
		return err
	}

	for msg := range messages {
		s.handle(ctx, msg)
	}
	return nil
}

func (s *ArchiveSubscriber) handle(ctx context.Context, msg *message.Message) {
	var payload events.SessionFinishedPayloadV1
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to unmarshal session finished payload",
			attr.String("message_id", msg.UUID),
			attr.Error(err),
		)
		// Poison message; retrying cannot help.
		msg.Ack()
		return
	}

	if err := s.service.AppendSnapshot(ctx, payload.Snapshot); err != nil {
		s.logger.ErrorContext(ctx, "Failed to archive day snapshot",
			attr.String("snapshot_id", payload.Snapshot.ID.String()),
			attr.Error(err),
		)
		msg.Nack()
		return
	}
	msg.Ack()
}

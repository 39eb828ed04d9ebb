package sessionservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ttv-club/matchday/app/events"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	"github.com/ttv-club/matchday/app/shared/results"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// FinishSession closes the day once every match is decided: it freezes the
// final standings into a day snapshot, applies the accumulated rating deltas
// to the roster in the same transaction and publishes session.finished, which
// the archive module persists.
func (s *SessionService) FinishSession(ctx context.Context) (FinishOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "FinishSession", func(ctx context.Context) (FinishOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (FinishOperationResult, error) {
			session, err := s.repo.GetActive(ctx, db)
			if err == sessiondb.ErrNoActiveSession {
				return results.Fail[events.SessionFinishedPayloadV1](
					sessionFailure("FinishSession", "no session is running"),
				), nil
			} else if err != nil {
				return FinishOperationResult{}, err
			}

			snapshot, deltas, err := session.Finish(sharedtypes.NewSnapshotID(), s.clock.Now())
			if err != nil {
				return results.Fail[events.SessionFinishedPayloadV1](
					sessionFailure("FinishSession", err.Error()),
				), nil
			}

			if err := s.roster.ApplyRatingDeltas(ctx, db, deltas); err != nil {
				return FinishOperationResult{}, err
			}
			if err := s.repo.Save(ctx, db, session); err != nil {
				return FinishOperationResult{}, err
			}

			payload := events.SessionFinishedPayloadV1{
				Session:  *session,
				Snapshot: snapshot,
				Deltas:   deltas,
			}

			s.metrics.RecordSessionFinished(ctx, len(session.Participants))
			s.logger.InfoContext(ctx, "Session finished",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
				attr.String("snapshot_id", snapshot.ID.String()),
				attr.Int("rated_players", len(deltas)),
			)
			s.publish(ctx, events.TopicSessionFinished, payload)

			return results.Ok[events.SessionFinishedPayloadV1, events.SessionOperationFailedPayloadV1](payload), nil
		})
	})
}

package sessionservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ttv-club/matchday/app/events"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	"github.com/ttv-club/matchday/app/shared/results"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// RecordResult parses the raw input and applies it to a paired match. Input
// that does not parse clears the match back to unset; only byes and missing
// matches are rejected.
func (s *SessionService) RecordResult(ctx context.Context, matchID sharedtypes.MatchID, rawInput string) (SessionOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "RecordResult", func(ctx context.Context) (SessionOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SessionOperationResult, error) {
			session, err := s.repo.GetActive(ctx, db)
			if err == sessiondb.ErrNoActiveSession {
				return results.Fail[sessiondomain.Session](
					sessionFailure("RecordResult", "no session is running"),
				), nil
			} else if err != nil {
				return SessionOperationResult{}, err
			}

			result := sessiondomain.ParseResult(rawInput)
			if err := session.RecordResult(matchID, result); err != nil {
				return results.Fail[sessiondomain.Session](
					sessionFailure("RecordResult", err.Error()),
				), nil
			}

			if err := s.repo.Save(ctx, db, session); err != nil {
				return SessionOperationResult{}, err
			}

			s.logger.InfoContext(ctx, "Result recorded",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
				attr.MatchID("match_id", matchID),
				attr.String("result", result.String()),
			)
			s.publish(ctx, events.TopicResultRecorded, events.ResultRecordedPayloadV1{
				SessionID: session.ID,
				MatchID:   matchID,
				Result:    result,
			})

			return results.Ok[sessiondomain.Session, events.SessionOperationFailedPayloadV1](*session), nil
		})
	})
}

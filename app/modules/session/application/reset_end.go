package sessionservice

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ttv-club/matchday/app/events"
	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sessiondb "github.com/ttv-club/matchday/app/modules/session/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	"github.com/ttv-club/matchday/app/shared/results"
)

// ResetToday restarts the draw, keeping the participant snapshot and session
// id. The engine permits this even on a finished session; the UI is expected
// to guard that case.
func (s *SessionService) ResetToday(ctx context.Context) (SessionOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "ResetToday", func(ctx context.Context) (SessionOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SessionOperationResult, error) {
			session, err := s.repo.GetActive(ctx, db)
			if err == sessiondb.ErrNoActiveSession {
				return results.Fail[sessiondomain.Session](
					sessionFailure("ResetToday", "no session is running"),
				), nil
			} else if err != nil {
				return SessionOperationResult{}, err
			}

			session.ResetToday()
			if err := s.repo.Save(ctx, db, session); err != nil {
				return SessionOperationResult{}, err
			}

			s.logger.InfoContext(ctx, "Session reset",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
			)
			s.publish(ctx, events.TopicSessionReset, events.SessionResetPayloadV1{SessionID: session.ID})

			return results.Ok[sessiondomain.Session, events.SessionOperationFailedPayloadV1](*session), nil
		})
	})
}

// EndSession discards the session entirely, finished or not. An unfinished
// session's results are simply lost; nothing reaches the archive.
func (s *SessionService) EndSession(ctx context.Context) (SessionOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "EndSession", func(ctx context.Context) (SessionOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SessionOperationResult, error) {
			session, err := s.repo.GetActive(ctx, db)
			if err == sessiondb.ErrNoActiveSession {
				return results.Fail[sessiondomain.Session](
					sessionFailure("EndSession", "no session is running"),
				), nil
			} else if err != nil {
				return SessionOperationResult{}, err
			}

			if err := s.repo.Delete(ctx, db); err != nil {
				return SessionOperationResult{}, err
			}

			s.logger.InfoContext(ctx, "Session ended",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
				attr.Bool("finished", session.Finished),
			)
			s.publish(ctx, events.TopicSessionEnded, events.SessionEndedPayloadV1{
				SessionID: session.ID,
				Finished:  session.Finished,
			})

			return results.Ok[sessiondomain.Session, events.SessionOperationFailedPayloadV1](*session), nil
		})
	})
}

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

// DrawNextRound generates the next round's pairings, minimizing rematches
// against everything drawn so far today.
func (s *SessionService) DrawNextRound(ctx context.Context) (SessionOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "DrawNextRound", func(ctx context.Context) (SessionOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SessionOperationResult, error) {
			session, err := s.repo.GetActive(ctx, db)
			if err == sessiondb.ErrNoActiveSession {
				return results.Fail[sessiondomain.Session](
					sessionFailure("DrawNextRound", "no session is running"),
				), nil
			} else if err != nil {
				return SessionOperationResult{}, err
			}

			if err := session.DrawNextRound(s.rng); err != nil {
				return results.Fail[sessiondomain.Session](
					sessionFailure("DrawNextRound", err.Error()),
				), nil
			}

			if err := s.repo.Save(ctx, db, session); err != nil {
				return SessionOperationResult{}, err
			}

			roundMatches := make([]sessiondomain.Match, 0)
			for _, match := range session.Matches {
				if match.Round == session.CurrentRound {
					roundMatches = append(roundMatches, match)
				}
			}

			s.metrics.RecordRoundDrawn(ctx, session.CurrentRound, len(roundMatches))
			s.logger.InfoContext(ctx, "Round drawn",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
				attr.Int("round", session.CurrentRound),
				attr.Int("matches", len(roundMatches)),
			)
			s.publish(ctx, events.TopicRoundDrawn, events.RoundDrawnPayloadV1{
				SessionID: session.ID,
				Round:     session.CurrentRound,
				Matches:   roundMatches,
			})

			return results.Ok[sessiondomain.Session, events.SessionOperationFailedPayloadV1](*session), nil
		})
	})
}

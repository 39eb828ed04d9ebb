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

// StartSession snapshots the active roster into a new session. It rejects a
// start while another session exists or with fewer than two present players.
func (s *SessionService) StartSession(ctx context.Context) (SessionOperationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return withTelemetry(s, ctx, "StartSession", func(ctx context.Context) (SessionOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (SessionOperationResult, error) {
			if _, err := s.repo.GetActive(ctx, db); err == nil {
				return results.Fail[sessiondomain.Session](
					sessionFailure("StartSession", "a session is already running"),
				), nil
			} else if err != sessiondb.ErrNoActiveSession {
				return SessionOperationResult{}, err
			}

			players, err := s.roster.ListPlayers(ctx, db)
			if err != nil {
				return SessionOperationResult{}, err
			}

			participants := make([]sessiondomain.Participant, 0, len(players))
			for _, player := range players {
				if !player.Active {
					continue
				}
				participants = append(participants, sessiondomain.Participant{
					ID:     player.ID,
					Name:   player.Name,
					Rating: player.Rating.Normalize(),
				})
			}

			session, err := sessiondomain.NewSession(sharedtypes.NewSessionID(), s.clock.Now(), participants)
			if err == sessiondomain.ErrTooFewParticipants {
				return results.Fail[sessiondomain.Session](
					sessionFailure("StartSession", "at least two players must be present"),
				), nil
			} else if err != nil {
				return SessionOperationResult{}, err
			}

			if err := s.repo.Save(ctx, db, session); err != nil {
				return SessionOperationResult{}, err
			}

			s.logger.InfoContext(ctx, "Session started",
				attr.ExtractCorrelationID(ctx),
				attr.SessionID("session_id", session.ID),
				attr.Int("participants", len(session.Participants)),
			)
			s.publish(ctx, events.TopicSessionStarted, events.SessionStartedPayloadV1{Session: *session})

			return results.Ok[sessiondomain.Session, events.SessionOperationFailedPayloadV1](*session), nil
		})
	})
}

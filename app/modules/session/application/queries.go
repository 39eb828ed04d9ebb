package sessionservice

import (
	"context"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

// CurrentSession returns the active session, or sessiondb.ErrNoActiveSession.
func (s *SessionService) CurrentSession(ctx context.Context) (*sessiondomain.Session, error) {
	return s.repo.GetActive(ctx, nil)
}

// Standings computes the live table for the active session.
func (s *SessionService) Standings(ctx context.Context) ([]sessiondomain.StandingsRow, error) {
	session, err := s.repo.GetActive(ctx, nil)
	if err != nil {
		return nil, err
	}
	return sessiondomain.ComputeStandings(session.Participants, session.Matches), nil
}

// IsFinishable reports whether the active session can be finished. No
// session simply reads as not finishable.
func (s *SessionService) IsFinishable(ctx context.Context) (bool, error) {
	session, err := s.repo.GetActive(ctx, nil)
	if err != nil {
		return false, nil
	}
	return session.IsFinishable(), nil
}

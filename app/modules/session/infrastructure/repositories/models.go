package sessiondb

import (
	"time"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// Session is the persisted form of one competition day. Participants and
// matches live as jsonb so the null-vs-recorded score distinction survives
// round-trips verbatim.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:s"`

	ID           sharedtypes.SessionID      `bun:"id,pk"`
	StartedAt    time.Time                  `bun:"started_at,notnull"`
	Rounds       int                        `bun:"rounds,notnull"`
	CurrentRound int                        `bun:"current_round,notnull,default:0"`
	Finished     bool                       `bun:"finished,notnull,default:false"`
	FinishedAt   *time.Time                 `bun:"finished_at,nullzero"`
	Participants []sessiondomain.Participant `bun:"participants,type:jsonb,notnull"`
	Matches      []sessiondomain.Match       `bun:"matches,type:jsonb,notnull"`
}

// ToDomain converts the stored row into the engine's session.
func (s *Session) ToDomain() *sessiondomain.Session {
	return &sessiondomain.Session{
		ID:           s.ID,
		StartedAt:    s.StartedAt,
		Rounds:       s.Rounds,
		Participants: s.Participants,
		Matches:      s.Matches,
		CurrentRound: s.CurrentRound,
		Finished:     s.Finished,
		FinishedAt:   s.FinishedAt,
	}
}

// FromDomain converts an engine session into its stored form.
func FromDomain(session *sessiondomain.Session) *Session {
	return &Session{
		ID:           session.ID,
		StartedAt:    session.StartedAt,
		Rounds:       session.Rounds,
		CurrentRound: session.CurrentRound,
		Finished:     session.Finished,
		FinishedAt:   session.FinishedAt,
		Participants: session.Participants,
		Matches:      session.Matches,
	}
}

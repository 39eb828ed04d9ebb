package archivedb

import (
	"time"

	"github.com/uptrace/bun"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// DaySnapshot is the persisted archive entry. Rows are written once at
// session finish and never updated.
type DaySnapshot struct {
	bun.BaseModel `bun:"table:day_snapshots,alias:ds"`

	ID         sharedtypes.SnapshotID       `bun:"id,pk"`
	SessionID  sharedtypes.SessionID        `bun:"session_id,notnull"`
	FinishedAt time.Time                    `bun:"finished_at,notnull"`
	Rounds     int                          `bun:"rounds,notnull"`
	Standings  []sessiondomain.StandingsRow `bun:"standings,type:jsonb,notnull"`
}

// ToDomain converts the stored row into the engine's snapshot shape.
func (s *DaySnapshot) ToDomain() sessiondomain.DaySnapshot {
	return sessiondomain.DaySnapshot{
		ID:         s.ID,
		SessionID:  s.SessionID,
		FinishedAt: s.FinishedAt,
		Rounds:     s.Rounds,
		Standings:  s.Standings,
	}
}

// FromDomain converts an engine snapshot into its stored form.
func FromDomain(snapshot sessiondomain.DaySnapshot) *DaySnapshot {
	return &DaySnapshot{
		ID:         snapshot.ID,
		SessionID:  snapshot.SessionID,
		FinishedAt: snapshot.FinishedAt,
		Rounds:     snapshot.Rounds,
		Standings:  snapshot.Standings,
	}
}

// Package sessiondomain holds the pure competition-day engine: pairing,
// standings, result parsing, rating deltas and the session state machine.
// Nothing in here touches storage, transport or the clock.
package sessiondomain

import (
	"time"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// SessionRounds is the fixed number of rounds per competition day.
const SessionRounds = 6

// Participant is one row of the frozen roster snapshot taken at session
// start. Ratings in here never change during the day; they are the sole basis
// for the end-of-day rating computation.
type Participant struct {
	ID     sharedtypes.PlayerID `json:"id"`
	Name   string               `json:"name"`
	Rating sharedtypes.Rating   `json:"rating"`
}

// Match is either a paired match (AID/BID set) or a bye (ByeID set). Scores
// stay nil until a result is recorded; a bye never carries scores.
type Match struct {
	ID     sharedtypes.MatchID  `json:"id"`
	Round  int                  `json:"round"`
	AID    sharedtypes.PlayerID `json:"a_id,omitempty"`
	BID    sharedtypes.PlayerID `json:"b_id,omitempty"`
	ByeID  sharedtypes.PlayerID `json:"bye_id,omitempty"`
	ScoreA *int                 `json:"score_a"`
	ScoreB *int                 `json:"score_b"`
}

// IsBye reports whether the match is a bye entry.
func (m *Match) IsBye() bool { return m.ByeID != "" }

// IsDecided reports whether both scores of a paired match are recorded.
func (m *Match) IsDecided() bool {
	return !m.IsBye() && m.ScoreA != nil && m.ScoreB != nil
}

// Session is one competition day's mutable state.
type Session struct {
	ID           sharedtypes.SessionID `json:"id"`
	StartedAt    time.Time             `json:"started_at"`
	Rounds       int                   `json:"rounds"`
	Participants []Participant         `json:"participants"`
	Matches      []Match               `json:"matches"`
	CurrentRound int                   `json:"current_round"`
	Finished     bool                  `json:"finished"`
	FinishedAt   *time.Time            `json:"finished_at"`
}

// DaySnapshot is the immutable archive record produced when a session
// finishes.
type DaySnapshot struct {
	ID         sharedtypes.SnapshotID `json:"id"`
	SessionID  sharedtypes.SessionID  `json:"session_id"`
	FinishedAt time.Time              `json:"finished_at"`
	Rounds     int                    `json:"rounds"`
	Standings  []StandingsRow         `json:"standings"`
}

package sessiondomain

import (
	"errors"
	"math/rand"
	"time"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

var (
	ErrTooFewParticipants = errors.New("a session needs at least two participants")
	ErrSessionFinished    = errors.New("session is already finished")
	ErrAllRoundsDrawn     = errors.New("all rounds have been drawn")
	ErrNotFinishable      = errors.New("session is not finishable")
	ErrMatchNotFound      = errors.New("match not found")
	ErrByeResult          = errors.New("cannot record a result on a bye")
)

// NewSession starts a competition day. The participants slice is copied: it
// is the frozen ratings snapshot for the whole day.
func NewSession(id sharedtypes.SessionID, startedAt time.Time, participants []Participant) (*Session, error) {
	if len(participants) < 2 {
		return nil, ErrTooFewParticipants
	}
	snapshot := make([]Participant, len(participants))
	copy(snapshot, participants)
	return &Session{
		ID:           id,
		StartedAt:    startedAt,
		Rounds:       SessionRounds,
		Participants: snapshot,
		Matches:      []Match{},
	}, nil
}

// PlayedPairs collects the unordered pairs already drawn this session. Byes
// are never part of it: meeting the bye slot twice is not a rematch.
func (s *Session) PlayedPairs() map[PairKey]bool {
	played := make(map[PairKey]bool)
	for i := range s.Matches {
		m := &s.Matches[i]
		if m.IsBye() {
			continue
		}
		played[NewPairKey(m.AID, m.BID)] = true
	}
	return played
}

// DrawNextRound generates and appends the next round's matches and advances
// the round counter. Paired matches start with no result.
func (s *Session) DrawNextRound(rng *rand.Rand) error {
	if s.Finished {
		return ErrSessionFinished
	}
	if s.CurrentRound >= s.Rounds {
		return ErrAllRoundsDrawn
	}

	ids := make([]sharedtypes.PlayerID, len(s.Participants))
	for i, p := range s.Participants {
		ids[i] = p.ID
	}

	nextRound := s.CurrentRound + 1
	for _, pairing := range GenerateRound(ids, s.PlayedPairs(), rng) {
		match := Match{ID: sharedtypes.NewMatchID(), Round: nextRound}
		if pairing.IsBye() {
			match.ByeID = pairing.A
		} else {
			match.AID = pairing.A
			match.BID = pairing.B
		}
		s.Matches = append(s.Matches, match)
	}
	s.CurrentRound = nextRound
	return nil
}

// Match looks a match up by id.
func (s *Session) Match(id sharedtypes.MatchID) (*Match, error) {
	for i := range s.Matches {
		if s.Matches[i].ID == id {
			return &s.Matches[i], nil
		}
	}
	return nil, ErrMatchNotFound
}

// RecordResult applies a parsed result to a paired match. An unset result
// clears both scores back to nil; that is how a user un-records a match.
// Byes reject result writes.
func (s *Session) RecordResult(matchID sharedtypes.MatchID, result Result) error {
	if s.Finished {
		return ErrSessionFinished
	}
	match, err := s.Match(matchID)
	if err != nil {
		return err
	}
	if match.IsBye() {
		return ErrByeResult
	}
	if !result.Decided {
		match.ScoreA = nil
		match.ScoreB = nil
		return nil
	}
	a, b := result.A, result.B
	match.ScoreA = &a
	match.ScoreB = &b
	return nil
}

// IsFinishable reports whether the day can be closed out: all rounds drawn,
// every paired match decided, and at least one match on the books.
func (s *Session) IsFinishable() bool {
	if s.Finished || s.CurrentRound != s.Rounds || len(s.Matches) == 0 {
		return false
	}
	for i := range s.Matches {
		m := &s.Matches[i]
		if !m.IsBye() && !m.IsDecided() {
			return false
		}
	}
	return true
}

// RatingDeltas accumulates per-participant rating changes over every decided
// paired match, always computed from the frozen start-of-day ratings. Byes
// contribute nothing.
func (s *Session) RatingDeltas() map[sharedtypes.PlayerID]int {
	frozen := make(map[sharedtypes.PlayerID]sharedtypes.Rating, len(s.Participants))
	for _, p := range s.Participants {
		frozen[p.ID] = p.Rating
	}

	deltas := make(map[sharedtypes.PlayerID]int, len(s.Participants))
	for i := range s.Matches {
		m := &s.Matches[i]
		if !m.IsDecided() {
			continue
		}
		ratingA, okA := frozen[m.AID]
		ratingB, okB := frozen[m.BID]
		if !okA || !okB {
			continue
		}
		deltaA, deltaB := RatingDelta(ratingA, ratingB, *m.ScoreA > *m.ScoreB)
		deltas[m.AID] += deltaA
		deltas[m.BID] += deltaB
	}
	return deltas
}

// Finish closes the day: it freezes the final standings into a DaySnapshot,
// computes the accumulated rating deltas and marks the session finished. The
// session keeps all match data; only an explicit end discards it.
func (s *Session) Finish(snapshotID sharedtypes.SnapshotID, at time.Time) (DaySnapshot, map[sharedtypes.PlayerID]int, error) {
	if !s.IsFinishable() {
		return DaySnapshot{}, nil, ErrNotFinishable
	}

	snapshot := DaySnapshot{
		ID:         snapshotID,
		SessionID:  s.ID,
		FinishedAt: at,
		Rounds:     s.Rounds,
		Standings:  ComputeStandings(s.Participants, s.Matches),
	}
	deltas := s.RatingDeltas()

	s.Finished = true
	finishedAt := at
	s.FinishedAt = &finishedAt

	return snapshot, deltas, nil
}

// ResetToday restarts the draw: matches are dropped and the round counter
// zeroed while the participant snapshot and session id survive. The engine
// deliberately permits resetting a finished session; blocking that is a UI
// concern.
func (s *Session) ResetToday() {
	s.Matches = []Match{}
	s.CurrentRound = 0
	s.Finished = false
	s.FinishedAt = nil
}

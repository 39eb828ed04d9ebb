package sharedtypes

import "github.com/google/uuid"

// PlayerID identifies a roster player. Archived standings rows from before id
// tracking may carry an empty PlayerID.
type PlayerID string

// SessionID identifies one competition day.
type SessionID string

// SnapshotID identifies one archived day snapshot.
type SnapshotID string

// MatchID identifies a single match or bye within a session.
type MatchID string

// Rating is a player's TTR-style skill number.
type Rating int

// DefaultRating is assigned to new players and restored when a stored rating
// is missing or corrupt.
const DefaultRating Rating = 1000

func NewPlayerID() PlayerID     { return PlayerID(uuid.NewString()) }
func NewSessionID() SessionID   { return SessionID(uuid.NewString()) }
func NewSnapshotID() SnapshotID { return SnapshotID(uuid.NewString()) }
func NewMatchID() MatchID       { return MatchID(uuid.NewString()) }

func (id PlayerID) String() string   { return string(id) }
func (id SessionID) String() string  { return string(id) }
func (id SnapshotID) String() string { return string(id) }
func (id MatchID) String() string    { return string(id) }

// Normalize coerces a corrupt stored rating back to the default. The zero
// value only appears when the column was never written.
func (r Rating) Normalize() Rating {
	if r == 0 {
		return DefaultRating
	}
	return r
}

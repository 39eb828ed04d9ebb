package sessiondb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
)

func TestSessionModelRoundTrip(t *testing.T) {
	score := 3
	zero := 0
	finishedAt := time.Date(2026, 3, 14, 21, 0, 0, 0, time.UTC)
	domain := &sessiondomain.Session{
		ID:        "s-1",
		StartedAt: time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC),
		Rounds:    sessiondomain.SessionRounds,
		Participants: []sessiondomain.Participant{
			{ID: "p-alice", Name: "Alice", Rating: 1048},
			{ID: "p-bob", Name: "Bob", Rating: 952},
		},
		Matches: []sessiondomain.Match{
			{ID: "m-1", Round: 1, AID: "p-alice", BID: "p-bob", ScoreA: &score, ScoreB: &zero},
			{ID: "m-2", Round: 2, AID: "p-bob", BID: "p-alice"},
			{ID: "m-3", Round: 2, ByeID: "p-alice"},
		},
		CurrentRound: 2,
		Finished:     true,
		FinishedAt:   &finishedAt,
	}

	got := FromDomain(domain).ToDomain()
	require.Equal(t, domain, got)

	// The undecided match must still carry nil scores, not zeroes.
	assert.Nil(t, got.Matches[1].ScoreA)
	assert.Nil(t, got.Matches[1].ScoreB)
}

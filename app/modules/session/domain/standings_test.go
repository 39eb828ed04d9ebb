package sessiondomain

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func intPtr(v int) *int { return &v }

func pairedMatch(round int, a, b sharedtypes.PlayerID, scoreA, scoreB int) Match {
	return Match{
		ID:     sharedtypes.NewMatchID(),
		Round:  round,
		AID:    a,
		BID:    b,
		ScoreA: intPtr(scoreA),
		ScoreB: intPtr(scoreB),
	}
}

func byeMatch(round int, id sharedtypes.PlayerID) Match {
	return Match{ID: sharedtypes.NewMatchID(), Round: round, ByeID: id}
}

func TestComputeStandings(t *testing.T) {
	alice := Participant{ID: "p-alice", Name: "Alice", Rating: 1000}
	bob := Participant{ID: "p-bob", Name: "Bob", Rating: 1000}
	carol := Participant{ID: "p-carol", Name: "Carol", Rating: 1000}

	tests := []struct {
		name         string
		participants []Participant
		matches      []Match
		want         []StandingsRow
	}{
		{
			name:         "no matches yields zero rows sorted by name",
			participants: []Participant{bob, alice},
			matches:      nil,
			want: []StandingsRow{
				{PlayerID: "p-alice", Name: "Alice"},
				{PlayerID: "p-bob", Name: "Bob"},
			},
		},
		{
			name:         "single decided match",
			participants: []Participant{alice, bob},
			matches: []Match{
				pairedMatch(1, "p-alice", "p-bob", 3, 0),
			},
			want: []StandingsRow{
				{PlayerID: "p-alice", Name: "Alice", Points: 2, Wins: 1, SetsWon: 3, Played: 1},
				{PlayerID: "p-bob", Name: "Bob", Losses: 1, SetsLost: 3, Played: 1},
			},
		},
		{
			name:         "undecided match counts nothing",
			participants: []Participant{alice, bob},
			matches: []Match{
				{ID: "m1", Round: 1, AID: "p-alice", BID: "p-bob"},
			},
			want: []StandingsRow{
				{PlayerID: "p-alice", Name: "Alice"},
				{PlayerID: "p-bob", Name: "Bob"},
			},
		},
		{
			name:         "bye counts as a played win without sets",
			participants: []Participant{alice, bob, carol},
			matches: []Match{
				pairedMatch(1, "p-alice", "p-bob", 2, 1),
				byeMatch(1, "p-carol"),
			},
			want: []StandingsRow{
				{PlayerID: "p-alice", Name: "Alice", Points: 2, Wins: 1, SetsWon: 2, SetsLost: 1, Played: 1},
				{PlayerID: "p-carol", Name: "Carol", Points: 2, Wins: 1, Played: 1},
				{PlayerID: "p-bob", Name: "Bob", Losses: 1, SetsWon: 1, SetsLost: 2, Played: 1},
			},
		},
		{
			name:         "set diff breaks a points tie",
			participants: []Participant{alice, bob, carol},
			matches: []Match{
				// Alice beats Bob 3:0, Bob beats Carol 2:1. Alice and Bob
				// are not tied; Bob and Carol differ on points too. Add a
				// Carol win over Alice to create a three-way 2-point tie.
				pairedMatch(1, "p-alice", "p-bob", 3, 0),
				pairedMatch(2, "p-bob", "p-carol", 2, 1),
				pairedMatch(3, "p-carol", "p-alice", 2, 1),
			},
			want: []StandingsRow{
				// All on 2 points; set diff decides: Alice +2, Carol 0,
				// Bob -2.
				{PlayerID: "p-alice", Name: "Alice", Points: 2, Wins: 1, Losses: 1, SetsWon: 4, SetsLost: 2, Played: 2},
				{PlayerID: "p-carol", Name: "Carol", Points: 2, Wins: 1, Losses: 1, SetsWon: 3, SetsLost: 3, Played: 2},
				{PlayerID: "p-bob", Name: "Bob", Points: 2, Wins: 1, Losses: 1, SetsWon: 2, SetsLost: 4, Played: 2},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStandings(tt.participants, tt.matches)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("standings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComputeStandingsSetsWonBreaksDiffTie(t *testing.T) {
	participants := []Participant{
		{ID: "p-a", Name: "Anna"},
		{ID: "p-b", Name: "Bert"},
		{ID: "p-c", Name: "Cleo"},
		{ID: "p-d", Name: "Dora"},
	}
	// A win plus the mirror loss always sums to 3 sets won, so unequal
	// sets-won at equal diff needs byes: a bye is 2 points with no sets.
	matches := []Match{
		byeMatch(1, "p-a"),
		pairedMatch(1, "p-b", "p-c", 3, 0),
		pairedMatch(2, "p-c", "p-b", 3, 0),
		byeMatch(2, "p-d"),
	}
	got := ComputeStandings(participants, matches)

	// Everyone has 2 points and diff 0. Sets won: Bert 3, Cleo 3, Anna 0,
	// Dora 0. Within each group the name decides.
	wantOrder := []string{"Bert", "Cleo", "Anna", "Dora"}
	for i, name := range wantOrder {
		if got[i].Name != name {
			t.Fatalf("position %d: got %s, want %s (full: %+v)", i, got[i].Name, name, got)
		}
	}
}

func TestComputeStandingsPointsConservation(t *testing.T) {
	participants := []Participant{
		{ID: "p-a", Name: "Anna"},
		{ID: "p-b", Name: "Bert"},
		{ID: "p-c", Name: "Cleo"},
		{ID: "p-d", Name: "Dora"},
		{ID: "p-e", Name: "Elin"},
	}
	matches := []Match{
		pairedMatch(1, "p-a", "p-b", 3, 0),
		pairedMatch(1, "p-c", "p-d", 1, 2),
		byeMatch(1, "p-e"),
		pairedMatch(2, "p-a", "p-c", 2, 1),
		byeMatch(2, "p-b"),
		{ID: "m-open", Round: 2, AID: "p-d", BID: "p-e"}, // undecided
	}

	decided, byes := 0, 0
	for i := range matches {
		if matches[i].IsBye() {
			byes++
		} else if matches[i].IsDecided() {
			decided++
		}
	}

	total := 0
	for _, row := range ComputeStandings(participants, matches) {
		total += row.Points
	}
	want := WinPoints*decided + ByePoints*byes
	if total != want {
		t.Errorf("total points = %d, want %d (%d decided, %d byes)", total, want, decided, byes)
	}
}

package archivedomain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func snapshotAt(day int, rows ...sessiondomain.StandingsRow) sessiondomain.DaySnapshot {
	return sessiondomain.DaySnapshot{
		ID:         sharedtypes.NewSnapshotID(),
		SessionID:  sharedtypes.NewSessionID(),
		FinishedAt: time.Date(2026, 2, day, 21, 0, 0, 0, time.UTC),
		Rounds:     sessiondomain.SessionRounds,
		Standings:  rows,
	}
}

func TestAggregateSeasonSumsAcrossDays(t *testing.T) {
	snapshots := []sessiondomain.DaySnapshot{
		snapshotAt(3,
			sessiondomain.StandingsRow{PlayerID: "p-alice", Name: "Alice", Points: 12, Wins: 6, SetsWon: 18, Played: 6},
			sessiondomain.StandingsRow{PlayerID: "p-bob", Name: "Bob", Losses: 6, SetsLost: 18, Played: 6},
		),
		snapshotAt(10,
			sessiondomain.StandingsRow{PlayerID: "p-bob", Name: "Bob", Points: 8, Wins: 4, Losses: 2, SetsWon: 14, SetsLost: 8, Played: 6},
			sessiondomain.StandingsRow{PlayerID: "p-alice", Name: "Alice", Points: 4, Wins: 2, Losses: 4, SetsWon: 8, SetsLost: 14, Played: 6},
		),
	}

	got := AggregateSeason(snapshots)
	want := []SeasonRow{
		{PlayerID: "p-alice", Name: "Alice", Points: 16, Wins: 8, Losses: 4, SetsWon: 26, SetsLost: 14, Played: 12, DaysPlayed: 2},
		{PlayerID: "p-bob", Name: "Bob", Points: 8, Wins: 4, Losses: 8, SetsWon: 14, SetsLost: 26, Played: 12, DaysPlayed: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("season mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregateSeasonNameFallbackKey(t *testing.T) {
	// Rows without a player id merge on the lower-cased name, so legacy
	// snapshots that spelled the name with different casing still collapse
	// into one line.
	snapshots := []sessiondomain.DaySnapshot{
		snapshotAt(3, sessiondomain.StandingsRow{Name: "ALICE", Points: 6, Wins: 3, Played: 3}),
		snapshotAt(10, sessiondomain.StandingsRow{Name: "alice", Points: 4, Wins: 2, Played: 3}),
	}

	got := AggregateSeason(snapshots)
	if len(got) != 1 {
		t.Fatalf("rows = %d, want 1 (got %+v)", len(got), got)
	}
	row := got[0]
	if row.Points != 10 || row.Wins != 5 || row.DaysPlayed != 2 {
		t.Errorf("merged row wrong: %+v", row)
	}
	// The later snapshot's spelling sticks.
	if row.Name != "alice" {
		t.Errorf("name = %q, want the most recent spelling %q", row.Name, "alice")
	}
}

func TestAggregateSeasonIDTrumpsName(t *testing.T) {
	// Two distinct ids sharing a name stay two rows.
	snapshots := []sessiondomain.DaySnapshot{
		snapshotAt(3,
			sessiondomain.StandingsRow{PlayerID: "p-1", Name: "Alex", Points: 2, Wins: 1, Played: 1},
			sessiondomain.StandingsRow{PlayerID: "p-2", Name: "Alex", Losses: 1, Played: 1},
		),
	}
	if got := AggregateSeason(snapshots); len(got) != 2 {
		t.Errorf("rows = %d, want 2 (got %+v)", len(got), got)
	}
}

func TestAggregateSeasonWinsBreakDiffTie(t *testing.T) {
	// Equal points and equal set diff; the season table ranks by wins next,
	// unlike the per-day table which uses sets won. Rows like these only
	// come out of legacy snapshots with other point awards, which is
	// exactly where this key matters.
	snapshots := []sessiondomain.DaySnapshot{
		snapshotAt(3,
			sessiondomain.StandingsRow{PlayerID: "p-anna", Name: "Anna", Points: 6, Wins: 3, SetsWon: 6, SetsLost: 6, Played: 4},
			sessiondomain.StandingsRow{PlayerID: "p-bert", Name: "Bert", Points: 6, Wins: 2, SetsWon: 9, SetsLost: 9, Played: 4},
		),
	}

	got := AggregateSeason(snapshots)
	if got[0].Name != "Anna" || got[1].Name != "Bert" {
		t.Errorf("order = [%s, %s], want [Anna, Bert]", got[0].Name, got[1].Name)
	}
}

func TestAggregateSeasonEmpty(t *testing.T) {
	if got := AggregateSeason(nil); len(got) != 0 {
		t.Errorf("AggregateSeason(nil) = %+v, want empty", got)
	}
}

package sessiondomain

import (
	"sort"

	"github.com/ttv-club/matchday/app/shared/collation"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// Point awards. A bye is worth the same as a won match but moves no sets.
const (
	WinPoints = 2
	ByePoints = 2
)

// StandingsRow is one participant's aggregated line for a single day.
type StandingsRow struct {
	PlayerID sharedtypes.PlayerID `json:"player_id"`
	Name     string               `json:"name"`
	Points   int                  `json:"points"`
	Wins     int                  `json:"wins"`
	Losses   int                  `json:"losses"`
	SetsWon  int                  `json:"sets_won"`
	SetsLost int                  `json:"sets_lost"`
	Played   int                  `json:"played"`
}

// SetDiff is the set differential used as the second sort key.
func (r StandingsRow) SetDiff() int { return r.SetsWon - r.SetsLost }

// ComputeStandings folds the recorded matches into a ranked table. Byes
// credit a played round, a win and the bye award without touching set counts.
// Paired matches count only once both scores are present; the higher score
// wins (scores sum to 3, so a tie cannot happen). Sort order: points desc,
// set diff desc, sets won desc, then name asc via the shared collator. Names
// are unique, so the order is a strict total order.
func ComputeStandings(participants []Participant, matches []Match) []StandingsRow {
	index := make(map[sharedtypes.PlayerID]*StandingsRow, len(participants))
	rows := make([]*StandingsRow, 0, len(participants))
	for _, p := range participants {
		row := &StandingsRow{PlayerID: p.ID, Name: p.Name}
		index[p.ID] = row
		rows = append(rows, row)
	}

	for i := range matches {
		m := &matches[i]
		if m.IsBye() {
			if row := index[m.ByeID]; row != nil {
				row.Played++
				row.Wins++
				row.Points += ByePoints
			}
			continue
		}
		if !m.IsDecided() {
			continue
		}
		rowA, rowB := index[m.AID], index[m.BID]
		if rowA == nil || rowB == nil {
			continue
		}
		scoreA, scoreB := *m.ScoreA, *m.ScoreB

		rowA.Played++
		rowB.Played++
		rowA.SetsWon += scoreA
		rowA.SetsLost += scoreB
		rowB.SetsWon += scoreB
		rowB.SetsLost += scoreA

		if scoreA > scoreB {
			rowA.Wins++
			rowA.Points += WinPoints
			rowB.Losses++
		} else {
			rowB.Wins++
			rowB.Points += WinPoints
			rowA.Losses++
		}
	}

	table := make([]StandingsRow, len(rows))
	for i, row := range rows {
		table[i] = *row
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.SetDiff() != b.SetDiff() {
			return a.SetDiff() > b.SetDiff()
		}
		if a.SetsWon != b.SetsWon {
			return a.SetsWon > b.SetsWon
		}
		return collation.Less(a.Name, b.Name)
	})
	return table
}

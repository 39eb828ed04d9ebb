// Package archivedomain derives season-wide standings from the archive of
// finished-day snapshots.
package archivedomain

import (
	"sort"
	"strings"

	sessiondomain "github.com/ttv-club/matchday/app/modules/session/domain"
	"github.com/ttv-club/matchday/app/shared/collation"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// SeasonRow is one participant's cumulative line across all archived days.
type SeasonRow struct {
	PlayerID   sharedtypes.PlayerID `json:"player_id,omitempty"`
	Name       string               `json:"name"`
	Points     int                  `json:"points"`
	Wins       int                  `json:"wins"`
	Losses     int                  `json:"losses"`
	SetsWon    int                  `json:"sets_won"`
	SetsLost   int                  `json:"sets_lost"`
	Played     int                  `json:"played"`
	DaysPlayed int                  `json:"days_played"`
}

// SetDiff is the set differential used as the second sort key.
func (r SeasonRow) SetDiff() int { return r.SetsWon - r.SetsLost }

// AggregateSeason folds the archive into cumulative season standings. Rows
// are keyed by player id, falling back to the lower-cased name for snapshots
// that predate id tracking; that fallback can collide two players who once
// shared a name, and is kept as documented behavior. DaysPlayed counts once
// per snapshot containing the key. Sort order: points desc, set diff desc,
// wins desc, name asc. Note the third key is wins here, not sets won as in
// the per-day table.
func AggregateSeason(snapshots []sessiondomain.DaySnapshot) []SeasonRow {
	index := make(map[string]*SeasonRow)
	order := make([]string, 0)

	for _, snapshot := range snapshots {
		for _, day := range snapshot.Standings {
			key := day.PlayerID.String()
			if key == "" {
				key = strings.ToLower(day.Name)
			}
			row := index[key]
			if row == nil {
				row = &SeasonRow{PlayerID: day.PlayerID}
				index[key] = row
				order = append(order, key)
			}
			// The most recently archived spelling of the name wins.
			row.Name = day.Name
			row.Points += day.Points
			row.Wins += day.Wins
			row.Losses += day.Losses
			row.SetsWon += day.SetsWon
			row.SetsLost += day.SetsLost
			row.Played += day.Played
			row.DaysPlayed++
		}
	}

	table := make([]SeasonRow, 0, len(order))
	for _, key := range order {
		table = append(table, *index[key])
	}
	sort.Slice(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.SetDiff() != b.SetDiff() {
			return a.SetDiff() > b.SetDiff()
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return collation.Less(a.Name, b.Name)
	})
	return table
}

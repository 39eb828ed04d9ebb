package rosterdb

import (
	"context"

	"github.com/uptrace/bun"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// Repository is the roster data access surface. The db argument lets service
// transactions thread a bun.Tx through; nil falls back to the pooled
// connection.
type Repository interface {
	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) (*Player, error)
	ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error)
	UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	SetAllActive(ctx context.Context, db bun.IDB, active bool) error
	DeletePlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) error
	ApplyRatingDeltas(ctx context.Context, db bun.IDB, deltas map[sharedtypes.PlayerID]int) error
}

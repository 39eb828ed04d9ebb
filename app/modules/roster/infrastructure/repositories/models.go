package rosterdb

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// Player is the roster entity. Name uniqueness (case-insensitive) is enforced
// at creation time by the service; the lower(name) index backs it up.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID        sharedtypes.PlayerID `bun:"id,pk"`
	Name      string               `bun:"name,notnull"`
	Rating    sharedtypes.Rating   `bun:"rating,notnull,default:1000"`
	Active    bool                 `bun:"active,notnull,default:true"`
	CreatedAt time.Time            `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

var _ bun.BeforeInsertHook = (*Player)(nil)

func (p *Player) BeforeInsert(ctx context.Context, _ *bun.InsertQuery) error {
	if p.ID == "" {
		p.ID = sharedtypes.NewPlayerID()
	}
	return nil
}

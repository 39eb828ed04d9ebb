package rosterdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// PlayerDBImpl is the bun-backed roster repository.
type PlayerDBImpl struct {
	DB *bun.DB
}

func (r *PlayerDBImpl) conn(db bun.IDB) bun.IDB {
	if db != nil {
		return db
	}
	return r.DB
}

// CreatePlayer inserts a new player.
func (r *PlayerDBImpl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if _, err := r.conn(db).NewInsert().Model(player).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	return nil
}

// GetPlayer retrieves a player by id.
func (r *PlayerDBImpl) GetPlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) (*Player, error) {
	player := &Player{}
	err := r.conn(db).NewSelect().Model(player).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	player.Rating = player.Rating.Normalize()
	return player, nil
}

// ListPlayers returns the whole roster. Final locale-aware ordering happens
// in the service; the query order just keeps results stable.
func (r *PlayerDBImpl) ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error) {
	var players []Player
	err := r.conn(db).NewSelect().Model(&players).Order("name ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	for i := range players {
		players[i].Rating = players[i].Rating.Normalize()
	}
	return players, nil
}

// UpdatePlayer persists name/rating/active changes.
func (r *PlayerDBImpl) UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	result, err := r.conn(db).NewUpdate().
		Model(player).
		Column("name", "rating", "active").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// SetAllActive flips the present-today flag for the whole roster.
func (r *PlayerDBImpl) SetAllActive(ctx context.Context, db bun.IDB, active bool) error {
	_, err := r.conn(db).NewUpdate().
		Model((*Player)(nil)).
		Set("active = ?", active).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set all active: %w", err)
	}
	return nil
}

// DeletePlayer removes a player from the roster.
func (r *PlayerDBImpl) DeletePlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) error {
	result, err := r.conn(db).NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete player: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

// ApplyRatingDeltas adds each accumulated day delta to the player's current
// rating. Missing players are skipped: a participant removed mid-day simply
// loses the adjustment.
func (r *PlayerDBImpl) ApplyRatingDeltas(ctx context.Context, db bun.IDB, deltas map[sharedtypes.PlayerID]int) error {
	for id, delta := range deltas {
		if delta == 0 {
			continue
		}
		_, err := r.conn(db).NewUpdate().
			Model((*Player)(nil)).
			Set("rating = rating + ?", delta).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to apply rating delta for player %s: %w", id, err)
		}
	}
	return nil
}

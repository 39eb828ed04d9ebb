package rosterdb

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// FakeRepository is a hand-rolled fake for service tests. Each method can be
// overridden via its Func field; unset methods fall back to an in-memory map.
type FakeRepository struct {
	mu      sync.Mutex
	players map[sharedtypes.PlayerID]Player
	order   []sharedtypes.PlayerID
	trace   []string

	CreatePlayerFunc      func(ctx context.Context, db bun.IDB, player *Player) error
	GetPlayerFunc         func(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) (*Player, error)
	ListPlayersFunc       func(ctx context.Context, db bun.IDB) ([]Player, error)
	UpdatePlayerFunc      func(ctx context.Context, db bun.IDB, player *Player) error
	SetAllActiveFunc      func(ctx context.Context, db bun.IDB, active bool) error
	DeletePlayerFunc      func(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) error
	ApplyRatingDeltasFunc func(ctx context.Context, db bun.IDB, deltas map[sharedtypes.PlayerID]int) error
}

// NewFakeRepository builds an empty fake.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{players: make(map[sharedtypes.PlayerID]Player)}
}

// Trace returns the method names invoked so far.
func (f *FakeRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeRepository) record(name string) {
	f.mu.Lock()
	f.trace = append(f.trace, name)
	f.mu.Unlock()
}

func (f *FakeRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	f.record("CreatePlayer")
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, player)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if player.ID == "" {
		player.ID = sharedtypes.NewPlayerID()
	}
	f.players[player.ID] = *player
	f.order = append(f.order, player.ID)
	return nil
}

func (f *FakeRepository) GetPlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) (*Player, error) {
	f.record("GetPlayer")
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	player, ok := f.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	return &player, nil
}

func (f *FakeRepository) ListPlayers(ctx context.Context, db bun.IDB) ([]Player, error) {
	f.record("ListPlayers")
	if f.ListPlayersFunc != nil {
		return f.ListPlayersFunc(ctx, db)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	players := make([]Player, 0, len(f.order))
	for _, id := range f.order {
		if player, ok := f.players[id]; ok {
			players = append(players, player)
		}
	}
	return players, nil
}

func (f *FakeRepository) UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	f.record("UpdatePlayer")
	if f.UpdatePlayerFunc != nil {
		return f.UpdatePlayerFunc(ctx, db, player)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[player.ID]; !ok {
		return ErrPlayerNotFound
	}
	f.players[player.ID] = *player
	return nil
}

func (f *FakeRepository) SetAllActive(ctx context.Context, db bun.IDB, active bool) error {
	f.record("SetAllActive")
	if f.SetAllActiveFunc != nil {
		return f.SetAllActiveFunc(ctx, db, active)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, player := range f.players {
		player.Active = active
		f.players[id] = player
	}
	return nil
}

func (f *FakeRepository) DeletePlayer(ctx context.Context, db bun.IDB, id sharedtypes.PlayerID) error {
	f.record("DeletePlayer")
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, db, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.players[id]; !ok {
		return ErrPlayerNotFound
	}
	delete(f.players, id)
	return nil
}

func (f *FakeRepository) ApplyRatingDeltas(ctx context.Context, db bun.IDB, deltas map[sharedtypes.PlayerID]int) error {
	f.record("ApplyRatingDeltas")
	if f.ApplyRatingDeltasFunc != nil {
		return f.ApplyRatingDeltasFunc(ctx, db, deltas)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, delta := range deltas {
		if player, ok := f.players[id]; ok {
			player.Rating += sharedtypes.Rating(delta)
			f.players[id] = player
		}
	}
	return nil
}

package rosterservice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/uptrace/bun"

	"github.com/ttv-club/matchday/app/events"
	rosterdb "github.com/ttv-club/matchday/app/modules/roster/infrastructure/repositories"
	"github.com/ttv-club/matchday/app/shared/attr"
	"github.com/ttv-club/matchday/app/shared/collation"
	"github.com/ttv-club/matchday/app/shared/results"
	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func failure(operation, reason string) RosterOperationResult {
	return results.Fail[rosterdb.Player](events.RosterOperationFailedPayloadV1{
		Operation: operation,
		Reason:    reason,
	})
}

// AddPlayer creates a roster entry with the default rating. Empty and
// duplicate names (case-insensitive, locale-aware) are rejected as validation
// failures, never as errors.
func (s *RosterService) AddPlayer(ctx context.Context, name string) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "AddPlayer", func(ctx context.Context) (RosterOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			name := strings.TrimSpace(name)
			if name == "" {
				return failure("AddPlayer", "name must not be empty"), nil
			}

			players, err := s.repo.ListPlayers(ctx, db)
			if err != nil {
				return RosterOperationResult{}, err
			}
			for _, existing := range players {
				if collation.Equal(existing.Name, name) {
					return failure("AddPlayer", fmt.Sprintf("a player named %q already exists", existing.Name)), nil
				}
			}

			player := &rosterdb.Player{
				Name:   name,
				Rating: sharedtypes.DefaultRating,
				Active: true,
			}
			if err := s.repo.CreatePlayer(ctx, db, player); err != nil {
				return RosterOperationResult{}, err
			}

			if err := s.eventBus.Publish(ctx, events.TopicPlayerAdded, events.PlayerAddedPayloadV1{
				PlayerID: player.ID,
				Name:     player.Name,
				Rating:   player.Rating,
			}); err != nil {
				s.logger.WarnContext(ctx, "Failed to publish player added event", attr.Error(err))
			}

			s.recordRosterSize(ctx, db)
			return results.Ok[rosterdb.Player, events.RosterOperationFailedPayloadV1](*player), nil
		})
	})
}

// RenamePlayer changes a player's name, keeping uniqueness intact.
func (s *RosterService) RenamePlayer(ctx context.Context, id sharedtypes.PlayerID, name string) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "RenamePlayer", func(ctx context.Context) (RosterOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			name := strings.TrimSpace(name)
			if name == "" {
				return failure("RenamePlayer", "name must not be empty"), nil
			}

			players, err := s.repo.ListPlayers(ctx, db)
			if err != nil {
				return RosterOperationResult{}, err
			}
			for _, existing := range players {
				if existing.ID != id && collation.Equal(existing.Name, name) {
					return failure("RenamePlayer", fmt.Sprintf("a player named %q already exists", existing.Name)), nil
				}
			}

			player, err := s.repo.GetPlayer(ctx, db, id)
			if err != nil {
				if err == rosterdb.ErrPlayerNotFound {
					return failure("RenamePlayer", "player not found"), nil
				}
				return RosterOperationResult{}, err
			}
			player.Name = name
			if err := s.repo.UpdatePlayer(ctx, db, player); err != nil {
				return RosterOperationResult{}, err
			}
			return results.Ok[rosterdb.Player, events.RosterOperationFailedPayloadV1](*player), nil
		})
	})
}

// ToggleActive flips the present-today flag on one player.
func (s *RosterService) ToggleActive(ctx context.Context, id sharedtypes.PlayerID) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "ToggleActive", func(ctx context.Context) (RosterOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			player, err := s.repo.GetPlayer(ctx, db, id)
			if err != nil {
				if err == rosterdb.ErrPlayerNotFound {
					return failure("ToggleActive", "player not found"), nil
				}
				return RosterOperationResult{}, err
			}
			player.Active = !player.Active
			if err := s.repo.UpdatePlayer(ctx, db, player); err != nil {
				return RosterOperationResult{}, err
			}
			s.recordRosterSize(ctx, db)
			return results.Ok[rosterdb.Player, events.RosterOperationFailedPayloadV1](*player), nil
		})
	})
}

// SetAllActive marks the whole roster present or absent.
func (s *RosterService) SetAllActive(ctx context.Context, active bool) error {
	result, err := withTelemetry(s, ctx, "SetAllActive", func(ctx context.Context) (RosterOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			if err := s.repo.SetAllActive(ctx, db, active); err != nil {
				return RosterOperationResult{}, err
			}
			s.recordRosterSize(ctx, db)
			return results.Ok[rosterdb.Player, events.RosterOperationFailedPayloadV1](rosterdb.Player{}), nil
		})
	})
	_ = result
	return err
}

// RemovePlayer deletes a roster entry.
func (s *RosterService) RemovePlayer(ctx context.Context, id sharedtypes.PlayerID) (RosterOperationResult, error) {
	return withTelemetry(s, ctx, "RemovePlayer", func(ctx context.Context) (RosterOperationResult, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (RosterOperationResult, error) {
			player, err := s.repo.GetPlayer(ctx, db, id)
			if err != nil {
				if err == rosterdb.ErrPlayerNotFound {
					return failure("RemovePlayer", "player not found"), nil
				}
				return RosterOperationResult{}, err
			}
			if err := s.repo.DeletePlayer(ctx, db, id); err != nil {
				return RosterOperationResult{}, err
			}

			if err := s.eventBus.Publish(ctx, events.TopicPlayerRemoved, events.PlayerRemovedPayloadV1{
				PlayerID: id,
			}); err != nil {
				s.logger.WarnContext(ctx, "Failed to publish player removed event", attr.Error(err))
			}

			s.recordRosterSize(ctx, db)
			return results.Ok[rosterdb.Player, events.RosterOperationFailedPayloadV1](*player), nil
		})
	})
}

// ListPlayers returns the roster ordered by name with the shared collator.
func (s *RosterService) ListPlayers(ctx context.Context) ([]rosterdb.Player, error) {
	players, err := s.repo.ListPlayers(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("ListPlayers: %w", err)
	}
	sort.Slice(players, func(i, j int) bool {
		return collation.Less(players[i].Name, players[j].Name)
	})
	return players, nil
}

// ActivePlayers returns the players marked present today.
func (s *RosterService) ActivePlayers(ctx context.Context) ([]rosterdb.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	active := players[:0:0]
	for _, player := range players {
		if player.Active {
			active = append(active, player)
		}
	}
	return active, nil
}

// SearchPlayers fuzzy-matches the query against player names, best match
// first.
func (s *RosterService) SearchPlayers(ctx context.Context, query string) ([]rosterdb.Player, error) {
	players, err := s.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return players, nil
	}

	names := make([]string, len(players))
	for i, player := range players {
		names[i] = player.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	byName := make(map[string]rosterdb.Player, len(players))
	for _, player := range players {
		byName[player.Name] = player
	}
	matched := make([]rosterdb.Player, 0, len(ranks))
	for _, rank := range ranks {
		matched = append(matched, byName[rank.Target])
	}
	return matched, nil
}

func (s *RosterService) recordRosterSize(ctx context.Context, db bun.IDB) {
	players, err := s.repo.ListPlayers(ctx, db)
	if err != nil {
		return
	}
	active := 0
	for _, player := range players {
		if player.Active {
			active++
		}
	}
	s.metrics.RecordRosterSize(ctx, len(players), active)
}

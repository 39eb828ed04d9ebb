package sessiondomain

import (
	"math"
	"math/rand"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// pairingAttempts bounds the shuffle loop. For small rosters late in the day
// a zero-rematch draw may simply not exist; the best attempt found wins.
const pairingAttempts = 200

// Pairing is one slot of a round draw: two distinct players, or one player
// with no opponent (bye) when B is empty.
type Pairing struct {
	A sharedtypes.PlayerID
	B sharedtypes.PlayerID
}

// IsBye reports whether the pairing is a bye slot.
func (p Pairing) IsBye() bool { return p.B == "" }

// PairKey is an unordered player pair, used to track which match-ups have
// already happened this session.
type PairKey struct {
	Lo sharedtypes.PlayerID
	Hi sharedtypes.PlayerID
}

// NewPairKey normalizes the pair order so (a,b) and (b,a) collide.
func NewPairKey(a, b sharedtypes.PlayerID) PairKey {
	if b < a {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// GenerateRound draws one round of pairings for the given players,
// minimizing rematches against the played set. It shuffles uniformly at
// random up to pairingAttempts times, partitions each shuffle into
// consecutive pairs, counts how many duplicate an already-played pair (byes
// never count), and keeps the configuration with the fewest duplicates,
// stopping early on a zero-duplicate draw. An odd player count gets exactly
// one bye slot. The generator does not bias against repeat byes; that is a
// known limitation of the heuristic.
func GenerateRound(ids []sharedtypes.PlayerID, played map[PairKey]bool, rng *rand.Rand) []Pairing {
	if len(ids) == 0 {
		return nil
	}

	slots := make([]sharedtypes.PlayerID, len(ids))
	copy(slots, ids)
	if len(slots)%2 == 1 {
		slots = append(slots, "")
	}

	var best []Pairing
	bestRepeats := math.MaxInt

	for attempt := 0; attempt < pairingAttempts && bestRepeats > 0; attempt++ {
		rng.Shuffle(len(slots), func(i, j int) {
			slots[i], slots[j] = slots[j], slots[i]
		})

		pairs := make([]Pairing, 0, len(slots)/2)
		repeats := 0
		for i := 0; i < len(slots); i += 2 {
			a, b := slots[i], slots[i+1]
			if a == "" {
				a, b = b, a
			}
			pairs = append(pairs, Pairing{A: a, B: b})
			if b != "" && played[NewPairKey(a, b)] {
				repeats++
			}
		}

		if repeats < bestRepeats {
			bestRepeats = repeats
			best = pairs
		}
	}

	return best
}

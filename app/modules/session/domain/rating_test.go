package sessiondomain

import (
	"testing"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

func TestRatingDelta(t *testing.T) {
	tests := []struct {
		name       string
		ratingA    sharedtypes.Rating
		ratingB    sharedtypes.Rating
		aWon       bool
		wantDeltaA int
	}{
		{
			name:    "equal ratings, A wins",
			ratingA: 1000, ratingB: 1000, aWon: true,
			wantDeltaA: 8,
		},
		{
			name:    "equal ratings, A loses",
			ratingA: 1000, ratingB: 1000, aWon: false,
			wantDeltaA: -8,
		},
		{
			name:    "underdog win pays well",
			ratingA: 1000, ratingB: 1150, aWon: true,
			wantDeltaA: 15,
		},
		{
			name:    "favorite loss costs the same magnitude",
			ratingA: 1150, ratingB: 1000, aWon: false,
			wantDeltaA: -15,
		},
		{
			name:    "favorite win pays little",
			ratingA: 1150, ratingB: 1000, aWon: true,
			wantDeltaA: 1,
		},
		{
			name:    "huge favorite win rounds to zero",
			ratingA: 2000, ratingB: 1000, aWon: true,
			wantDeltaA: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deltaA, deltaB := RatingDelta(tt.ratingA, tt.ratingB, tt.aWon)
			if deltaA != tt.wantDeltaA {
				t.Errorf("deltaA = %d, want %d", deltaA, tt.wantDeltaA)
			}
			if deltaA+deltaB != 0 {
				t.Errorf("deltas are not zero-sum: %d + %d", deltaA, deltaB)
			}
		})
	}
}

func TestRatingDeltaZeroSumAcrossRange(t *testing.T) {
	for _, ratingA := range []sharedtypes.Rating{600, 900, 1000, 1234, 1800} {
		for _, ratingB := range []sharedtypes.Rating{600, 900, 1000, 1234, 1800} {
			for _, aWon := range []bool{true, false} {
				deltaA, deltaB := RatingDelta(ratingA, ratingB, aWon)
				if deltaA+deltaB != 0 {
					t.Fatalf("RatingDelta(%d, %d, %v) not zero-sum: %d, %d",
						ratingA, ratingB, aWon, deltaA, deltaB)
				}
			}
		}
	}
}

func TestRatingDeltaSymmetry(t *testing.T) {
	// A winning from A's perspective must mirror B losing from B's.
	deltaA, deltaB := RatingDelta(1100, 950, true)
	mirrorB, mirrorA := RatingDelta(950, 1100, false)
	if deltaA != mirrorA || deltaB != mirrorB {
		t.Errorf("perspectives disagree: (%d,%d) vs (%d,%d)", deltaA, deltaB, mirrorA, mirrorB)
	}
}

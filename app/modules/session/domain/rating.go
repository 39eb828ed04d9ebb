package sessiondomain

import (
	"math"

	sharedtypes "github.com/ttv-club/matchday/app/shared/types"
)

// TTR-style update: a narrow scale and a small K keep single-day swings
// modest for club play.
const (
	ratingScale = 150
	ratingK     = 16
)

// RatingDelta computes the symmetric rating change for one decided paired
// match. deltaB is always -deltaA. Rounding is half away from zero
// (math.Round). Byes never produce a delta.
func RatingDelta(a, b sharedtypes.Rating, aWon bool) (deltaA, deltaB int) {
	expected := 1 / (1 + math.Pow(10, float64(b-a)/ratingScale))
	outcome := 0.0
	if aWon {
		outcome = 1
	}
	deltaA = int(math.Round((outcome - expected) * ratingK))
	return deltaA, -deltaA
}

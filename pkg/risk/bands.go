package risk

import (
	"math"

	"github.com/gridiron-analytics/projection-engine/types"
)

// band holds a position's (low, medium, high) boundaries for mapping a
// raw measurement onto the [0,1] risk scale
type band struct {
	low    float64
	medium float64
	high   float64
}

// Score anchors at each boundary. A measurement at the low boundary
// scores 0.30, medium 0.55, high 0.80; in between the score is linearly
// interpolated. Below the low boundary it interpolates down to the
// factor's base value; past the high boundary it climbs toward 1.0.
const (
	lowBoundaryScore    = 0.30
	mediumBoundaryScore = 0.55
	highBoundaryScore   = 0.80
)

// score maps a non-negative measurement through the band. base is the
// factor's value at a measurement of zero.
func (b band) score(x, base float64) float64 {
	switch {
	case x <= 0:
		return base
	case x <= b.low:
		return lerp(base, lowBoundaryScore, x/b.low)
	case x <= b.medium:
		return lerp(lowBoundaryScore, mediumBoundaryScore, (x-b.low)/(b.medium-b.low))
	case x <= b.high:
		return lerp(mediumBoundaryScore, highBoundaryScore, (x-b.medium)/(b.high-b.medium))
	default:
		return math.Min(1.0, highBoundaryScore+(1-highBoundaryScore)*(x-b.high)/b.high)
	}
}

// stdDevBands are per-game fantasy point standard deviation boundaries.
// Quarterbacks score steadily; kickers swing on a handful of attempts,
// so their bands sit much lower.
var stdDevBands = map[types.Position]band{
	types.PositionQB:  {4.2, 7.8, 12.5},
	types.PositionRB:  {5.0, 9.2, 14.8},
	types.PositionWR:  {5.2, 8.6, 14.3},
	types.PositionTE:  {4.6, 8.0, 13.0},
	types.PositionK:   {3.2, 5.5, 8.5},
	types.PositionDEF: {4.0, 7.0, 11.0},
}

// diffBands are tolerances for the relative season-over-season change
// in per-game average. Quarterbacks are the most tolerant of swings;
// running back production changes are the most predictive of trouble.
var diffBands = map[types.Position]band{
	types.PositionQB:  {0.15, 0.30, 0.50},
	types.PositionRB:  {0.08, 0.18, 0.32},
	types.PositionWR:  {0.12, 0.25, 0.42},
	types.PositionTE:  {0.10, 0.22, 0.38},
	types.PositionK:   {0.18, 0.35, 0.55},
	types.PositionDEF: {0.15, 0.30, 0.50},
}

// declineOnsetAges mark when age-driven decline becomes the base case
// rather than the exception. DEF is a unit, not a player, and never
// ages out.
var declineOnsetAges = map[types.Position]int{
	types.PositionQB: 35,
	types.PositionRB: 27,
	types.PositionWR: 30,
	types.PositionTE: 30,
	types.PositionK:  40,
}

func lerp(from, to, t float64) float64 {
	return from + (to-from)*t
}

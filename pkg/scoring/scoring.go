// Package scoring maps one game's raw stat line to a fantasy-point
// value under the standard scoring conventions.
package scoring

import (
	"math"

	"github.com/gridiron-analytics/projection-engine/types"
)

// System identifies a scoring convention. The three conventions differ
// only in the per-reception weight.
type System string

const (
	SystemPPR      System = "ppr"
	SystemHalfPPR  System = "half_ppr"
	SystemStandard System = "standard"
)

// ReceptionWeight returns the points awarded per catch under the system
func (s System) ReceptionWeight() float64 {
	switch s {
	case SystemHalfPPR:
		return 0.5
	case SystemStandard:
		return 0.0
	default:
		return 1.0
	}
}

// Offensive scoring weights
const (
	passingYardWeight   = 0.04
	passingTDWeight     = 4.0
	interceptionWeight  = -2.0
	rushingYardWeight   = 0.1
	rushingTDWeight     = 6.0
	receivingYardWeight = 0.1
	receivingTDWeight   = 6.0
	fumbleLostWeight    = -2.0
)

// Kicking and defensive scoring weights
const (
	fieldGoalWeight      = 3.0
	extraPointWeight     = 1.0
	sackWeight           = 1.0
	defensiveIntWeight   = 2.0
	fumbleRecoveryWeight = 2.0
	safetyWeight         = 2.0
	defensiveTDWeight    = 6.0
)

// Calculator converts game records to fantasy points
type Calculator struct{}

// NewCalculator creates a scoring calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// GamePoints scores one game under the given system. The result is
// floored at zero: a single game cannot total negative fantasy points
// in this model even when turnovers outweigh production.
func (c *Calculator) GamePoints(record types.GamePerformanceRecord, system System) float64 {
	points := record.PassingYards*passingYardWeight +
		record.PassingTDs*passingTDWeight +
		record.Interceptions*interceptionWeight +
		record.RushingYards*rushingYardWeight +
		record.RushingTDs*rushingTDWeight +
		record.Receptions*system.ReceptionWeight() +
		record.ReceivingYards*receivingYardWeight +
		record.ReceivingTDs*receivingTDWeight +
		record.FumblesLost*fumbleLostWeight

	points += record.FieldGoalsMade*fieldGoalWeight +
		record.ExtraPointsMade*extraPointWeight

	points += record.Sacks*sackWeight +
		record.DefensiveInts*defensiveIntWeight +
		record.FumbleRecoveries*fumbleRecoveryWeight +
		record.Safeties*safetyWeight +
		record.DefensiveTDs*defensiveTDWeight

	if c.isDefenseLine(record) {
		points += pointsAllowedBonus(record.PointsAllowed)
	}

	return math.Max(0, points)
}

// PPRPoints scores one game under full-PPR, the engine's reference
// convention for variance and risk math
func (c *Calculator) PPRPoints(record types.GamePerformanceRecord) float64 {
	return c.GamePoints(record, SystemPPR)
}

// SeriesPoints scores every game in a history under the given system,
// preserving order
func (c *Calculator) SeriesPoints(history []types.GamePerformanceRecord, system System) []float64 {
	points := make([]float64, len(history))
	for i, record := range history {
		points[i] = c.GamePoints(record, system)
	}
	return points
}

// isDefenseLine reports whether the record looks like a team defense
// stat line. The points-allowed bonus only applies to DEF units; an
// offensive player's record never populates defensive counters.
func (c *Calculator) isDefenseLine(record types.GamePerformanceRecord) bool {
	return record.Sacks > 0 || record.DefensiveInts > 0 || record.FumbleRecoveries > 0 ||
		record.Safeties > 0 || record.DefensiveTDs > 0 || record.PointsAllowed > 0
}

// pointsAllowedBonus awards the tiered shutout-to-blowout bonus for
// team defenses
func pointsAllowedBonus(pointsAllowed float64) float64 {
	switch {
	case pointsAllowed == 0:
		return 10.0
	case pointsAllowed <= 6:
		return 7.0
	case pointsAllowed <= 13:
		return 4.0
	case pointsAllowed <= 20:
		return 1.0
	case pointsAllowed <= 27:
		return 0.0
	case pointsAllowed <= 34:
		return -1.0
	default:
		return -4.0
	}
}

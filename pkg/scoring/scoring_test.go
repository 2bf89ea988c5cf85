package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gridiron-analytics/projection-engine/types"
)

func TestGamePoints_QuarterbackLine(t *testing.T) {
	calc := NewCalculator()

	// 300 pass yds (12), 2 pass TD (8), 1 INT (-2), 20 rush yds (2)
	record := types.GamePerformanceRecord{
		PassingYards:  300,
		PassingTDs:    2,
		Interceptions: 1,
		RushingYards:  20,
	}

	assert.InDelta(t, 20.0, calc.GamePoints(record, SystemPPR), 1e-9)
}

func TestGamePoints_ReceptionWeightPerSystem(t *testing.T) {
	calc := NewCalculator()

	// 6 catches, 90 yds, 1 TD
	record := types.GamePerformanceRecord{
		Receptions:     6,
		ReceivingYards: 90,
		ReceivingTDs:   1,
	}

	assert.InDelta(t, 21.0, calc.GamePoints(record, SystemPPR), 1e-9)
	assert.InDelta(t, 18.0, calc.GamePoints(record, SystemHalfPPR), 1e-9)
	assert.InDelta(t, 15.0, calc.GamePoints(record, SystemStandard), 1e-9)
}

func TestGamePoints_NeverNegative(t *testing.T) {
	calc := NewCalculator()

	// 3 INT and a lost fumble with no production: raw arithmetic is -8
	record := types.GamePerformanceRecord{
		Interceptions: 3,
		FumblesLost:   1,
	}

	assert.Equal(t, 0.0, calc.GamePoints(record, SystemPPR))
}

func TestGamePoints_KickingLine(t *testing.T) {
	calc := NewCalculator()

	record := types.GamePerformanceRecord{
		FieldGoalsMade:  3,
		ExtraPointsMade: 2,
	}

	assert.InDelta(t, 11.0, calc.GamePoints(record, SystemStandard), 1e-9)
}

func TestGamePoints_DefenseShutout(t *testing.T) {
	calc := NewCalculator()

	// 4 sacks (4), 2 INT (4), 1 fumble rec (2), 1 TD (6), shutout (+10)
	record := types.GamePerformanceRecord{
		Sacks:            4,
		DefensiveInts:    2,
		FumbleRecoveries: 1,
		DefensiveTDs:     1,
	}

	assert.InDelta(t, 26.0, calc.GamePoints(record, SystemPPR), 1e-9)
}

func TestPointsAllowedBonus_Tiers(t *testing.T) {
	tests := []struct {
		pointsAllowed float64
		bonus         float64
	}{
		{0, 10}, {6, 7}, {7, 4}, {13, 4}, {14, 1}, {20, 1},
		{21, 0}, {27, 0}, {28, -1}, {34, -1}, {35, -4}, {50, -4},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.bonus, pointsAllowedBonus(tc.pointsAllowed),
			"points allowed %v", tc.pointsAllowed)
	}
}

func TestGamePoints_PointsAllowedBonusOnlyForDefenseLines(t *testing.T) {
	calc := NewCalculator()

	// An offensive stat line never has defensive counters, so the
	// tiered bonus must not leak into it
	offense := types.GamePerformanceRecord{RushingYards: 100}
	assert.InDelta(t, 10.0, calc.GamePoints(offense, SystemPPR), 1e-9)

	// A defense giving up 30 eats the -1 tier
	defense := types.GamePerformanceRecord{Sacks: 3, PointsAllowed: 30}
	assert.InDelta(t, 2.0, calc.GamePoints(defense, SystemPPR), 1e-9)
}

func TestSeriesPoints_PreservesOrder(t *testing.T) {
	calc := NewCalculator()

	history := []types.GamePerformanceRecord{
		{RushingYards: 100},
		{RushingYards: 50},
		{RushingYards: 200},
	}

	points := calc.SeriesPoints(history, SystemPPR)
	assert.Equal(t, []float64{10, 5, 20}, points)
}

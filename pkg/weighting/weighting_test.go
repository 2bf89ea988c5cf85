package weighting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-analytics/projection-engine/types"
)

func TestWeight_MostRecentGameCarriesFullWeight(t *testing.T) {
	w := NewWeighter(DefaultDecayRate)

	history := []types.GamePerformanceRecord{
		{PlayerID: "p1", Season: 2024, Week: 1, RushingYards: 80},
		{PlayerID: "p1", Season: 2024, Week: 5, RushingYards: 120},
		{PlayerID: "p1", Season: 2024, Week: 3, RushingYards: 95},
	}

	weighted := w.Weight(history)
	require.Len(t, weighted, 3)

	assert.Equal(t, 1.0, weighted[0].Weight, "most recent game must carry weight exactly 1.0")
	assert.Equal(t, 5, weighted[0].Record.Week, "week 5 should sort first")
	assert.Equal(t, 3, weighted[1].Record.Week)
	assert.Equal(t, 1, weighted[2].Record.Week)
}

func TestWeight_WeightsStrictlyDecreaseWithGameAge(t *testing.T) {
	w := NewWeighter(0.95)

	history := make([]types.GamePerformanceRecord, 0, 17)
	for week := 1; week <= 17; week++ {
		history = append(history, types.GamePerformanceRecord{
			PlayerID: "p1", Season: 2024, Week: week,
		})
	}

	weighted := w.Weight(history)
	require.Len(t, weighted, 17)

	for i := 1; i < len(weighted); i++ {
		assert.Less(t, weighted[i].Weight, weighted[i-1].Weight,
			"weight at index %d should be below index %d", i, i-1)
		assert.Greater(t, weighted[i].Weight, 0.0)
	}

	// decayRate^i exactly
	assert.InDelta(t, 0.95, weighted[1].Weight, 1e-12)
	assert.InDelta(t, 0.95*0.95, weighted[2].Weight, 1e-12)
}

func TestWeight_SortsAcrossSeasons(t *testing.T) {
	w := NewWeighter(DefaultDecayRate)

	history := []types.GamePerformanceRecord{
		{PlayerID: "p1", Season: 2023, Week: 17},
		{PlayerID: "p1", Season: 2024, Week: 1},
	}

	weighted := w.Weight(history)
	require.Len(t, weighted, 2)
	assert.Equal(t, 2024, weighted[0].Record.Season, "newer season outranks a later week of an older season")
	assert.Equal(t, 1.0, weighted[0].Weight)
}

func TestWeight_EmptyHistoryYieldsEmptyOutput(t *testing.T) {
	w := NewWeighter(DefaultDecayRate)
	assert.Empty(t, w.Weight(nil))
	assert.Empty(t, w.Weight([]types.GamePerformanceRecord{}))
}

func TestNewWeighter_InvalidDecayFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultDecayRate, NewWeighter(0).DecayRate())
	assert.Equal(t, DefaultDecayRate, NewWeighter(-1).DecayRate())
	assert.Equal(t, DefaultDecayRate, NewWeighter(1.5).DecayRate())
	assert.Equal(t, 0.9, NewWeighter(0.9).DecayRate())
}

func TestWeight_DoesNotMutateInput(t *testing.T) {
	w := NewWeighter(DefaultDecayRate)

	history := []types.GamePerformanceRecord{
		{PlayerID: "p1", Season: 2024, Week: 1},
		{PlayerID: "p1", Season: 2024, Week: 2},
	}

	w.Weight(history)
	assert.Equal(t, 1, history[0].Week, "caller's slice order must be preserved")
	assert.Equal(t, 2, history[1].Week)
}

// Package weighting converts raw game history into a recency-weighted
// series. Recent games dominate the expectation: weights decay
// geometrically with each step back in time, and the most recent game
// always carries full weight.
package weighting

import (
	"sort"

	"github.com/gridiron-analytics/projection-engine/types"
)

// DefaultDecayRate is the per-game geometric decay applied to older games
const DefaultDecayRate = 0.95

// Weighter assigns exponential recency weights to game records
type Weighter struct {
	decayRate float64
}

// NewWeighter creates a Weighter with the given decay rate; rates
// outside (0,1] fall back to the default
func NewWeighter(decayRate float64) *Weighter {
	if decayRate <= 0 || decayRate > 1 {
		decayRate = DefaultDecayRate
	}
	return &Weighter{decayRate: decayRate}
}

// DecayRate returns the configured per-game decay
func (w *Weighter) DecayRate() float64 {
	return w.decayRate
}

// Weight sorts history most-recent-first by (season, week) and assigns
// weight decayRate^i to the i-th most recent game. Empty input yields
// empty output; the caller falls back to positional baselines.
func (w *Weighter) Weight(history []types.GamePerformanceRecord) []types.WeightedPerformance {
	if len(history) == 0 {
		return []types.WeightedPerformance{}
	}

	sorted := make([]types.GamePerformanceRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Season != sorted[j].Season {
			return sorted[i].Season > sorted[j].Season
		}
		return sorted[i].Week > sorted[j].Week
	})

	weighted := make([]types.WeightedPerformance, len(sorted))
	weight := 1.0
	for i, record := range sorted {
		weighted[i] = types.WeightedPerformance{
			Record: record,
			Weight: weight,
		}
		weight *= w.decayRate
	}

	return weighted
}

// Package projection computes expected fantasy output and its
// uncertainty from recency-weighted game history, then refines the
// expectation through position-specific adjustment curves.
package projection

import (
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gridiron-analytics/projection-engine/pkg/config"
	"github.com/gridiron-analytics/projection-engine/pkg/logger"
	"github.com/gridiron-analytics/projection-engine/pkg/scoring"
	"github.com/gridiron-analytics/projection-engine/pkg/weighting"
	"github.com/gridiron-analytics/projection-engine/types"
)

// Positional baselines used when a player has no game history at all
// (rookies, units entering the league)
var positionBaselines = map[types.Position]float64{
	types.PositionQB:  18.5,
	types.PositionRB:  12.3,
	types.PositionWR:  11.8,
	types.PositionTE:  8.9,
	types.PositionK:   7.2,
	types.PositionDEF: 9.1,
}

// BaselinePoints returns the no-history fallback expectation for a
// position, or 0 for unsupported positions
func BaselinePoints(position types.Position) float64 {
	return positionBaselines[position]
}

// tierCutoffs holds the descending per-game point thresholds for the
// five projection tiers: ELITE, HIGH, MEDIUM, LOW (everything below is
// VOLATILE)
type tierCutoffs [4]float64

var positionTiers = map[types.Position]tierCutoffs{
	types.PositionQB:  {22.0, 18.0, 14.0, 10.0},
	types.PositionRB:  {18.0, 14.0, 10.0, 7.0},
	types.PositionWR:  {17.0, 13.0, 10.0, 7.0},
	types.PositionTE:  {14.0, 11.0, 8.0, 5.0},
	types.PositionK:   {10.0, 8.5, 7.0, 5.5},
	types.PositionDEF: {12.0, 10.0, 8.0, 6.0},
}

// Boom/bust thresholds relative to the expectation
const (
	boomMultiple = 1.5
	bustMultiple = 0.5
)

// defaultVolatility is the coefficient of variation assumed when there
// is no history to measure one from
const defaultVolatility = 0.35

// Engine is the base projection engine: weighted expectation, sample
// standard deviation, and risk-adjusted projections with confidence
// intervals. Engines are cheap to construct and safe for concurrent use.
type Engine struct {
	weighter    *weighting.Weighter
	calc        *scoring.Calculator
	seasonGames int
	log         *logrus.Entry
}

// NewEngine creates a base projection engine from config
func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		weighter:    weighting.NewWeighter(cfg.DecayRate),
		calc:        scoring.NewCalculator(),
		seasonGames: cfg.SeasonGames,
		log:         logger.WithComponent("projection_engine"),
	}
}

// Weighter exposes the engine's recency weighter for collaborators that
// need the same ordering
func (e *Engine) Weighter() *weighting.Weighter {
	return e.weighter
}

// Calculator exposes the engine's scoring calculator
func (e *Engine) Calculator() *scoring.Calculator {
	return e.calc
}

// ExpectedPoints computes the recency-weighted per-game expectation
// under the given scoring system, rounded to one decimal. Empty history
// falls back to the positional baseline.
func (e *Engine) ExpectedPoints(attrs *types.PlayerAttributes, history []types.GamePerformanceRecord, system scoring.System) float64 {
	if len(history) == 0 {
		return BaselinePoints(attrs.Position)
	}

	weighted := e.weighter.Weight(history)
	var pointSum, weightSum float64
	for _, wp := range weighted {
		pointSum += e.calc.GamePoints(wp.Record, system) * wp.Weight
		weightSum += wp.Weight
	}
	if weightSum == 0 {
		return BaselinePoints(attrs.Position)
	}

	return roundTo(pointSum/weightSum, 1)
}

// StandardDeviation computes the sample standard deviation (Bessel's
// correction) of a point series; fewer than two games yields 0
func (e *Engine) StandardDeviation(points []float64) float64 {
	if len(points) < 2 {
		return 0
	}
	return stat.StdDev(points, nil)
}

// ProjectionAccuracy estimates how trustworthy the expectation is as
// 1 - coefficient of variation, clamped to [0,1]. Histories shorter
// than three games default to 0.5.
func (e *Engine) ProjectionAccuracy(points []float64) float64 {
	if len(points) < 3 {
		return 0.5
	}
	mean := stat.Mean(points, nil)
	if mean <= 0 {
		return 0.5
	}
	cv := e.StandardDeviation(points) / mean
	return clamp01(1 - cv)
}

// RiskAdjustedProjection builds the full per-game projection record:
// tolerance-scaled expectation under all three scoring conventions, a
// 95% confidence interval from the per-game standard deviation, tier,
// risk level, Sharpe-like ratio, and boom/bust probabilities.
func (e *Engine) RiskAdjustedProjection(attrs *types.PlayerAttributes, history []types.GamePerformanceRecord, tolerance types.RiskTolerance) *types.Projection {
	multiplier := tolerance.Multiplier()

	pointsPPR := e.ExpectedPoints(attrs, history, scoring.SystemPPR)
	adjustedPPR := roundTo(pointsPPR*multiplier, 1)
	adjustedHalf := roundTo(e.ExpectedPoints(attrs, history, scoring.SystemHalfPPR)*multiplier, 1)
	adjustedStd := roundTo(e.ExpectedPoints(attrs, history, scoring.SystemStandard)*multiplier, 1)

	// Variance and accuracy are measured on the PPR per-game series,
	// not on the adjusted projection
	series := e.calc.SeriesPoints(history, scoring.SystemPPR)
	stdDev := e.StandardDeviation(series)
	accuracy := e.ProjectionAccuracy(series)

	floor := math.Max(0, roundTo(adjustedPPR-1.96*stdDev, 1))
	ceiling := roundTo(adjustedPPR+1.96*stdDev, 1)

	boom, bust := e.boomBustProbabilities(pointsPPR, series)

	projection := &types.Projection{
		PlayerID:        attrs.PlayerID,
		Position:        attrs.Position,
		Scope:           types.ScopeWeek,
		PointsPPR:       adjustedPPR,
		PointsHalfPPR:   adjustedHalf,
		PointsStandard:  adjustedStd,
		Floor:           floor,
		Ceiling:         ceiling,
		ConfidenceScore: roundTo(accuracy*100, 1),
		Tier:            e.projectionTier(attrs.Position, adjustedPPR),
		RiskLevel:       riskLevelFromStdDev(stdDev),
		SharpeRatio:     sharpeRatio(adjustedPPR, stdDev),
		BoomProbability: boom,
		BustProbability: bust,
	}

	e.log.WithFields(logrus.Fields{
		"player_id":  attrs.PlayerID,
		"position":   attrs.Position,
		"points_ppr": projection.PointsPPR,
		"floor":      projection.Floor,
		"ceiling":    projection.Ceiling,
		"tier":       projection.Tier,
		"games":      len(history),
	}).Debug("Computed risk-adjusted projection")

	return projection
}

// ScaleToSeason converts a per-game projection into a season-scope
// projection over the configured schedule length
func (e *Engine) ScaleToSeason(projection *types.Projection) *types.Projection {
	games := float64(e.seasonGames)
	scaled := *projection
	scaled.Scope = types.ScopeSeason
	scaled.PointsPPR = roundTo(projection.PointsPPR*games, 1)
	scaled.PointsHalfPPR = roundTo(projection.PointsHalfPPR*games, 1)
	scaled.PointsStandard = roundTo(projection.PointsStandard*games, 1)
	scaled.Floor = roundTo(projection.Floor*games, 1)
	scaled.Ceiling = roundTo(projection.Ceiling*games, 1)
	return &scaled
}

// boomBustProbabilities counts games at or beyond the boom/bust
// multiples of the expectation. With no history it falls back to a
// normal model at the default volatility.
func (e *Engine) boomBustProbabilities(expected float64, series []float64) (boom, bust float64) {
	if expected <= 0 {
		return 0, 0
	}
	if len(series) == 0 {
		normal := distuv.Normal{Mu: expected, Sigma: expected * defaultVolatility}
		boom = 1 - normal.CDF(expected*boomMultiple)
		bust = normal.CDF(expected * bustMultiple)
		return roundTo(boom, 3), roundTo(bust, 3)
	}

	var boomCount, bustCount int
	for _, points := range series {
		if points >= expected*boomMultiple {
			boomCount++
		}
		if points <= expected*bustMultiple {
			bustCount++
		}
	}
	total := float64(len(series))
	return roundTo(float64(boomCount)/total, 3), roundTo(float64(bustCount)/total, 3)
}

func (e *Engine) projectionTier(position types.Position, points float64) types.ProjectionTier {
	cutoffs, ok := positionTiers[position]
	if !ok {
		return types.TierVolatile
	}
	switch {
	case points >= cutoffs[0]:
		return types.TierElite
	case points >= cutoffs[1]:
		return types.TierHigh
	case points >= cutoffs[2]:
		return types.TierMedium
	case points >= cutoffs[3]:
		return types.TierLow
	default:
		return types.TierVolatile
	}
}

// riskLevelFromStdDev buckets per-game volatility into the coarse
// three-way level used for tolerance selection
func riskLevelFromStdDev(stdDev float64) types.RiskLevel {
	switch {
	case stdDev < 5:
		return types.RiskLow
	case stdDev < 10:
		return types.RiskMedium
	default:
		return types.RiskHigh
	}
}

func sharpeRatio(expected, stdDev float64) float64 {
	if stdDev <= 0 {
		return 0
	}
	return roundTo(expected/stdDev, 2)
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}

func clampRange(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}

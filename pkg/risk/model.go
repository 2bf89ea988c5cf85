// Package risk implements the three-factor player risk model: observed
// scoring volatility, season-over-season projection drift, and a
// weighted composite of qualitative latent risks. Factors combine under
// fixed weights with interaction amplification, then classify into an
// ordinal category.
package risk

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/gridiron-analytics/projection-engine/pkg/config"
	"github.com/gridiron-analytics/projection-engine/pkg/logger"
	"github.com/gridiron-analytics/projection-engine/pkg/scoring"
	"github.com/gridiron-analytics/projection-engine/types"
)

// Insufficient-data defaults. Downstream always receives a complete
// assessment; thin samples resolve to these moderate constants instead
// of errors.
const (
	InsufficientStdDevRisk   = 0.6
	InsufficientProjDiffRisk = 0.5

	minGamesForStdDev      = 4
	minPriorGamesForDiff   = 8
	minCurrentGamesForDiff = 4
)

// Interaction multipliers applied after the weighted combination.
// Conditions compound when several fire.
const (
	volatileAndDriftingMultiplier = 1.15 // A>0.7 and B>0.7
	latentAndVolatileMultiplier   = 1.12 // C>0.8 and A>0.6
	broadElevationMultiplier      = 1.08 // all three > 0.6
	uniformlyCalmMultiplier       = 0.85 // all three < 0.3
)

const recentWindowGames = 4

// Input is one player's evidence for a risk assessment
type Input struct {
	Attributes    types.PlayerAttributes
	CurrentSeason []types.GamePerformanceRecord
	PriorSeason   []types.GamePerformanceRecord

	// Existing lets the model penalize players it has recently
	// projected badly; nil skips the accuracy check
	Existing *types.ExistingProjection
}

// Model computes three-factor risk assessments. Stateless and safe for
// concurrent use.
type Model struct {
	calc        *scoring.Calculator
	weightA     float64
	weightB     float64
	weightC     float64
	seasonGames int
	log         *logrus.Entry
}

// NewModel creates a risk model from config
func NewModel(cfg *config.Config) *Model {
	return &Model{
		calc:        scoring.NewCalculator(),
		weightA:     cfg.StdDevRiskWeight,
		weightB:     cfg.ProjDiffRiskWeight,
		weightC:     cfg.LatentRiskWeight,
		seasonGames: cfg.SeasonGames,
		log:         logger.WithComponent("risk_model"),
	}
}

// Assess runs all three factors and the combination for one player
func (m *Model) Assess(input Input) *types.RiskAssessment {
	currentPoints := m.recentFirstPoints(input.CurrentSeason)
	priorPoints := m.recentFirstPoints(input.PriorSeason)

	factorA := m.StandardDeviationRisk(input.Attributes.Position, currentPoints)
	factorB := m.ProjectionDifferenceRisk(input.Attributes.Position, currentPoints, priorPoints, input.Existing)
	factorC := latentRisk(latentInputs{
		attrs:            &input.Attributes,
		currentPoints:    currentPoints,
		priorGamesPlayed: len(input.PriorSeason),
		hasPriorSeason:   len(input.PriorSeason) > 0,
		seasonGames:      m.seasonGames,
	})

	combined := m.Combine(factorA, factorB, factorC)
	totalGames := len(input.CurrentSeason) + len(input.PriorSeason)

	assessment := &types.RiskAssessment{
		PlayerID:                 input.Attributes.PlayerID,
		StandardDeviationRisk:    factorA,
		ProjectionDifferenceRisk: factorB,
		LatentRisk:               factorC,
		CombinedRisk:             combined,
		RiskCategory:             Classify(combined),
		ConfidenceLevel:          ConfidenceForSampleSize(totalGames),
	}

	m.log.WithFields(logrus.Fields{
		"player_id":     input.Attributes.PlayerID,
		"stddev_risk":   factorA,
		"projdiff_risk": factorB,
		"latent_risk":   factorC,
		"combined_risk": combined,
		"category":      assessment.RiskCategory,
	}).Debug("Assessed player risk")

	return assessment
}

// StandardDeviationRisk maps the per-game scoring standard deviation
// through the position's volatility bands. Fewer than four games
// returns the moderate insufficient-data default. A recent window
// swinging harder than the full sample draws a penalty.
func (m *Model) StandardDeviationRisk(position types.Position, recentFirstPoints []float64) float64 {
	if len(recentFirstPoints) < minGamesForStdDev {
		return InsufficientStdDevRisk
	}

	overall := stat.StdDev(recentFirstPoints, nil)
	bands, ok := stdDevBands[position]
	if !ok {
		return InsufficientStdDevRisk
	}

	risk := bands.score(overall, 0.10)

	recent := stat.StdDev(recentFirstPoints[:recentWindowGames], nil)
	if overall > 0 && recent > 1.2*overall {
		risk *= 1.15
	}

	return clamp01(risk)
}

// ProjectionDifferenceRisk measures how far the current per-game
// average has drifted from the prior season's, through the position's
// tolerance bands. Declining production is penalized harder than
// improvement, and a poor recent projection record adds a further
// penalty.
func (m *Model) ProjectionDifferenceRisk(position types.Position, currentPoints, priorPoints []float64, existing *types.ExistingProjection) float64 {
	if len(priorPoints) < minPriorGamesForDiff || len(currentPoints) < minCurrentGamesForDiff {
		return InsufficientProjDiffRisk
	}

	currentAvg := stat.Mean(currentPoints, nil)
	priorAvg := stat.Mean(priorPoints, nil)
	if priorAvg <= 0 {
		return InsufficientProjDiffRisk
	}

	relativeDiff := math.Abs(currentAvg-priorAvg) / priorAvg
	bands, ok := diffBands[position]
	if !ok {
		return InsufficientProjDiffRisk
	}

	risk := bands.score(relativeDiff, 0.16)

	if currentAvg < priorAvg {
		risk *= 1.15
	}

	if existing != nil && existing.ProjectedPointsPerGame > 0 {
		if projectionAccuracy(currentPoints, existing.ProjectedPointsPerGame) < 0.7 {
			risk *= 1.1
		}
	}

	return clamp01(risk)
}

// projectionAccuracy averages per-game 1 - |actual-projected|/projected
func projectionAccuracy(points []float64, projected float64) float64 {
	if len(points) == 0 || projected <= 0 {
		return 1.0
	}
	total := 0.0
	for _, actual := range points {
		total += clamp01(1 - math.Abs(actual-projected)/projected)
	}
	return total / float64(len(points))
}

// Combine applies the fixed factor weights, then the interaction
// multipliers, then clamps to [0,1]
func (m *Model) Combine(factorA, factorB, factorC float64) float64 {
	combined := m.weightA*factorA + m.weightB*factorB + m.weightC*factorC

	if factorA > 0.7 && factorB > 0.7 {
		combined *= volatileAndDriftingMultiplier
	}
	if factorC > 0.8 && factorA > 0.6 {
		combined *= latentAndVolatileMultiplier
	}
	if factorA > 0.6 && factorB > 0.6 && factorC > 0.6 {
		combined *= broadElevationMultiplier
	}
	if factorA < 0.3 && factorB < 0.3 && factorC < 0.3 {
		combined *= uniformlyCalmMultiplier
	}

	return clamp01(combined)
}

// Classify maps combined risk to its ordinal category. Boundaries are
// half-open: exactly 0.2 is LOW, exactly 0.8 is VERY_HIGH.
func Classify(combined float64) types.RiskCategory {
	switch {
	case combined < 0.2:
		return types.RiskVeryLow
	case combined < 0.4:
		return types.RiskCatLow
	case combined < 0.6:
		return types.RiskCatMed
	case combined < 0.8:
		return types.RiskCatHigh
	default:
		return types.RiskVeryHigh
	}
}

// ConfidenceForSampleSize grows with the games backing the assessment
func ConfidenceForSampleSize(totalGames int) float64 {
	switch {
	case totalGames >= 25:
		return 0.95
	case totalGames >= 20:
		return 0.90
	case totalGames >= 15:
		return 0.85
	case totalGames >= 10:
		return 0.75
	case totalGames >= 5:
		return 0.65
	default:
		return 0.50
	}
}

// recentFirstPoints scores a history under PPR and orders it most
// recent first. The model sorts locally to stay independent of the
// weighting package.
func (m *Model) recentFirstPoints(history []types.GamePerformanceRecord) []float64 {
	sorted := make([]types.GamePerformanceRecord, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Season != sorted[j].Season {
			return sorted[i].Season > sorted[j].Season
		}
		return sorted[i].Week > sorted[j].Week
	})

	points := make([]float64, len(sorted))
	for i, record := range sorted {
		points[i] = m.calc.PPRPoints(record)
	}
	return points
}

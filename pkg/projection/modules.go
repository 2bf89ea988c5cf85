package projection

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/gridiron-analytics/projection-engine/pkg/logger"
	"github.com/gridiron-analytics/projection-engine/types"
)

// situationalFactor is one bounded multiplicative adjustment derived
// from team context or usage. Factors are clamped into their documented
// range before they ever touch the projection.
type situationalFactor struct {
	name   string
	value  float64
	min    float64
	max    float64
}

func (f situationalFactor) clamped() float64 {
	return clampRange(f.value, f.min, f.max)
}

// riskFlag is one human-readable concern with its contribution to the
// module's 0-100 risk score
type riskFlag struct {
	reason string
	points int
}

// ModuleParams is the immutable per-position parameter table driving a
// generic adjustment module: curve shapes, situational factor builders,
// caps on the combined adjustment, and risk scoring constants.
type ModuleParams struct {
	Position        types.Position
	AgeCurve        func(age int) float64
	ExperienceCurve func(yearsPro int) float64
	Situational     func(attrs *types.PlayerAttributes) []situationalFactor
	PositionRisks   func(attrs *types.PlayerAttributes) []riskFlag

	// Combined adjustment cap; both zero means uncapped beyond the
	// per-factor ranges
	CapMin float64
	CapMax float64

	// Risk score cutoffs and the confidence constant per band
	HighRiskCutoff   int
	MediumRiskCutoff int
	Confidence       map[types.RiskLevel]float64
}

// Module applies one position's multiplicative refinement on top of the
// base engine. Modules are built once from their parameter table and
// shared across calls.
type Module struct {
	params ModuleParams
	engine *Engine
	log    *logrus.Entry
}

// NewModule builds a position module around the base engine
func NewModule(engine *Engine, params ModuleParams) *Module {
	return &Module{
		params: params,
		engine: engine,
		log:    logger.WithComponent(fmt.Sprintf("%s_module", params.Position)),
	}
}

// Position returns the position family this module adjusts
func (m *Module) Position() types.Position {
	return m.params.Position
}

// Project runs the full position-adjusted projection: the module's own
// risk analysis picks the tolerance, the base engine produces the
// risk-adjusted projection, and the capped multiplicative adjustment
// refines it.
func (m *Module) Project(attrs *types.PlayerAttributes, history []types.GamePerformanceRecord) *types.Projection {
	riskScore, riskFactors := m.analyzeRisk(attrs)
	level := m.riskLevel(riskScore)
	tolerance := toleranceForLevel(level)

	projection := m.engine.RiskAdjustedProjection(attrs, history, tolerance)

	adjustment := m.adjustmentFactor(attrs)
	projection.PointsPPR = roundTo(projection.PointsPPR*adjustment, 1)
	projection.PointsHalfPPR = roundTo(projection.PointsHalfPPR*adjustment, 1)
	projection.PointsStandard = roundTo(projection.PointsStandard*adjustment, 1)
	projection.Floor = roundTo(maxZero(projection.Floor*adjustment), 1)
	projection.Ceiling = roundTo(projection.Ceiling*adjustment, 1)

	// Tier and reward/risk shift with the adjusted expectation; the
	// Sharpe-like ratio is re-derived from the adjusted CI half-width
	// and zeroes out when the spread collapses
	projection.Tier = m.engine.projectionTier(attrs.Position, projection.PointsPPR)
	projection.SharpeRatio = sharpeRatio(projection.PointsPPR, (projection.Ceiling-projection.PointsPPR)/1.96)

	projection.RiskFactors = riskFactors
	projection.ConfidenceScore = m.blendConfidence(projection.ConfidenceScore, level)

	m.log.WithFields(logrus.Fields{
		"player_id":  attrs.PlayerID,
		"adjustment": roundTo(adjustment, 3),
		"risk_score": riskScore,
		"risk_level": level,
		"tolerance":  tolerance,
	}).Debug("Applied position adjustment")

	return projection
}

// adjustmentFactor multiplies the age curve, experience curve, and
// situational factors, clamping each stage into its range and the
// combined result into the position cap
func (m *Module) adjustmentFactor(attrs *types.PlayerAttributes) float64 {
	factor := m.params.AgeCurve(attrs.EffectiveAge())
	factor *= m.params.ExperienceCurve(attrs.YearsPro)

	if m.params.Situational != nil {
		for _, situational := range m.params.Situational(attrs) {
			factor *= situational.clamped()
		}
	}

	if m.params.CapMax > 0 {
		factor = clampRange(factor, m.params.CapMin, m.params.CapMax)
	}
	return maxZero(factor)
}

// analyzeRisk accumulates risk factors from generic checks plus the
// position table's own checks, returning the summed 0-100 score and the
// readable factor list
func (m *Module) analyzeRisk(attrs *types.PlayerAttributes) (int, []string) {
	flags := genericRiskFlags(attrs)
	if m.params.PositionRisks != nil {
		flags = append(flags, m.params.PositionRisks(attrs)...)
	}

	score := 0
	reasons := make([]string, 0, len(flags))
	for _, flag := range flags {
		score += flag.points
		reasons = append(reasons, flag.reason)
	}
	if score > 100 {
		score = 100
	}
	return score, reasons
}

func (m *Module) riskLevel(score int) types.RiskLevel {
	switch {
	case score >= m.params.HighRiskCutoff:
		return types.RiskHigh
	case score >= m.params.MediumRiskCutoff:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}

// blendConfidence averages the statistical accuracy score with the
// module's qualitative confidence constant
func (m *Module) blendConfidence(accuracyScore float64, level types.RiskLevel) float64 {
	moduleConfidence := m.params.Confidence[level]
	return roundTo((accuracyScore+moduleConfidence*100)/2, 1)
}

// toleranceForLevel maps the module's risk read to the projection
// tolerance: high risk projects conservatively, low risk aggressively
func toleranceForLevel(level types.RiskLevel) types.RiskTolerance {
	switch level {
	case types.RiskHigh:
		return types.ToleranceConservative
	case types.RiskLow:
		return types.ToleranceAggressive
	default:
		return types.ToleranceModerate
	}
}

// genericRiskFlags covers the checks shared by every position family
func genericRiskFlags(attrs *types.PlayerAttributes) []riskFlag {
	var flags []riskFlag

	switch attrs.EffectiveInjuryStatus() {
	case types.InjuryQuestionable:
		flags = append(flags, riskFlag{"Listed questionable on injury report", 10})
	case types.InjuryDoubtful:
		flags = append(flags, riskFlag{"Listed doubtful on injury report", 20})
	case types.InjuryOut, types.InjuryIR, types.InjuryPUP:
		flags = append(flags, riskFlag{"Currently out of the lineup", 30})
	case types.InjurySuspended:
		flags = append(flags, riskFlag{"Serving suspension", 25})
	}

	if attrs.YearsPro == 0 {
		flags = append(flags, riskFlag{"Rookie with no professional sample", 15})
	}

	if attrs.DepthChartRank > 1 {
		points := 10 * (attrs.DepthChartRank - 1)
		if points > 20 {
			points = 20
		}
		flags = append(flags, riskFlag{fmt.Sprintf("Depth chart rank %d", attrs.DepthChartRank), points})
	}

	return flags
}

func maxZero(value float64) float64 {
	if value < 0 {
		return 0
	}
	return value
}

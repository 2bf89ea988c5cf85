package types

import "fmt"

// ProjectionScope distinguishes a single-week projection from a
// rest-of-season projection
type ProjectionScope string

const (
	ScopeWeek   ProjectionScope = "week"
	ScopeSeason ProjectionScope = "season"
)

// ProjectionTier represents a qualitative ranking bucket
type ProjectionTier string

const (
	TierElite    ProjectionTier = "ELITE"
	TierHigh     ProjectionTier = "HIGH"
	TierMedium   ProjectionTier = "MEDIUM"
	TierLow      ProjectionTier = "LOW"
	TierVolatile ProjectionTier = "VOLATILE"
)

// RiskLevel is the coarse three-way volatility bucket used when picking
// a risk tolerance for the adjusted projection
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// RiskTolerance scales the expected projection up or down
type RiskTolerance string

const (
	ToleranceConservative RiskTolerance = "conservative"
	ToleranceModerate     RiskTolerance = "moderate"
	ToleranceAggressive   RiskTolerance = "aggressive"
)

// Multiplier returns the projection scalar for the tolerance
func (t RiskTolerance) Multiplier() float64 {
	switch t {
	case ToleranceConservative:
		return 0.85
	case ToleranceAggressive:
		return 1.15
	default:
		return 1.0
	}
}

// RiskCategory is the ordinal classification of combined risk
type RiskCategory string

const (
	RiskVeryLow  RiskCategory = "VERY_LOW"
	RiskCatLow   RiskCategory = "LOW"
	RiskCatMed   RiskCategory = "MEDIUM"
	RiskCatHigh  RiskCategory = "HIGH"
	RiskVeryHigh RiskCategory = "VERY_HIGH"
)

// WeightedPerformance pairs a game record with its recency decay weight.
// Weights are in (0,1]; the most recent game always carries 1.0.
// Recomputed on every call, never persisted.
type WeightedPerformance struct {
	Record GamePerformanceRecord `json:"record"`
	Weight float64               `json:"weight"`
}

// Projection represents the engine's point-estimate output for one
// player under the three scoring conventions
type Projection struct {
	PlayerID        string          `json:"player_id"`
	Position        Position        `json:"position"`
	Scope           ProjectionScope `json:"scope"`
	PointsPPR       float64         `json:"points_ppr"`
	PointsHalfPPR   float64         `json:"points_half_ppr"`
	PointsStandard  float64         `json:"points_standard"`
	Floor           float64         `json:"floor"`
	Ceiling         float64         `json:"ceiling"`
	ConfidenceScore float64         `json:"confidence_score"` // 0-100
	Tier            ProjectionTier  `json:"tier"`
	RiskLevel       RiskLevel       `json:"risk_level"`
	SharpeRatio     float64         `json:"sharpe_ratio"`
	BoomProbability float64         `json:"boom_probability"`
	BustProbability float64         `json:"bust_probability"`
	RiskFactors     []string        `json:"risk_factors,omitempty"`
}

// RiskAssessment represents the three-factor risk output for one player
type RiskAssessment struct {
	PlayerID                 string       `json:"player_id"`
	StandardDeviationRisk    float64      `json:"standard_deviation_risk"`
	ProjectionDifferenceRisk float64      `json:"projection_difference_risk"`
	LatentRisk               float64      `json:"latent_risk"`
	CombinedRisk             float64      `json:"combined_risk"`
	RiskCategory             RiskCategory `json:"risk_category"`
	ConfidenceLevel          float64      `json:"confidence_level"`
}

// ExistingProjection is an optional previously published projection,
// used to penalize players the model has recently missed on
type ExistingProjection struct {
	ProjectedPointsPerGame float64 `json:"projected_points_per_game"`
}

// UnsupportedPositionError indicates a position the engine has no
// projection path for (e.g. long snappers)
type UnsupportedPositionError struct {
	Position Position
}

func (e *UnsupportedPositionError) Error() string {
	return fmt.Sprintf("unsupported position: %q", string(e.Position))
}

// InvalidInputError indicates caller-supplied data that fails
// validation; the engine rejects rather than silently clamping
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

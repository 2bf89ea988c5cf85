package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/gridiron-analytics/projection-engine/pkg/logger"
	"github.com/gridiron-analytics/projection-engine/types"
)

// HealthStatus summarizes model output quality over a result set
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "HEALTHY"
	HealthConcerning HealthStatus = "CONCERNING"
	HealthInvalid    HealthStatus = "INVALID"
)

// HealthDiagnostic is a monitoring artifact, never an error: it flags
// out-of-range or non-finite values across a batch so operators can
// catch a misbehaving model before rankings ship
type HealthDiagnostic struct {
	ID          string       `json:"id"`
	Status      HealthStatus `json:"status"`
	Checked     int          `json:"checked"`
	Issues      []string     `json:"issues,omitempty"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// concerningIssueRatio is the issue share above which a batch with only
// soft violations is still flagged
const concerningIssueRatio = 0.1

// EvaluateHealth inspects every successful result in a batch. Hard
// violations (missing halves, non-finite values, risk outside [0,1])
// mark the batch INVALID; soft anomalies (negative point estimates,
// probabilities drifting outside [0,1]) only flag CONCERNING once they
// exceed a meaningful share of the checked results.
func EvaluateHealth(batch *BatchResult) *HealthDiagnostic {
	diagnostic := &HealthDiagnostic{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
	}

	invalid := false
	softCount := 0
	for _, result := range batch.Results {
		if result.Err != nil {
			continue
		}
		diagnostic.Checked++

		if issues := hardIssues(result.PlayerID, result.Projection, result.Risk); len(issues) > 0 {
			diagnostic.Issues = append(diagnostic.Issues, issues...)
			invalid = true
		}
		if issues := softIssues(result.PlayerID, result.Projection); len(issues) > 0 {
			diagnostic.Issues = append(diagnostic.Issues, issues...)
			softCount += len(issues)
		}
	}

	switch {
	case invalid:
		diagnostic.Status = HealthInvalid
	case diagnostic.Checked > 0 && float64(softCount) > concerningIssueRatio*float64(diagnostic.Checked):
		diagnostic.Status = HealthConcerning
	default:
		diagnostic.Status = HealthHealthy
	}

	logger.WithComponent("model_health").WithField("batch_id", batch.BatchID).
		WithField("status", diagnostic.Status).
		WithField("issues", len(diagnostic.Issues)).
		Info("Evaluated batch model health")

	return diagnostic
}

// hardIssues are the violations a correct model can never produce:
// missing output halves, non-finite values, risk scores outside [0,1]
func hardIssues(playerID string, projection *types.Projection, assessment *types.RiskAssessment) []string {
	var issues []string
	if projection == nil {
		issues = append(issues, fmt.Sprintf("player %s: missing projection", playerID))
	}
	if assessment == nil {
		issues = append(issues, fmt.Sprintf("player %s: missing risk assessment", playerID))
		return issues
	}

	check := func(name string, value float64) {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			issues = append(issues, fmt.Sprintf("player %s: %s is non-finite", playerID, name))
		} else if value < 0 || value > 1 {
			issues = append(issues, fmt.Sprintf("player %s: %s %v outside [0,1]", playerID, name, value))
		}
	}

	check("standard_deviation_risk", assessment.StandardDeviationRisk)
	check("projection_difference_risk", assessment.ProjectionDifferenceRisk)
	check("latent_risk", assessment.LatentRisk)
	check("combined_risk", assessment.CombinedRisk)
	check("confidence_level", assessment.ConfidenceLevel)

	if projection != nil {
		for name, value := range map[string]float64{
			"points_ppr":      projection.PointsPPR,
			"points_half_ppr": projection.PointsHalfPPR,
			"points_standard": projection.PointsStandard,
			"floor":           projection.Floor,
		} {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				issues = append(issues, fmt.Sprintf("player %s: %s is non-finite", playerID, name))
			}
		}
	}
	return issues
}

// softIssues are anomalies worth an operator's attention but not proof
// of a broken model: clamping misses that leave a point estimate
// negative or nudge a probability past its bounds
func softIssues(playerID string, projection *types.Projection) []string {
	if projection == nil {
		return nil
	}

	var issues []string
	for name, value := range map[string]float64{
		"points_ppr":      projection.PointsPPR,
		"points_half_ppr": projection.PointsHalfPPR,
		"points_standard": projection.PointsStandard,
		"floor":           projection.Floor,
	} {
		if !math.IsNaN(value) && !math.IsInf(value, 0) && value < 0 {
			issues = append(issues, fmt.Sprintf("player %s: %s %v is negative", playerID, name, value))
		}
	}
	if projection.BoomProbability < 0 || projection.BoomProbability > 1 ||
		projection.BustProbability < 0 || projection.BustProbability > 1 {
		issues = append(issues, fmt.Sprintf("player %s: boom/bust probability outside [0,1]", playerID))
	}
	return issues
}

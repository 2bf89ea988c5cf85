package projection

import (
	"math"

	"github.com/gridiron-analytics/projection-engine/types"
)

// NewPositionModules builds the four skill-position modules around the
// base engine. K and DEF have no adjustment module; the orchestrator
// routes them straight to the base engine.
func NewPositionModules(engine *Engine) map[types.Position]*Module {
	return map[types.Position]*Module{
		types.PositionQB: NewModule(engine, qbParams()),
		types.PositionRB: NewModule(engine, rbParams()),
		types.PositionWR: NewModule(engine, wrParams()),
		types.PositionTE: NewModule(engine, teParams()),
	}
}

// ---------------------------------------------------------------------
// QB
// ---------------------------------------------------------------------

func qbParams() ModuleParams {
	return ModuleParams{
		Position:         types.PositionQB,
		AgeCurve:         qbAgeCurve,
		ExperienceCurve:  qbExperienceCurve,
		Situational:      qbSituational,
		PositionRisks:    qbRisks,
		CapMin:           0.8,
		CapMax:           1.3,
		HighRiskCutoff:   45,
		MediumRiskCutoff: 20,
		Confidence: map[types.RiskLevel]float64{
			types.RiskLow:    0.88,
			types.RiskMedium: 0.78,
			types.RiskHigh:   0.65,
		},
	}
}

// qbAgeCurve: slow ramp, long prime with a gentle sinusoidal peak
// through the early thirties, then decline
func qbAgeCurve(age int) float64 {
	a := float64(age)
	switch {
	case age <= 23:
		return 0.75 + 0.08*(a-21)
	case age <= 26:
		return 0.91 + 0.03*(a-23)
	case age <= 32:
		return 1.0 + 0.05*math.Sin((a-27)*math.Pi/10)
	case age <= 35:
		return 1.05 - 0.04*(a-32)
	default:
		return 0.93 - 0.08*(a-35)
	}
}

func qbExperienceCurve(yearsPro int) float64 {
	y := float64(yearsPro)
	switch {
	case yearsPro == 0:
		return 0.70
	case yearsPro == 1:
		return 0.85
	case yearsPro == 2:
		return 0.95
	case yearsPro <= 5:
		return 0.95 + 0.02*(y-2)
	case yearsPro <= 10:
		return 1.01
	default:
		return 1.01 - 0.015*(y-10)
	}
}

// qbSituational: team offense strength +/-8%, red-zone efficiency
// +/-10%, pass volume +/-5%
func qbSituational(attrs *types.PlayerAttributes) []situationalFactor {
	ctx := attrs.TeamContext
	return []situationalFactor{
		{"team_offense", 1 + (ctx.OffenseRating-0.5)*0.16, 0.92, 1.08},
		{"red_zone_efficiency", 1 + (ctx.RedZoneEfficiency-0.5)*0.20, 0.90, 1.10},
		{"pass_volume", passVolumeFactor(ctx.PassVolumeRank), 0.95, 1.05},
	}
}

func qbRisks(attrs *types.PlayerAttributes) []riskFlag {
	var flags []riskFlag
	age := attrs.EffectiveAge()
	if age >= 36 {
		flags = append(flags, riskFlag{"Post-prime age decline", 20})
	} else if age >= 33 {
		flags = append(flags, riskFlag{"Approaching age decline window", 10})
	}
	if attrs.TeamContext.Unstable {
		flags = append(flags, riskFlag{"Unstable team situation", 10})
	}
	if attrs.TeamContext.NewOffensiveSystem {
		flags = append(flags, riskFlag{"Learning a new offensive system", 10})
	}
	return flags
}

// ---------------------------------------------------------------------
// RB
// ---------------------------------------------------------------------

func rbParams() ModuleParams {
	return ModuleParams{
		Position:         types.PositionRB,
		AgeCurve:         rbAgeCurve,
		ExperienceCurve:  rbExperienceCurve,
		Situational:      rbSituational,
		PositionRisks:    rbRisks,
		CapMin:           0.7,
		CapMax:           1.4,
		HighRiskCutoff:   40,
		MediumRiskCutoff: 20,
		Confidence: map[types.RiskLevel]float64{
			types.RiskLow:    0.85,
			types.RiskMedium: 0.75,
			types.RiskHigh:   0.62,
		},
	}
}

// rbAgeCurve: explosive early growth, a short prime, and the
// well-documented wall at 29
func rbAgeCurve(age int) float64 {
	a := float64(age)
	switch {
	case age <= 22:
		return 0.85
	case age == 23:
		return 1.00
	case age <= 25:
		return 1.10 + 0.03*(a-24)
	case age <= 27:
		return 1.08 - 0.02*(a-25)
	case age == 28:
		return 1.02
	case age == 29:
		return 0.84
	case age == 30:
		return 0.76
	case age <= 32:
		return 0.70 - 0.05*(a-30)
	default:
		return math.Max(0.50, 0.65-0.08*(a-32))
	}
}

func rbExperienceCurve(yearsPro int) float64 {
	y := float64(yearsPro)
	switch {
	case yearsPro == 0:
		return 0.75
	case yearsPro == 1:
		return 0.95
	case yearsPro == 2:
		return 1.05
	case yearsPro <= 5:
		return 1.03
	case yearsPro <= 7:
		return 1.00
	default:
		return 0.95 - 0.02*(y-7)
	}
}

// rbSituational: workload, goal-line share, pass-catching role,
// run-block strength, backfield competition
func rbSituational(attrs *types.PlayerAttributes) []situationalFactor {
	usage := attrs.Usage
	ctx := attrs.TeamContext
	return []situationalFactor{
		{"workload", rbWorkloadFactor(usage.ProjectedCarries), 0.80, 1.0},
		{"goal_line_share", rbGoalLineFactor(usage.GoalLineShare), 0.96, 1.08},
		{"pass_catching", rbPassCatchingFactor(usage.PassCatchingRole), 0.98, 1.06},
		{"run_blocking", 1 + (ctx.OffensiveLineRating-0.5)*0.12, 0.94, 1.06},
		{"backfield_competition", 1 - usage.BackfieldCompetition*0.15, 0.85, 1.0},
	}
}

// rbWorkloadFactor discounts extreme projected carry counts: bell-cow
// volume raises injury exposure, thin volume caps output
func rbWorkloadFactor(projectedCarries int) float64 {
	switch {
	case projectedCarries >= 300:
		return 0.85
	case projectedCarries >= 250:
		return 0.92
	case projectedCarries >= 200:
		return 1.0
	case projectedCarries >= 150:
		return 0.95
	default:
		return 0.80
	}
}

func rbGoalLineFactor(share float64) float64 {
	switch {
	case share >= 0.6:
		return 1.08
	case share >= 0.4:
		return 1.04
	case share >= 0.2:
		return 1.0
	default:
		return 0.96
	}
}

func rbPassCatchingFactor(role float64) float64 {
	switch {
	case role >= 0.7:
		return 1.06
	case role >= 0.4:
		return 1.02
	default:
		return 0.98
	}
}

func rbRisks(attrs *types.PlayerAttributes) []riskFlag {
	var flags []riskFlag
	age := attrs.EffectiveAge()
	if age >= 29 {
		flags = append(flags, riskFlag{"Age 29+ cliff risk", 25})
	} else if age == 28 {
		flags = append(flags, riskFlag{"Final pre-cliff season", 10})
	}
	if attrs.Usage.ProjectedCarries >= 300 {
		flags = append(flags, riskFlag{"Extreme projected workload", 15})
	}
	if attrs.Usage.BackfieldCompetition >= 0.5 {
		flags = append(flags, riskFlag{"Crowded backfield", 10})
	}
	return flags
}

// ---------------------------------------------------------------------
// WR
// ---------------------------------------------------------------------

func wrParams() ModuleParams {
	return ModuleParams{
		Position:         types.PositionWR,
		AgeCurve:         wrAgeCurve,
		ExperienceCurve:  wrExperienceCurve,
		Situational:      wrSituational,
		PositionRisks:    wrRisks,
		CapMin:           0.75,
		CapMax:           1.35,
		HighRiskCutoff:   45,
		MediumRiskCutoff: 20,
		Confidence: map[types.RiskLevel]float64{
			types.RiskLow:    0.84,
			types.RiskMedium: 0.74,
			types.RiskHigh:   0.60,
		},
	}
}

func wrAgeCurve(age int) float64 {
	a := float64(age)
	switch {
	case age <= 22:
		return 0.78 + 0.06*(a-21)
	case age <= 24:
		return 0.84 + 0.05*(a-22)
	case age <= 27:
		return 0.94 + 0.04*(a-24)
	case age <= 29:
		return 1.06 - 0.02*(a-27)
	case age <= 32:
		return 1.02 - 0.03*(a-29)
	case age <= 35:
		return 0.93 - 0.05*(a-32)
	default:
		return math.Max(0.60, 0.78-0.08*(a-35))
	}
}

func wrExperienceCurve(yearsPro int) float64 {
	y := float64(yearsPro)
	switch {
	case yearsPro == 0:
		return 0.65
	case yearsPro == 1:
		return 0.85
	case yearsPro == 2:
		return 1.05
	case yearsPro <= 6:
		return 1.08 - 0.01*(y-2)
	case yearsPro <= 10:
		return 1.02
	default:
		return 1.02 - 0.02*(y-10)
	}
}

// wrSituational: target share tiering, QB stability +/-15%, red-zone
// target share, depth of target, slot usage, team pass volume
func wrSituational(attrs *types.PlayerAttributes) []situationalFactor {
	usage := attrs.Usage
	ctx := attrs.TeamContext
	return []situationalFactor{
		{"target_share", wrTargetShareFactor(usage.TargetShare), 0.75, 1.15},
		{"qb_stability", 1 + (ctx.QBStability-0.5)*0.30, 0.85, 1.15},
		{"red_zone_targets", wrRedZoneFactor(usage.RedZoneTargetShare), 0.98, 1.08},
		{"depth_of_target", wrDepthOfTargetFactor(usage.AverageDepthOfTarget), 0.97, 1.04},
		{"slot_usage", wrSlotFactor(usage.SlotRate), 0.99, 1.02},
		{"pass_volume", passVolumeFactor(ctx.PassVolumeRank), 0.95, 1.05},
	}
}

func wrTargetShareFactor(share float64) float64 {
	switch {
	case share >= 0.25:
		return 1.15
	case share >= 0.20:
		return 1.08
	case share >= 0.15:
		return 1.0
	case share >= 0.10:
		return 0.88
	default:
		return 0.75
	}
}

func wrRedZoneFactor(share float64) float64 {
	switch {
	case share >= 0.25:
		return 1.08
	case share >= 0.15:
		return 1.03
	default:
		return 0.98
	}
}

func wrDepthOfTargetFactor(aDOT float64) float64 {
	switch {
	case aDOT >= 14:
		return 1.04
	case aDOT >= 8:
		return 1.0
	default:
		return 0.97
	}
}

func wrSlotFactor(slotRate float64) float64 {
	if slotRate >= 0.6 {
		return 1.02
	}
	return 1.0
}

func wrRisks(attrs *types.PlayerAttributes) []riskFlag {
	var flags []riskFlag
	if attrs.EffectiveAge() >= 33 {
		flags = append(flags, riskFlag{"Age 33+ decline risk", 15})
	}
	if attrs.Usage.TargetShare > 0 && attrs.Usage.TargetShare < 0.10 {
		flags = append(flags, riskFlag{"Marginal target share", 15})
	}
	if attrs.TeamContext.QBStability < 0.35 {
		flags = append(flags, riskFlag{"Unstable quarterback situation", 10})
	}
	return flags
}

// ---------------------------------------------------------------------
// TE
// ---------------------------------------------------------------------

func teParams() ModuleParams {
	return ModuleParams{
		Position:        types.PositionTE,
		AgeCurve:        teAgeCurve,
		ExperienceCurve: teExperienceCurve,
		// Simplified tier: no situational adjustments beyond the curves
		Situational:      nil,
		PositionRisks:    teRisks,
		HighRiskCutoff:   50,
		MediumRiskCutoff: 25,
		Confidence: map[types.RiskLevel]float64{
			types.RiskLow:    0.82,
			types.RiskMedium: 0.72,
			types.RiskHigh:   0.62,
		},
	}
}

// teAgeCurve: tight ends mature late and hold a long flat prime
func teAgeCurve(age int) float64 {
	switch {
	case age <= 25:
		return 0.80
	case age <= 31:
		return 1.04
	case age <= 37:
		return 0.95
	default:
		return 0.75
	}
}

func teExperienceCurve(yearsPro int) float64 {
	y := float64(yearsPro)
	switch {
	case yearsPro == 0:
		return 0.60
	case yearsPro <= 6:
		return 0.90 + 0.02*y
	case yearsPro <= 10:
		return 1.02
	default:
		return 1.00
	}
}

func teRisks(attrs *types.PlayerAttributes) []riskFlag {
	var flags []riskFlag
	if attrs.EffectiveAge() >= 32 {
		flags = append(flags, riskFlag{"Past the tight end prime window", 10})
	}
	if attrs.YearsPro == 0 {
		flags = append(flags, riskFlag{"Tight end rookie learning curve", 10})
	}
	return flags
}

// ---------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------

// passVolumeFactor maps a 1-32 team pass-attempt rank into a +/-5%
// adjustment; unranked (0) is treated as league average
func passVolumeFactor(rank int) float64 {
	if rank < 1 || rank > 32 {
		return 1.0
	}
	return 1 + (16.5-float64(rank))/15.5*0.05
}

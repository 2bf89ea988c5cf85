package risk

import (
	"math"

	"github.com/gridiron-analytics/projection-engine/types"
)

// Weights for the eight latent sub-scores. They sum to exactly 1.0.
const (
	injuryWeight            = 0.22
	benchingWeight          = 0.18
	systemChangeWeight      = 0.15
	competitionWeight       = 0.12
	ageDeclineWeight        = 0.10
	coachingStabilityWeight = 0.09
	contractWeight          = 0.08
	attitudeWeight          = 0.06
)

// latentInputs carries everything the qualitative sub-scores read
type latentInputs struct {
	attrs            *types.PlayerAttributes
	currentPoints    []float64 // PPR points, most recent first
	priorGamesPlayed int
	hasPriorSeason   bool
	seasonGames      int
}

// latentRisk is the weighted composite of the eight qualitative
// sub-scores, each independently clamped to [0,1]
func latentRisk(in latentInputs) float64 {
	composite := injuryRisk(in)*injuryWeight +
		benchingRisk(in)*benchingWeight +
		systemChangeRisk(in.attrs)*systemChangeWeight +
		competitionRisk(in.attrs)*competitionWeight +
		ageDeclineRisk(in.attrs)*ageDeclineWeight +
		coachingStabilityRisk(in.attrs)*coachingStabilityWeight +
		contractSituationRisk(in.attrs)*contractWeight +
		attitudeRisk(in.attrs)*attitudeWeight
	return clamp01(composite)
}

// injuryStatusBase escalates the 0.2 healthy base by designation
func injuryStatusBase(status types.InjuryStatus) float64 {
	switch status {
	case types.InjuryQuestionable:
		return 0.4
	case types.InjurySuspended:
		return 0.5
	case types.InjuryDoubtful:
		return 0.55
	case types.InjuryOut:
		return 0.7
	case types.InjuryPUP:
		return 0.8
	case types.InjuryIR:
		return 0.9
	default:
		return 0.2
	}
}

// injuryPositionMultipliers reflect how much contact each position
// absorbs
var injuryPositionMultipliers = map[types.Position]float64{
	types.PositionRB:  1.3,
	types.PositionTE:  1.1,
	types.PositionWR:  1.0,
	types.PositionDEF: 0.9,
	types.PositionQB:  0.8,
	types.PositionK:   0.6,
}

// injuryRisk combines the status base, missed games against the
// full-season expectation, the positional contact multiplier, and an
// age escalator past 30
func injuryRisk(in latentInputs) float64 {
	risk := injuryStatusBase(in.attrs.EffectiveInjuryStatus())

	// Missed-game escalation is judged against the most recent full
	// season; an in-progress season says nothing about durability yet
	if in.hasPriorSeason {
		missed := in.seasonGames - in.priorGamesPlayed
		if missed > 0 {
			risk += 0.05 * float64(missed)
		}
	}

	if mult, ok := injuryPositionMultipliers[in.attrs.Position]; ok {
		risk *= mult
	}

	if age := in.attrs.EffectiveAge(); age > 30 {
		risk *= 1 + 0.03*float64(age-30)
	}

	return clamp01(risk)
}

// benchingRisk reads declining in-season production, depth chart slide,
// age, and rookie status
func benchingRisk(in latentInputs) float64 {
	risk := 0.15

	// Trailing four games falling under 70% of the opening four is the
	// classic usage-fade signature. currentPoints is most recent first.
	if len(in.currentPoints) >= 8 {
		trailing := mean(in.currentPoints[:4])
		leading := mean(in.currentPoints[len(in.currentPoints)-4:])
		if leading > 0 && trailing < 0.7*leading {
			risk += 0.3
		}
	}

	if rank := in.attrs.DepthChartRank; rank > 1 {
		risk += 0.15 * float64(rank)
	}
	if in.attrs.EffectiveAge() > 32 {
		risk += 0.1
	}
	if in.attrs.YearsPro == 0 {
		risk += 0.2
	}

	return clamp01(risk)
}

func attitudeRisk(attrs *types.PlayerAttributes) float64 {
	risk := 0.1
	if attrs.ContractYear {
		risk += 0.1
	}
	if attrs.TeamContext.Unstable {
		risk += 0.15
	}
	return clamp01(risk)
}

func systemChangeRisk(attrs *types.PlayerAttributes) float64 {
	risk := 0.1
	if attrs.TeamContext.NewOffensiveSystem {
		risk += 0.35
	}
	if attrs.TeamContext.NewHeadCoach {
		risk += 0.15
	}
	return clamp01(risk)
}

func coachingStabilityRisk(attrs *types.PlayerAttributes) float64 {
	risk := 0.15
	if attrs.TeamContext.NewHeadCoach {
		risk += 0.4
	}
	if attrs.TeamContext.Unstable {
		risk += 0.1
	}
	return clamp01(risk)
}

func contractSituationRisk(attrs *types.PlayerAttributes) float64 {
	risk := 0.1
	if attrs.ContractYear {
		risk += 0.35
	}
	return clamp01(risk)
}

func competitionRisk(attrs *types.PlayerAttributes) float64 {
	risk := 0.15
	if attrs.CompetitionAdded {
		risk += 0.35
	}
	if rank := attrs.DepthChartRank; rank > 1 {
		risk += 0.1 * float64(rank-1)
	}
	return clamp01(risk)
}

// ageDeclineRisk stays at a nominal 0.1 until the position's decline
// onset, then jumps to 0.3 and grows 0.1 per year past it
func ageDeclineRisk(attrs *types.PlayerAttributes) float64 {
	onset, ok := declineOnsetAges[attrs.Position]
	if !ok {
		return 0.1
	}
	age := attrs.EffectiveAge()
	if age < onset {
		return 0.1
	}
	return clamp01(0.3 + 0.1*float64(age-onset))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp01(value float64) float64 {
	return math.Max(0, math.Min(1, value))
}

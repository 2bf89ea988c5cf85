package types

import (
	"fmt"
	"math"
)

// Position represents an NFL fantasy roster position
type Position string

const (
	PositionQB  Position = "QB"
	PositionRB  Position = "RB"
	PositionWR  Position = "WR"
	PositionTE  Position = "TE"
	PositionK   Position = "K"
	PositionDEF Position = "DEF"
)

// SupportedPositions lists every position the engine can project
var SupportedPositions = []Position{
	PositionQB, PositionRB, PositionWR, PositionTE, PositionK, PositionDEF,
}

// IsSupported reports whether the engine has a projection path for p
func (p Position) IsSupported() bool {
	for _, pos := range SupportedPositions {
		if p == pos {
			return true
		}
	}
	return false
}

// InjuryStatus represents a player's current injury designation
type InjuryStatus string

const (
	InjuryHealthy      InjuryStatus = "HEALTHY"
	InjuryQuestionable InjuryStatus = "QUESTIONABLE"
	InjuryDoubtful     InjuryStatus = "DOUBTFUL"
	InjuryOut          InjuryStatus = "OUT"
	InjuryIR           InjuryStatus = "IR"
	InjuryPUP          InjuryStatus = "PUP"
	InjurySuspended    InjuryStatus = "SUSPENDED"
)

// GamePerformanceRecord represents one player-game stat line as delivered
// by the data pipeline. Records are immutable facts; the engine never
// mutates them. Counters the pipeline did not populate default to zero.
type GamePerformanceRecord struct {
	PlayerID string `json:"player_id"`
	Week     int    `json:"week"`
	Season   int    `json:"season"`

	// Passing
	PassingYards  float64 `json:"passing_yards"`
	PassingTDs    float64 `json:"passing_tds"`
	Interceptions float64 `json:"interceptions"`

	// Rushing
	Carries      float64 `json:"carries"`
	RushingYards float64 `json:"rushing_yards"`
	RushingTDs   float64 `json:"rushing_tds"`

	// Receiving
	Targets        float64 `json:"targets"`
	Receptions     float64 `json:"receptions"`
	ReceivingYards float64 `json:"receiving_yards"`
	ReceivingTDs   float64 `json:"receiving_tds"`

	FumblesLost float64 `json:"fumbles_lost"`

	// Kicking
	FieldGoalsMade  float64 `json:"field_goals_made"`
	ExtraPointsMade float64 `json:"extra_points_made"`

	// Defense / special teams
	Sacks            float64 `json:"sacks"`
	DefensiveInts    float64 `json:"defensive_ints"`
	FumbleRecoveries float64 `json:"fumble_recoveries"`
	Safeties         float64 `json:"safeties"`
	DefensiveTDs     float64 `json:"defensive_tds"`
	PointsAllowed    float64 `json:"points_allowed"`
}

// counters returns every statistical counter with its field name, for
// validation. PointsAllowed is a concession total and is allowed to be
// any non-negative value.
func (r *GamePerformanceRecord) counters() map[string]float64 {
	return map[string]float64{
		"passing_yards":     r.PassingYards,
		"passing_tds":       r.PassingTDs,
		"interceptions":     r.Interceptions,
		"carries":           r.Carries,
		"rushing_yards":     r.RushingYards,
		"rushing_tds":       r.RushingTDs,
		"targets":           r.Targets,
		"receptions":        r.Receptions,
		"receiving_yards":   r.ReceivingYards,
		"receiving_tds":     r.ReceivingTDs,
		"fumbles_lost":      r.FumblesLost,
		"field_goals_made":  r.FieldGoalsMade,
		"extra_points_made": r.ExtraPointsMade,
		"sacks":             r.Sacks,
		"defensive_ints":    r.DefensiveInts,
		"fumble_recoveries": r.FumbleRecoveries,
		"safeties":          r.Safeties,
		"defensive_tds":     r.DefensiveTDs,
		"points_allowed":    r.PointsAllowed,
	}
}

// Validate rejects records with negative or non-finite counters. The
// engine validates before computing rather than clamping bad input.
func (r *GamePerformanceRecord) Validate() error {
	if r.Week < 1 {
		return &InvalidInputError{Field: "week", Reason: fmt.Sprintf("must be >= 1, got %d", r.Week)}
	}
	if r.Season < 1920 {
		return &InvalidInputError{Field: "season", Reason: fmt.Sprintf("implausible season %d", r.Season)}
	}
	for name, value := range r.counters() {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return &InvalidInputError{Field: name, Reason: "non-finite value"}
		}
		if value < 0 {
			return &InvalidInputError{Field: name, Reason: fmt.Sprintf("negative value %v", value)}
		}
	}
	return nil
}

// TeamContext represents the team-level situation surrounding a player.
// Ratings are normalized to [0,1] with 0.5 as league average.
type TeamContext struct {
	OffenseRating       float64 `json:"offense_rating"`
	RedZoneEfficiency   float64 `json:"red_zone_efficiency"`
	PassVolumeRank      int     `json:"pass_volume_rank"` // 1 = most pass-heavy of 32
	OffensiveLineRating float64 `json:"offensive_line_rating"`
	QBStability         float64 `json:"qb_stability"`
	Unstable            bool    `json:"unstable"`
	NewOffensiveSystem  bool    `json:"new_offensive_system"`
	NewHeadCoach        bool    `json:"new_head_coach"`
}

// UsageProfile represents projected opportunity share for skill players
type UsageProfile struct {
	ProjectedCarries     int     `json:"projected_carries"`
	GoalLineShare        float64 `json:"goal_line_share"`
	PassCatchingRole     float64 `json:"pass_catching_role"`
	BackfieldCompetition float64 `json:"backfield_competition"`
	TargetShare          float64 `json:"target_share"`
	RedZoneTargetShare   float64 `json:"red_zone_target_share"`
	AverageDepthOfTarget float64 `json:"average_depth_of_target"`
	SlotRate             float64 `json:"slot_rate"`
}

// PlayerAttributes represents the biographical and situational inputs
// the engine reads alongside game history. Read-only to the engine.
type PlayerAttributes struct {
	PlayerID         string       `json:"player_id"`
	Name             string       `json:"name,omitempty"`
	Position         Position     `json:"position"`
	Age              *int         `json:"age,omitempty"`
	YearsPro         int          `json:"years_pro"`
	InjuryStatus     InjuryStatus `json:"injury_status"`
	DepthChartRank   int          `json:"depth_chart_rank"`
	Team             string       `json:"team"`
	ContractYear     bool         `json:"contract_year"`
	CompetitionAdded bool         `json:"competition_added"`
	TeamContext      TeamContext  `json:"team_context"`
	Usage            UsageProfile `json:"usage"`
}

// Default ages assumed when the roster feed has no birthdate. Tight ends
// typically enter their statistical prime a year later.
const (
	DefaultAge   = 25
	DefaultAgeTE = 26
)

// EffectiveAge returns the player's age, falling back to the positional
// default when the roster feed had no birthdate.
func (a *PlayerAttributes) EffectiveAge() int {
	if a.Age != nil {
		return *a.Age
	}
	if a.Position == PositionTE {
		return DefaultAgeTE
	}
	return DefaultAge
}

// EffectiveInjuryStatus treats a missing designation as healthy
func (a *PlayerAttributes) EffectiveInjuryStatus() InjuryStatus {
	if a.InjuryStatus == "" {
		return InjuryHealthy
	}
	return a.InjuryStatus
}

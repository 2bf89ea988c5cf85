package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gridiron-analytics/projection-engine/pkg/config"
	"github.com/gridiron-analytics/projection-engine/types"
)

func newTestOrchestrator() *Orchestrator {
	return NewOrchestrator(config.Default())
}

func intPtr(v int) *int { return &v }

func rushingSeason(playerID string, season, games int, baseYards float64) []types.GamePerformanceRecord {
	records := make([]types.GamePerformanceRecord, games)
	for i := 0; i < games; i++ {
		records[i] = types.GamePerformanceRecord{
			PlayerID:     playerID,
			Season:       season,
			Week:         i + 1,
			RushingYards: baseYards + float64(i%3)*10,
			Receptions:   3,
		}
	}
	return records
}

func runningBackInput(playerID string) PlayerInput {
	return PlayerInput{
		Attributes: types.PlayerAttributes{
			PlayerID: playerID,
			Position: types.PositionRB,
			Age:      intPtr(25),
			YearsPro: 3,
			Usage: types.UsageProfile{
				ProjectedCarries: 220,
				GoalLineShare:    0.5,
				PassCatchingRole: 0.5,
			},
			TeamContext: types.TeamContext{OffensiveLineRating: 0.6},
		},
		CurrentSeason: rushingSeason(playerID, 2024, 8, 80),
		PriorSeason:   rushingSeason(playerID, 2023, 16, 75),
	}
}

func TestProjectPlayer_ReturnsCompletePair(t *testing.T) {
	o := newTestOrchestrator()

	proj, assessment, err := o.ProjectPlayer(runningBackInput("rb-1"))
	require.NoError(t, err)
	require.NotNil(t, proj)
	require.NotNil(t, assessment)

	assert.Equal(t, "rb-1", proj.PlayerID)
	assert.Equal(t, "rb-1", assessment.PlayerID)
	assert.Greater(t, proj.PointsPPR, 0.0)
	assert.GreaterOrEqual(t, proj.Ceiling, proj.Floor)
	assert.GreaterOrEqual(t, assessment.CombinedRisk, 0.0)
	assert.LessOrEqual(t, assessment.CombinedRisk, 1.0)
}

func TestProjectPlayer_UnsupportedPosition(t *testing.T) {
	o := newTestOrchestrator()

	input := PlayerInput{
		Attributes: types.PlayerAttributes{PlayerID: "ls-1", Position: "LS"},
	}

	proj, assessment, err := o.ProjectPlayer(input)
	require.Error(t, err)

	var unsupported *types.UnsupportedPositionError
	assert.True(t, errors.As(err, &unsupported))
	assert.Equal(t, types.Position("LS"), unsupported.Position)
	assert.Nil(t, proj, "no partial projection on failure")
	assert.Nil(t, assessment)
}

func TestProjectPlayer_InvalidRecordRejected(t *testing.T) {
	o := newTestOrchestrator()

	input := runningBackInput("rb-bad")
	input.CurrentSeason[2].RushingYards = -40

	proj, assessment, err := o.ProjectPlayer(input)
	require.Error(t, err)

	var invalid *types.InvalidInputError
	assert.True(t, errors.As(err, &invalid))
	assert.Nil(t, proj)
	assert.Nil(t, assessment)
}

func TestProjectPlayer_SeasonScope(t *testing.T) {
	o := newTestOrchestrator()

	weekly := runningBackInput("rb-scope")
	weekly.Scope = types.ScopeWeek
	seasonal := runningBackInput("rb-scope")
	seasonal.Scope = types.ScopeSeason

	weekProj, _, err := o.ProjectPlayer(weekly)
	require.NoError(t, err)
	seasonProj, _, err := o.ProjectPlayer(seasonal)
	require.NoError(t, err)

	assert.Greater(t, seasonProj.PointsPPR, weekProj.PointsPPR*10,
		"season scope multiplies the weekly projection across the schedule")
}

func TestProjectPlayer_KickerRunsBaseEngine(t *testing.T) {
	o := newTestOrchestrator()

	games := make([]types.GamePerformanceRecord, 6)
	for i := range games {
		games[i] = types.GamePerformanceRecord{
			PlayerID: "k-1", Season: 2024, Week: i + 1,
			FieldGoalsMade: 2, ExtraPointsMade: 3,
		}
	}
	input := PlayerInput{
		Attributes:    types.PlayerAttributes{PlayerID: "k-1", Position: types.PositionK},
		CurrentSeason: games,
	}

	proj, assessment, err := o.ProjectPlayer(input)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, proj.PointsPPR, 0.1)
	assert.NotNil(t, assessment)
}

func TestProjectBatch_PreservesInputOrder(t *testing.T) {
	o := newTestOrchestrator()

	inputs := make([]PlayerInput, 12)
	for i := range inputs {
		inputs[i] = runningBackInput(fmt.Sprintf("rb-%02d", i))
	}

	batch := o.ProjectBatch(inputs)
	require.Len(t, batch.Results, len(inputs))
	assert.NotEmpty(t, batch.BatchID)
	assert.Equal(t, len(inputs), batch.SuccessCount)
	assert.Zero(t, batch.ErrorCount)

	for i, result := range batch.Results {
		assert.Equal(t, fmt.Sprintf("rb-%02d", i), result.PlayerID)
	}
}

func TestProjectBatch_IsolatesFailures(t *testing.T) {
	o := newTestOrchestrator()

	inputs := []PlayerInput{
		runningBackInput("rb-ok-1"),
		{Attributes: types.PlayerAttributes{PlayerID: "ls-1", Position: "LS"}},
		runningBackInput("rb-ok-2"),
	}

	batch := o.ProjectBatch(inputs)
	require.Len(t, batch.Results, 3)
	assert.Equal(t, 2, batch.SuccessCount)
	assert.Equal(t, 1, batch.ErrorCount)

	assert.NoError(t, batch.Results[0].Err)
	assert.Error(t, batch.Results[1].Err)
	assert.Nil(t, batch.Results[1].Projection)
	assert.NoError(t, batch.Results[2].Err)
	assert.NotNil(t, batch.Results[2].Projection)
}

func TestProjectBatch_Empty(t *testing.T) {
	o := newTestOrchestrator()

	batch := o.ProjectBatch(nil)
	assert.Empty(t, batch.Results)
	assert.Zero(t, batch.SuccessCount)
	assert.Zero(t, batch.ErrorCount)
}

func TestEvaluateHealth_HealthyBatch(t *testing.T) {
	o := newTestOrchestrator()

	inputs := []PlayerInput{runningBackInput("rb-1"), runningBackInput("rb-2")}
	batch := o.ProjectBatch(inputs)

	diagnostic := EvaluateHealth(batch)
	assert.Equal(t, HealthHealthy, diagnostic.Status)
	assert.Equal(t, 2, diagnostic.Checked)
	assert.Empty(t, diagnostic.Issues)
	assert.NotEmpty(t, diagnostic.ID)
}

func TestEvaluateHealth_SkipsFailedSlots(t *testing.T) {
	batch := &BatchResult{
		Results: []PlayerResult{
			{PlayerID: "ls-1", Err: &types.UnsupportedPositionError{Position: "LS"}},
		},
	}

	diagnostic := EvaluateHealth(batch)
	assert.Equal(t, HealthHealthy, diagnostic.Status)
	assert.Zero(t, diagnostic.Checked)
}

func wellFormedResult(playerID string) PlayerResult {
	return PlayerResult{
		PlayerID: playerID,
		Projection: &types.Projection{
			PlayerID: playerID, PointsPPR: 12.4, PointsHalfPPR: 10.9, PointsStandard: 9.4,
			Floor: 4.1, Ceiling: 20.7, BoomProbability: 0.2, BustProbability: 0.1,
		},
		Risk: &types.RiskAssessment{
			PlayerID: playerID, StandardDeviationRisk: 0.4, ProjectionDifferenceRisk: 0.3,
			LatentRisk: 0.35, CombinedRisk: 0.35, ConfidenceLevel: 0.75,
		},
	}
}

func TestEvaluateHealth_SoftAnomalyShareFlagsConcerning(t *testing.T) {
	results := make([]PlayerResult, 0, 10)
	for i := 0; i < 8; i++ {
		results = append(results, wellFormedResult(fmt.Sprintf("rb-%02d", i)))
	}

	// Probabilities nudged just past their bounds: worth attention, not
	// proof of a broken model
	boomDrift := wellFormedResult("wr-drift-1")
	boomDrift.Projection.BoomProbability = 1.0001
	bustDrift := wellFormedResult("wr-drift-2")
	bustDrift.Projection.BustProbability = -0.0001
	results = append(results, boomDrift, bustDrift)

	diagnostic := EvaluateHealth(&BatchResult{Results: results})
	assert.Equal(t, HealthConcerning, diagnostic.Status)
	assert.Equal(t, 10, diagnostic.Checked)
	assert.Len(t, diagnostic.Issues, 2)
}

func TestEvaluateHealth_IsolatedSoftAnomalyStaysHealthy(t *testing.T) {
	results := make([]PlayerResult, 0, 20)
	for i := 0; i < 19; i++ {
		results = append(results, wellFormedResult(fmt.Sprintf("rb-%02d", i)))
	}
	drift := wellFormedResult("wr-drift")
	drift.Projection.BoomProbability = 1.0001
	results = append(results, drift)

	// One anomaly in twenty sits under the concerning ratio
	diagnostic := EvaluateHealth(&BatchResult{Results: results})
	assert.Equal(t, HealthHealthy, diagnostic.Status)
	assert.Len(t, diagnostic.Issues, 1)
}

func TestEvaluateHealth_FlagsOutOfRangeRisk(t *testing.T) {
	batch := &BatchResult{
		Results: []PlayerResult{
			{
				PlayerID:   "rb-1",
				Projection: &types.Projection{PlayerID: "rb-1"},
				Risk: &types.RiskAssessment{
					PlayerID:        "rb-1",
					CombinedRisk:    1.7,
					ConfidenceLevel: 0.75,
				},
			},
		},
	}

	diagnostic := EvaluateHealth(batch)
	assert.Equal(t, HealthInvalid, diagnostic.Status)
	assert.NotEmpty(t, diagnostic.Issues)
}

func BenchmarkProjectBatch(b *testing.B) {
	o := newTestOrchestrator()
	inputs := make([]PlayerInput, 50)
	for i := range inputs {
		inputs[i] = runningBackInput(fmt.Sprintf("rb-%02d", i))
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		o.ProjectBatch(inputs)
	}
}

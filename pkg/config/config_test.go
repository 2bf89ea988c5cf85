package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.95, cfg.DecayRate)
	assert.Equal(t, 17, cfg.SeasonGames)
	assert.InDelta(t, 1.0, cfg.StdDevRiskWeight+cfg.ProjDiffRiskWeight+cfg.LatentRiskWeight, 1e-9)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestValidate_DecayRateBounds(t *testing.T) {
	tests := []struct {
		decay float64
		valid bool
	}{
		{0.95, true},
		{1.0, true},
		{0.01, true},
		{0.0, false},
		{-0.5, false},
		{1.01, false},
	}

	for _, tc := range tests {
		cfg := Default()
		cfg.DecayRate = tc.decay
		err := cfg.Validate()
		if tc.valid {
			assert.NoError(t, err, "decay %v", tc.decay)
		} else {
			assert.Error(t, err, "decay %v", tc.decay)
		}
	}
}

func TestValidate_RiskWeightsMustSumToOne(t *testing.T) {
	cfg := Default()
	cfg.StdDevRiskWeight = 0.5
	cfg.ProjDiffRiskWeight = 0.5
	cfg.LatentRiskWeight = 0.5

	assert.Error(t, cfg.Validate())

	cfg.LatentRiskWeight = 0.0
	assert.NoError(t, cfg.Validate(), "any weighting summing to 1.0 is acceptable")
}

func TestValidate_SeasonGames(t *testing.T) {
	cfg := Default()
	cfg.SeasonGames = 0
	assert.Error(t, cfg.Validate())

	cfg.SeasonGames = 14
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 0.95, cfg.DecayRate)
	assert.Equal(t, 17, cfg.SeasonGames)
	assert.Equal(t, 0, cfg.BatchWorkers)
}

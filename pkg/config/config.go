package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config carries the engine tunables. Every value has a default matching
// the published model constants, so a zero-configuration load produces
// the reference behavior.
type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Performance weighting
	DecayRate float64 `mapstructure:"DECAY_RATE"`

	// Batch projection generation
	BatchWorkers int `mapstructure:"BATCH_WORKERS"` // 0 = one per CPU

	// Season length used for season-scope projections and missed-game
	// counting
	SeasonGames int `mapstructure:"SEASON_GAMES"`

	// Three-factor risk model combination weights
	StdDevRiskWeight     float64 `mapstructure:"STDDEV_RISK_WEIGHT"`
	ProjDiffRiskWeight   float64 `mapstructure:"PROJDIFF_RISK_WEIGHT"`
	LatentRiskWeight     float64 `mapstructure:"LATENT_RISK_WEIGHT"`
}

// LoadConfig reads engine configuration from .env / environment with
// model defaults
func LoadConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")

	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("DECAY_RATE", 0.95)
	viper.SetDefault("BATCH_WORKERS", 0)
	viper.SetDefault("SEASON_GAMES", 17)
	viper.SetDefault("STDDEV_RISK_WEIGHT", 0.35)
	viper.SetDefault("PROJDIFF_RISK_WEIGHT", 0.30)
	viper.SetDefault("LATENT_RISK_WEIGHT", 0.35)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Default returns the reference configuration without touching the
// environment. Tests use this to build isolated engine instances.
func Default() *Config {
	return &Config{
		Env:                "development",
		DecayRate:          0.95,
		BatchWorkers:       0,
		SeasonGames:        17,
		StdDevRiskWeight:   0.35,
		ProjDiffRiskWeight: 0.30,
		LatentRiskWeight:   0.35,
	}
}

// Validate rejects configurations the model math cannot support
func (c *Config) Validate() error {
	if c.DecayRate <= 0 || c.DecayRate > 1 {
		return fmt.Errorf("DECAY_RATE must be in (0,1], got %v", c.DecayRate)
	}
	if c.SeasonGames < 1 {
		return fmt.Errorf("SEASON_GAMES must be >= 1, got %d", c.SeasonGames)
	}
	weightSum := c.StdDevRiskWeight + c.ProjDiffRiskWeight + c.LatentRiskWeight
	if weightSum < 0.999 || weightSum > 1.001 {
		return fmt.Errorf("risk weights must sum to 1.0, got %v", weightSum)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

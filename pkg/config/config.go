package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	SourceURL     string        `mapstructure:"GRAPHQL_SOURCE_URL" validate:"required,url"`
	SourceTimeout time.Duration `mapstructure:"SOURCE_TIMEOUT" validate:"gt=0"`
	Port          string        `mapstructure:"PORT" validate:"required"`
	IsProduction  bool          `mapstructure:"IS_PRODUCTION"`

	ModelPath string `mapstructure:"MODEL_PATH" validate:"required"`
	RiskTopN  int    `mapstructure:"RISK_TOP_N" validate:"min=1"`

	// Balance fetching: the cap bounds how many accounts are considered,
	// workers bounds the concurrent sub-fetches.
	BalanceAccountCap int `mapstructure:"BALANCE_ACCOUNT_CAP" validate:"min=1"`
	BalanceWorkers    int `mapstructure:"BALANCE_WORKERS" validate:"min=1"`

	// RateLimit uses the limiter formatted syntax, e.g. "100-M".
	RateLimit string `mapstructure:"RATE_LIMIT" validate:"required"`

	PosthogAPIKey string `mapstructure:"POSTHOG_API_KEY"`
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("GRAPHQL_SOURCE_URL", "https://ms-contabilidad.onrender.com/graphql")
	viper.SetDefault("SOURCE_TIMEOUT", "10s")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MODEL_PATH", "model/overdue_forest.json")
	viper.SetDefault("RISK_TOP_N", 10)
	viper.SetDefault("BALANCE_ACCOUNT_CAP", 5)
	viper.SetDefault("BALANCE_WORKERS", 10)
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{
		SourceURL:         viper.GetString("GRAPHQL_SOURCE_URL"),
		SourceTimeout:     viper.GetDuration("SOURCE_TIMEOUT"),
		Port:              viper.GetString("PORT"),
		IsProduction:      viper.GetBool("IS_PRODUCTION"),
		ModelPath:         viper.GetString("MODEL_PATH"),
		RiskTopN:          viper.GetInt("RISK_TOP_N"),
		BalanceAccountCap: viper.GetInt("BALANCE_ACCOUNT_CAP"),
		BalanceWorkers:    viper.GetInt("BALANCE_WORKERS"),
		RateLimit:         viper.GetString("RATE_LIMIT"),
		PosthogAPIKey:     viper.GetString("POSTHOG_API_KEY"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

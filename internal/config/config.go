package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config carries all process-wide settings. It is loaded once at startup and
// shared read-only across requests.
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`

	DatabaseURL string `mapstructure:"DATABASE_URL"`

	StripeAPIKey        string `mapstructure:"STRIPE_API_KEY"`
	StripeWebhookSecret string `mapstructure:"STRIPE_WEBHOOK_SECRET"`

	// TrialPeriodDays is the process-wide fallback applied when a recurring
	// price carries no trial period of its own.
	TrialPeriodDays int64 `mapstructure:"TRIAL_PERIOD_DAYS"`

	SyncMaxAttempts int           `mapstructure:"SYNC_MAX_ATTEMPTS"`
	SyncBaseDelay   time.Duration `mapstructure:"SYNC_BASE_DELAY"`
}

var ErrMissingDatabaseURL = errors.New("missing_database_url")

func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("TRIAL_PERIOD_DAYS", 0)
	v.SetDefault("SYNC_MAX_ATTEMPTS", 3)
	v.SetDefault("SYNC_BASE_DELAY", time.Second)

	for _, key := range []string{
		"ENVIRONMENT",
		"HTTP_ADDR",
		"DATABASE_URL",
		"STRIPE_API_KEY",
		"STRIPE_WEBHOOK_SECRET",
		"TRIAL_PERIOD_DAYS",
		"SYNC_MAX_ATTEMPTS",
		"SYNC_BASE_DELAY",
	} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return Config{}, ErrMissingDatabaseURL
	}
	return cfg, nil
}

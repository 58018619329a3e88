package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	require.ErrorIs(t, err, ErrMissingDatabaseURL)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subsync_test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.EqualValues(t, 0, cfg.TrialPeriodDays)
	assert.Equal(t, 3, cfg.SyncMaxAttempts)
	assert.Equal(t, time.Second, cfg.SyncBaseDelay)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/subsync_test")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("STRIPE_API_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("TRIAL_PERIOD_DAYS", "14")
	t.Setenv("SYNC_MAX_ATTEMPTS", "5")
	t.Setenv("SYNC_BASE_DELAY", "250ms")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "sk_test_123", cfg.StripeAPIKey)
	assert.Equal(t, "whsec_123", cfg.StripeWebhookSecret)
	assert.EqualValues(t, 14, cfg.TrialPeriodDays)
	assert.Equal(t, 5, cfg.SyncMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.SyncBaseDelay)
}

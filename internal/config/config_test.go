package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err, "an absent .env is the normal case")

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, int64(5000), cfg.Store.ShippingFee)
	assert.Equal(t, 2*time.Second, cfg.Store.PaymentDelay)
	assert.Equal(t, 3, cfg.Store.LowStockThreshold)
	assert.False(t, cfg.Redis.RateLimitEnabled)
	assert.Equal(t, 120, cfg.Redis.RateLimitPerMin)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SHIPPING_FEE", "7000")
	t.Setenv("PAYMENT_DELAY_MS", "50")
	t.Setenv("LOW_STOCK_THRESHOLD", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(7000), cfg.Store.ShippingFee)
	assert.Equal(t, 50*time.Millisecond, cfg.Store.PaymentDelay)
	assert.Equal(t, 1, cfg.Store.LowStockThreshold)
}

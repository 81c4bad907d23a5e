package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "storefront:cart", cfg.CartSlotKey)
	assert.Equal(t, time.Duration(0), cfg.CartTTL())
	assert.Equal(t, 3*time.Second, cfg.ToastDuration())
	assert.Equal(t, 10*time.Second, cfg.BreakerTimeout())
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Empty(t, cfg.CatalogPath)
	assert.False(t, cfg.OTELEnabled)
	assert.Equal(t, 20.0, cfg.CartRateLimitRPS)
	assert.Equal(t, 40, cfg.CartRateLimitBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "redis")
	t.Setenv("REDIS_ADDR", "redis.local:6380")
	t.Setenv("CART_TTL_HOURS", "24")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("TOAST_DURATION_MS", "1500")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StorageRedis, cfg.StorageDriver)
	assert.Equal(t, "redis.local:6380", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL())
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 1500*time.Millisecond, cfg.ToastDuration())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"http port", "HTTP_PORT", "0", "invalid HTTP port"},
		{"storage driver", "STORAGE_DRIVER", "sqlite", "STORAGE_DRIVER must be one of"},
		{"negative ttl", "CART_TTL_HOURS", "-1", "CART_TTL_HOURS must not be negative"},
		{"toast duration", "TOAST_DURATION_MS", "-5", "TOAST_DURATION_MS must be positive"},
		{"rate limit", "CART_RATE_LIMIT_RPS", "-1", "CART_RATE_LIMIT_RPS must not be negative"},
		{"breaker ratio", "SLOT_BREAKER_FAILURE_RATIO", "1.5", "SLOT_BREAKER_FAILURE_RATIO"},
		{"sample rate", "OTEL_SAMPLE_RATE", "2.0", "OTEL_SAMPLE_RATE must be between 0.0 and 1.0"},
		{"unparsable port", "HTTP_PORT", "eighty", "load storefront config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

package config

import (
	"fmt"
	"slices"
	"time"

	pkgconfig "github.com/utafrali/storefront/pkg/config"
)

// Storage drivers for the cart slot.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// Config holds all configuration for the storefront.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Cart slot
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	CartSlotKey   string `env:"CART_SLOT_KEY" envDefault:"storefront:cart"`
	CartTTLHours  int    `env:"CART_TTL_HOURS" envDefault:"0"`

	// Redis
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"storefront"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"storefront"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"storefront"`
	PostgresSSL  string `env:"POSTGRES_SSL_MODE" envDefault:"disable"`

	// Slot circuit breaker
	BreakerTimeoutSecs  int     `env:"SLOT_BREAKER_TIMEOUT_SECONDS" envDefault:"10"`
	BreakerMinRequests  uint32  `env:"SLOT_BREAKER_MIN_REQUESTS" envDefault:"5"`
	BreakerFailureRatio float64 `env:"SLOT_BREAKER_FAILURE_RATIO" envDefault:"0.5"`

	// Kafka. No brokers disables cart events.
	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	// Catalog file. Empty uses the built-in catalog.
	CatalogPath string `env:"CATALOG_PATH" envDefault:""`

	// Toast
	ToastDurationMs int `env:"TOAST_DURATION_MS" envDefault:"3000"`

	// Cart writes; RPS 0 disables limiting.
	CartRateLimitRPS   float64 `env:"CART_RATE_LIMIT_RPS" envDefault:"20"`
	CartRateLimitBurst int     `env:"CART_RATE_LIMIT_BURST" envDefault:"40"`

	// OpenTelemetry
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// CartTTL returns the slot expiry. Zero means the slot never expires.
func (c *Config) CartTTL() time.Duration {
	return time.Duration(c.CartTTLHours) * time.Hour
}

// ToastDuration returns how long toast messages stay visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.ToastDurationMs) * time.Millisecond
}

// BreakerTimeout returns how long the slot breaker stays open.
func (c *Config) BreakerTimeout() time.Duration {
	return time.Duration(c.BreakerTimeoutSecs) * time.Second
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if !slices.Contains([]string{StorageMemory, StorageRedis, StoragePostgres}, c.StorageDriver) {
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, redis, postgres: got %q", c.StorageDriver)
	}
	if c.CartSlotKey == "" {
		return fmt.Errorf("CART_SLOT_KEY must not be empty")
	}
	if c.CartTTLHours < 0 {
		return fmt.Errorf("CART_TTL_HOURS must not be negative: %d", c.CartTTLHours)
	}
	if c.ToastDurationMs <= 0 {
		return fmt.Errorf("TOAST_DURATION_MS must be positive: %d", c.ToastDurationMs)
	}
	if c.CartRateLimitRPS < 0 {
		return fmt.Errorf("CART_RATE_LIMIT_RPS must not be negative: %v", c.CartRateLimitRPS)
	}
	if c.BreakerFailureRatio <= 0 || c.BreakerFailureRatio > 1 {
		return fmt.Errorf("SLOT_BREAKER_FAILURE_RATIO must be in (0, 1]: %v", c.BreakerFailureRatio)
	}
	if c.OTELSampleRate < 0 || c.OTELSampleRate > 1 {
		return fmt.Errorf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0: %v", c.OTELSampleRate)
	}
	return nil
}

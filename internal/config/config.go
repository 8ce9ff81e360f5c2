package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	DatabaseURL        string
	RedisURL           string
	JWTSecret          string
	JWTIssuer          string
	JWTClockSkew       time.Duration
	CORSAllowedOrigins []string
	IdempotencyTTL     time.Duration
	MigrateOnStart     bool
	CurrencyCode       string

	ShippingBaseFee     decimal.Decimal
	ShippingPerKmRate   decimal.Decimal
	ShippingFeeDecimals int32

	RoutingBaseURL             string
	RoutingTimeout             time.Duration
	RoutingBreakerMinReq       int
	RoutingBreakerFailureRatio float64
	RoutingBreakerOpenFor      time.Duration
	RoutingMaxAttempts         int

	CheckoutMaxOrderTotal decimal.Decimal
	CheckoutLockTTL       time.Duration
	CheckoutRateLimit     int
	CheckoutRateWindow    time.Duration
	RateLimitDriver       string
	LockRetryBackoff      time.Duration
	MaxBodyBytes          int64

	StoreCacheTTL time.Duration

	QueueConcurrency   int
	EventsWebhookURL   string
	EventsTimeout      time.Duration
	RetryBase          time.Duration
	RetryMaxAttempts   int
	RetryJitterPercent int
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:        k.String("DATABASE_URL"),
		RedisURL:           k.String("REDIS_URL"),
		JWTSecret:          k.String("JWT_SECRET"),
		JWTIssuer:          strings.TrimSpace(k.String("JWT_ISSUER")),
		JWTClockSkew:       parseDuration(k.String("JWT_CLOCK_SKEW"), "30s"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
		IdempotencyTTL:     parseDuration(k.String("IDEMPOTENCY_TTL"), "24h"),
		MigrateOnStart:     parseBool(k.String("MIGRATE_ON_START")),
		CurrencyCode:       valueOrDefault(k.String("CURRENCY_CODE"), "VND"),

		ShippingBaseFee:     parseDecimal(k.String("SHIPPING_BASE_FEE"), "15000"),
		ShippingPerKmRate:   parseDecimal(k.String("SHIPPING_PER_KM_RATE"), "4000"),
		ShippingFeeDecimals: int32(parseInt(k.String("SHIPPING_FEE_DECIMALS"), 0)),

		RoutingBaseURL:             strings.TrimRight(strings.TrimSpace(k.String("ROUTING_BASE_URL")), "/"),
		RoutingTimeout:             parseDuration(k.String("ROUTING_TIMEOUT"), "3s"),
		RoutingBreakerMinReq:       parseInt(k.String("ROUTING_BREAKER_MIN_REQ"), 10),
		RoutingBreakerFailureRatio: parseFloat(k.String("ROUTING_BREAKER_FAILURE_RATIO"), 0.5),
		RoutingBreakerOpenFor:      parseDuration(k.String("ROUTING_BREAKER_OPEN_FOR"), "30s"),
		RoutingMaxAttempts:         parseInt(k.String("ROUTING_MAX_ATTEMPTS"), 1),

		CheckoutMaxOrderTotal: parseDecimal(k.String("CHECKOUT_MAX_ORDER_TOTAL"), "50000000"),
		CheckoutLockTTL:       parseDuration(k.String("CHECKOUT_LOCK_TTL"), "15s"),
		CheckoutRateLimit:     parseInt(k.String("CHECKOUT_RATE_LIMIT"), 10),
		CheckoutRateWindow:    parseDuration(k.String("CHECKOUT_RATE_WINDOW"), "1m"),
		RateLimitDriver:       strings.ToLower(valueOrDefault(k.String("RATE_LIMIT_DRIVER"), "sliding")),
		LockRetryBackoff:      parseDuration(k.String("LOCK_RETRY_BACKOFF"), "50ms"),
		MaxBodyBytes:          int64(parseInt(k.String("MAX_BODY_BYTES"), 1<<20)),

		StoreCacheTTL: parseDuration(k.String("STORE_CACHE_TTL"), "5m"),

		QueueConcurrency:   parseInt(k.String("QUEUE_CONCURRENCY"), 5),
		EventsWebhookURL:   strings.TrimSpace(k.String("EVENTS_WEBHOOK_URL")),
		EventsTimeout:      parseDuration(k.String("EVENTS_TIMEOUT"), "5s"),
		RetryBase:          parseDuration(k.String("RETRY_BASE"), "200ms"),
		RetryMaxAttempts:   parseInt(k.String("RETRY_MAX_ATTEMPTS"), 3),
		RetryJitterPercent: parseInt(k.String("RETRY_JITTER_PERCENT"), 20),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.ShippingBaseFee.IsNegative() || cfg.ShippingPerKmRate.IsNegative() {
		return nil, errors.New("shipping fees must not be negative")
	}
	if cfg.ShippingFeeDecimals < 0 || cfg.ShippingFeeDecimals > 2 {
		return nil, errors.New("SHIPPING_FEE_DECIMALS must be between 0 and 2")
	}
	if cfg.RateLimitDriver != "sliding" && cfg.RateLimitDriver != "fixed" {
		return nil, errors.New("RATE_LIMIT_DRIVER must be sliding or fixed")
	}
	if !cfg.CheckoutMaxOrderTotal.IsPositive() {
		return nil, errors.New("CHECKOUT_MAX_ORDER_TOTAL must be positive")
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(value string, fallback int) int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func parseFloat(value string, fallback float64) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDecimal(value, fallback string) decimal.Decimal {
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.RequireFromString(fallback)
	}
	return parsed
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}

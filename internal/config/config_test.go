package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func baseEnv() map[string]string {
	return map[string]string{
		"DATABASE_URL":          "postgres://localhost/food",
		"REDIS_URL":             "redis://localhost:6379/0",
		"JWT_SECRET":            "secret",
		"SHIPPING_BASE_FEE":     "",
		"SHIPPING_PER_KM_RATE":  "",
		"SHIPPING_FEE_DECIMALS": "",
		"ROUTING_TIMEOUT":       "",
		"CURRENCY_CODE":         "",
		"RATE_LIMIT_DRIVER":     "",
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(baseEnv())
	require.NoError(t, err)
	require.Equal(t, "15000", cfg.ShippingBaseFee.String())
	require.Equal(t, "4000", cfg.ShippingPerKmRate.String())
	require.Equal(t, int32(0), cfg.ShippingFeeDecimals)
	require.Equal(t, 3*time.Second, cfg.RoutingTimeout)
	require.Equal(t, "VND", cfg.CurrencyCode)
	require.Equal(t, "50000000", cfg.CheckoutMaxOrderTotal.String())
	require.Equal(t, "sliding", cfg.RateLimitDriver)
}

func TestLoadOverrides(t *testing.T) {
	env := baseEnv()
	env["SHIPPING_BASE_FEE"] = "12000.50"
	env["SHIPPING_FEE_DECIMALS"] = "2"
	env["ROUTING_TIMEOUT"] = "750ms"
	env["ROUTING_BASE_URL"] = "http://osrm.local/"
	cfg, err := LoadForTests(env)
	require.NoError(t, err)
	require.Equal(t, "12000.5", cfg.ShippingBaseFee.String())
	require.Equal(t, int32(2), cfg.ShippingFeeDecimals)
	require.Equal(t, 750*time.Millisecond, cfg.RoutingTimeout)
	require.Equal(t, "http://osrm.local", cfg.RoutingBaseURL)
}

func TestLoadRequiresSecrets(t *testing.T) {
	env := baseEnv()
	env["JWT_SECRET"] = ""
	_, err := LoadForTests(env)
	require.EqualError(t, err, "JWT_SECRET is required")
}

func TestLoadRejectsFeeDecimalsOutOfRange(t *testing.T) {
	env := baseEnv()
	env["SHIPPING_FEE_DECIMALS"] = "5"
	_, err := LoadForTests(env)
	require.Error(t, err)
}

func TestLoadRejectsUnknownRateLimitDriver(t *testing.T) {
	env := baseEnv()
	env["RATE_LIMIT_DRIVER"] = "token-bucket"
	_, err := LoadForTests(env)
	require.EqualError(t, err, "RATE_LIMIT_DRIVER must be sliding or fixed")
}

func TestHTTPAddr(t *testing.T) {
	require.Equal(t, ":8080", (&Config{}).HTTPAddr())
	require.Equal(t, ":9000", (&Config{Port: "9000"}).HTTPAddr())
	require.Equal(t, ":9001", (&Config{Port: ":9001"}).HTTPAddr())
}

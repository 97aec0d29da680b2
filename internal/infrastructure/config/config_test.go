package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{Name: "test", Env: "development", Port: "8080"},
		Services: ServicesConfig{
			CartBaseURL:    "http://cart.local",
			ProductBaseURL: "http://product.local",
			OrderBaseURL:   "http://order.local",
			TimeoutSeconds: 10,
		},
		Checkout: CheckoutConfig{AutoSelectNewLines: true, IdempotencyTTL: time.Hour},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing service url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.ProductBaseURL = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("malformed service url", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.CartBaseURL = "not-a-url"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive timeout", func(t *testing.T) {
		cfg := validConfig()
		cfg.Services.TimeoutSeconds = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("production requires jwt secret", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Env = "production"
		assert.Error(t, cfg.Validate())

		cfg.JWT.Secret = "secret"
		assert.NoError(t, cfg.Validate())
	})
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SHOP_SERVICES_CART_BASE_URL", "http://cart.local")
	t.Setenv("SHOP_SERVICES_PRODUCT_BASE_URL", "http://product.local")
	t.Setenv("SHOP_SERVICES_ORDER_BASE_URL", "http://order.local")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Checkout.AutoSelectNewLines)
	assert.Equal(t, 24*time.Hour, cfg.Checkout.IdempotencyTTL)
	assert.False(t, cfg.IsProduction())
}

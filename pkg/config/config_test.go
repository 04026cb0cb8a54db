// nolint: funlen
package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danrneal/fs-casting-agency/pkg/config"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads config from environment variables", func(t *testing.T) {
		// Setup environment variables
		envVars := map[string]string{
			"APP_ENV":       "test",
			"PORT":          "8080",
			"SENTRY_DSN":    "https://test@sentry.io/123",
			"ALLOW_ORIGINS": "*",
			"DB_NAME":       "testdb",
			"DB_HOST":       "localhost",
			"DB_PORT":       "5432",
			"DB_USER":       "testuser",
			"DB_PASS":       "testpass",
			"ENABLE_SSL":    "true",

			"AUTH0_DOMAIN":    "test.auth0.com",
			"AUTH0_CLIENT_ID": "test-client-id",
			"AUTH0_AUDIENCE":  "casting-agency",
			"AUTH0_JWKS_TTL":  "600",
		}

		// Set environment variables
		for key, value := range envVars {
			t.Setenv(key, value)
		}

		// Load config
		cfg, err := config.LoadConfig()

		// Assertions
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "test", cfg.AppEnv)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "https://test@sentry.io/123", cfg.SentryDSN)
		assert.Equal(t, "*", cfg.AllowOrigins)
		assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
		assert.Equal(t, "testdb", cfg.DB.Name)
		assert.Equal(t, "localhost", cfg.DB.Host)
		assert.Equal(t, 5432, cfg.DB.Port)
		assert.Equal(t, "testuser", cfg.DB.User)
		assert.Equal(t, "testpass", cfg.DB.Pass)
		assert.True(t, cfg.DB.EnableSSL)
		assert.Equal(t, "test.auth0.com", cfg.Auth.Domain)
		assert.Equal(t, "test-client-id", cfg.Auth.ClientID)
		assert.Equal(t, "casting-agency", cfg.Auth.Audience)
		assert.Equal(t, 600, cfg.Auth.JWKSCacheTTL)
		assert.Equal(t, 10*time.Minute, cfg.JWKSTTL())
		assert.Equal(t, "https://test.auth0.com/", cfg.Issuer())
		assert.Equal(t, "https://test.auth0.com/.well-known/jwks.json", cfg.JWKSURL())
	})

	t.Run("handles invalid JWKS TTL", func(t *testing.T) {
		t.Setenv("AUTH0_JWKS_TTL", "not-a-number")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid port number", func(t *testing.T) {
		t.Setenv("PORT", "invalid")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid boolean value", func(t *testing.T) {
		t.Setenv("ENABLE_SSL", "not-a-boolean")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})

	t.Run("handles invalid DB port", func(t *testing.T) {
		t.Setenv("DB_PORT", "not-a-number")

		cfg, err := config.LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "load config error")
	})
}

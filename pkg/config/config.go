package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var Empty = new(Config)

type Config struct {
	AppEnv       string `envconfig:"APP_ENV"`
	Port         int    `envconfig:"PORT"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS"`

	DB struct {
		Name      string `envconfig:"DB_NAME"`
		Host      string `envconfig:"DB_HOST"`
		Port      int    `envconfig:"DB_PORT"`
		User      string `envconfig:"DB_USER"`
		Pass      string `envconfig:"DB_PASS"`
		EnableSSL bool   `envconfig:"ENABLE_SSL"`
	}
	Auth struct {
		Domain       string `envconfig:"AUTH0_DOMAIN"`
		ClientID     string `envconfig:"AUTH0_CLIENT_ID"`
		Audience     string `envconfig:"AUTH0_AUDIENCE"`
		JWKSCacheTTL int    `envconfig:"AUTH0_JWKS_TTL"`
	}
}

// AllowedOrigins splits the comma-separated ALLOW_ORIGINS value.
func (c *Config) AllowedOrigins() []string {
	if c.AllowOrigins == "" {
		return nil
	}
	parts := strings.Split(c.AllowOrigins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// JWKSTTL interprets AUTH0_JWKS_TTL as seconds. Zero means the cache
// falls back to its default refresh interval.
func (c *Config) JWKSTTL() time.Duration {
	return time.Duration(c.Auth.JWKSCacheTTL) * time.Second
}

// Issuer returns the token issuer URL derived from the Auth0 domain.
func (c *Config) Issuer() string {
	return fmt.Sprintf("https://%s/", c.Auth.Domain)
}

// JWKSURL returns the identity provider's published key set endpoint.
func (c *Config) JWKSURL() string {
	return fmt.Sprintf("https://%s/.well-known/jwks.json", c.Auth.Domain)
}

func LoadConfig() (*Config, error) {
	// load default .env file, ignore the error
	_ = godotenv.Load()

	cfg := new(Config)
	err := envconfig.Process("", cfg)
	if err != nil {
		return nil, fmt.Errorf("load config error: %v", err)
	}

	return cfg, nil
}

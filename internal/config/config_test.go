package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Env:        "development",
			Port:       "8460",
			JWTSecret:  "secure-secret-at-least-32-chars-long",
			DBPassword: "secure-password",
			DBSSLMode:  "disable",
			RedisURL:   "localhost:6379",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"production with default JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"production with short JWT secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "too-short"
		}, true},
		{"production with default DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"production with empty DB password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = ""
		}, true},
		{"valid production config", func(c *Config) {
			c.Env = "production"
			c.DBSSLMode = "require"
		}, false},
		{"prod alias gets the same checks", func(c *Config) {
			c.Env = "prod"
			c.JWTSecret = "too-short"
		}, true},
		{"development allows short JWT secret", func(c *Config) {
			c.JWTSecret = "dev-secret"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

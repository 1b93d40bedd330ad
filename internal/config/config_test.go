package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Port:       "8390",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
		Env:        "development",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid development config", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		c := validConfig()
		c.Port = ""
		assert.Error(t, c.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		c := validConfig()
		c.JWTSecret = ""
		assert.Error(t, c.Validate())
	})

	t.Run("short jwt secret allowed outside production", func(t *testing.T) {
		c := validConfig()
		c.JWTSecret = "short-secret"
		assert.NoError(t, c.Validate())
	})
}

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"hardened config passes", func(c *Config) {}, false},
		{"default jwt secret refused", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret refused", func(c *Config) {
			c.JWTSecret = "too-short"
		}, true},
		{"default db password refused", func(c *Config) {
			c.DBPassword = "password"
		}, true},
		{"empty db password refused", func(c *Config) {
			c.DBPassword = ""
		}, true},
		{"dev admin bootstrap refused", func(c *Config) {
			c.DevBootstrapAdmin = true
		}, true},
	}

	for _, env := range []string{"production", "prod"} {
		for _, tt := range tests {
			t.Run(env+" "+tt.name, func(t *testing.T) {
				c := validConfig()
				c.Env = env
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
}

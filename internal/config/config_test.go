package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validDevConfig() *Config {
	return &Config{
		JWTSecret:  "your-secret-key-change-in-production",
		Port:       "8375",
		DBHost:     "localhost",
		DBPort:     "5432",
		DBUser:     "user",
		DBPassword: "password",
		DBName:     "devlink",
		DBSSLMode:  "disable",
		Env:        "development",
	}
}

func TestValidate(t *testing.T) {
	t.Run("development defaults pass", func(t *testing.T) {
		assert.NoError(t, validDevConfig().Validate())
	})

	t.Run("missing port", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Port = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.JWTSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("production rejects default jwt secret", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("production rejects short jwt secret", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "short-secret"
		cfg.DBPassword = "a-real-password"
		cfg.DBSSLMode = "require"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "32 characters")
	})

	t.Run("production rejects weak db password", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-very-long-production-secret-key-123456"
		cfg.DBSSLMode = "require"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_PASSWORD")
	})

	t.Run("production requires ssl", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-very-long-production-secret-key-123456"
		cfg.DBPassword = "a-real-password"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "DB_SSLMODE")
	})

	t.Run("production with strict values passes", func(t *testing.T) {
		cfg := validDevConfig()
		cfg.Env = "production"
		cfg.JWTSecret = "a-very-long-production-secret-key-123456"
		cfg.DBPassword = "a-real-password"
		cfg.DBSSLMode = "require"
		assert.NoError(t, cfg.Validate())
	})
}

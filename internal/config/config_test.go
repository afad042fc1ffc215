package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 15, cfg.App.ShutdownTimeoutSeconds)
	assert.Equal(t, 24, cfg.JWT.ExpiryHours)
	assert.Equal(t, 300, cfg.Cache.ListTTLSeconds)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_LIST_TTL_SECONDS", "60")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg, err := LoadConfig(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, 60, cfg.Cache.ListTTLSeconds)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DB:    DatabaseConfig{Host: "localhost", Name: "user_management"},
			JWT:   JWTConfig{Secret: "test-secret"},
			Cache: CacheConfig{ListTTLSeconds: 300},
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		cfg := valid()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing db name", func(t *testing.T) {
		cfg := valid()
		cfg.DB.Name = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive list ttl", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.ListTTLSeconds = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "postgres",
		Password: "postgres",
		Name:     "user_management",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost user=postgres password=postgres dbname=user_management port=5432 sslmode=disable",
		db.DSN(),
	)
}

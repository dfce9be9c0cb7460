package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "world", cfg.Database.Name)
	assert.False(t, cfg.Redis.Enabled())

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "debug", cfg.Observability.GetLogLevel())
	assert.Equal(t, 100*time.Millisecond, cfg.Observability.Logging.SlowQueryThreshold)
	assert.False(t, cfg.Observability.NewRelic.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("WORLD_PRIMARY__ENV", "production")
	t.Setenv("WORLD_DATABASE__HOST", "db.internal")
	t.Setenv("WORLD_DATABASE__PORT", "6432")
	t.Setenv("WORLD_DATABASE__PASSWORD", "p@ss:word")
	t.Setenv("WORLD_REDIS__ADDRESS", "redis:6379")
	t.Setenv("WORLD_OBSERVABILITY__LOGGING__FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Primary.Env)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
	assert.Equal(t, "production", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.GetLogLevel())
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("WORLD_OBSERVABILITY__LOGGING__LEVEL", "verbose")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "::1",
		Port:     5432,
		User:     "root",
		Password: "p@ss:word",
		Name:     "world",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://root:p%40ss%3Aword@[::1]:5432/world?sslmode=disable", db.DSN())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "database.max_open_conns", envKey("WORLD_DATABASE__MAX_OPEN_CONNS"))
	assert.Equal(t, "observability.logging.level", envKey("WORLD_OBSERVABILITY__LOGGING__LEVEL"))
}

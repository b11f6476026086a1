package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setValidEnv(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	t.Setenv("USE_CONNECTION_STR", "true")
	t.Setenv("DB_CONNECTION_STR", "postgres://u:p@localhost:5432/db")
	t.Setenv("LOG_LEVEL", "DEBUG")
}

func Test_Config_EnvironmentOverrideWorksCorrect(t *testing.T) {
	setValidEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ALLOW_ORIGIN", "http://a.example, http://b.example")
	t.Setenv("RATE_LIMIT_REQUESTS_PER_SECOND", "3")
	t.Setenv("BYPASS_VERIFICATION", "true")
	t.Setenv("JOB_DEADLINE_SWEEP", "@every 1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowOrigins())
	assert.Equal(t, float64(3), cfg.Server.RateLimitPerSecond)
	assert.True(t, cfg.Server.BypassVerification)
	assert.Equal(t, "@every 1m", cfg.Scheduler.DeadlineSweep)
	assert.Equal(t, "postgres://u:p@localhost:5432/db", cfg.DB.DSN())
}

func Test_Config_Defaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "@every 10m", cfg.Scheduler.DeadlineSweep)
	assert.False(t, cfg.Auth.GoogleEnabled())
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, float64(5), cfg.Notify.MaxPerSecond)
}

func Test_Config_ValidationListsEveryProblem(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("USE_CONNECTION_STR", "false")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("LOG_LEVEL", "LOUD")
	t.Setenv("GIN_MODE", "verbose")
	t.Setenv("NOTIFY_MAX_PER_SECOND", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SECRET_KEY")
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_USERNAME")
	assert.Contains(t, err.Error(), "log_level")
	assert.Contains(t, err.Error(), "GIN_MODE")
	assert.Contains(t, err.Error(), "NOTIFY_MAX_PER_SECOND")
}

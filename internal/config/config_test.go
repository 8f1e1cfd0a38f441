package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medicine-tracker/internal/platform/logger"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "medicine_tracker.db", cfg.SQLitePath)
	assert.True(t, cfg.DevAuth())
	assert.Equal(t, logger.Info, cfg.LogLevel)
	assert.Equal(t, logger.FormatText, cfg.LogFormat)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout)
}

func TestFromEnv_DSNImpliesPostgres(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"DB_DSN":               "postgres://localhost/meds",
		"JWT_SECRET":           "s3cret",
		"LOG_LEVEL":            "debug",
		"LOG_FORMAT":           "json",
		"CORS_ALLOWED_ORIGINS": " https://app.example.com , https://*.onrender.com ,",
	}))
	require.NoError(t, err)

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.False(t, cfg.DevAuth())
	assert.Equal(t, logger.Debug, cfg.LogLevel)
	assert.Equal(t, logger.FormatJSON, cfg.LogFormat)
	assert.Equal(t, []string{"https://app.example.com", "https://*.onrender.com"}, cfg.CORSAllowedOrigins)
}

func TestFromEnv_MemoryIsOptIn(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{"DB_DRIVER": "memory"}))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DBDriver)

	cfg, err = FromEnv(env(map[string]string{"DB_DRIVER": "memory", "DB_DSN": "postgres://localhost/meds"}))
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.DBDriver)
}

func TestFromEnv_Errors(t *testing.T) {
	_, err := FromEnv(env(map[string]string{"DB_DRIVER": "mysql"}))
	assert.ErrorContains(t, err, "unknown DB_DRIVER")

	_, err = FromEnv(env(map[string]string{"DB_DRIVER": "postgres"}))
	assert.ErrorContains(t, err, "DB_DSN is required")

	_, err = FromEnv(env(map[string]string{"RATE_LIMIT_RPS": "fast", "HTTP_READ_TIMEOUT": "soon"}))
	assert.ErrorContains(t, err, "RATE_LIMIT_RPS")
	assert.ErrorContains(t, err, "HTTP_READ_TIMEOUT")

	cfg, err := FromEnv(env(map[string]string{"DB_DRIVER": "SQLite", "RATE_LIMIT_RPS": "0"}))
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, 0.0, cfg.RateLimitRPS)
}

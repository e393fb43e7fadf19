package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origHost := os.Getenv("DB_HOST")
	defer os.Setenv("DB_HOST", origHost)

	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("MINIO_USE_SSL", "true")
	os.Setenv("SESSION_RATE_LIMIT_COUNT", "8")
	os.Setenv("AUTH_CACHE_TTL", "90s")
	defer func() {
		os.Unsetenv("DB_MAX_OPEN_CONNS")
		os.Unsetenv("MINIO_USE_SSL")
		os.Unsetenv("SESSION_RATE_LIMIT_COUNT")
		os.Unsetenv("AUTH_CACHE_TTL")
	}()

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, 8, cfg.Session.RateLimitCount)
	assert.Equal(t, 90*time.Second, cfg.Auth.CacheTTL)
}

func TestSessionDefaults(t *testing.T) {
	os.Unsetenv("SESSION_TTL")
	os.Unsetenv("SESSION_MAX_UPLOADS")
	os.Unsetenv("SESSION_RATE_LIMIT_COUNT")
	os.Unsetenv("SESSION_RATE_LIMIT_WINDOW")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 3, cfg.Session.MaxUploads)
	assert.Equal(t, 5, cfg.Session.RateLimitCount)
	assert.Equal(t, time.Hour, cfg.Session.RateLimitWindow)
}

func TestCleanupDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 90, cfg.Cleanup.DefaultRetentionDays)
	assert.Equal(t, 7, cfg.Cleanup.MinRetentionDays)
	assert.Equal(t, 100, cfg.Cleanup.DefaultBatchSize)
	assert.Equal(t, 1000, cfg.Cleanup.MaxBatchSize)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "not-a-bool")
	assert.False(t, getEnvBool(key, false))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "42")
	assert.Equal(t, 42, getEnvInt(key, 1))

	os.Setenv(key, "not-a-number")
	assert.Equal(t, 1, getEnvInt(key, 1))

	os.Unsetenv(key)
	assert.Equal(t, 1, getEnvInt(key, 1))
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VAR"

	os.Setenv(key, "30m")
	assert.Equal(t, 30*time.Minute, getEnvDuration(key, time.Hour))

	os.Setenv(key, "garbage")
	assert.Equal(t, time.Hour, getEnvDuration(key, time.Hour))

	os.Unsetenv(key)
	assert.Equal(t, time.Hour, getEnvDuration(key, time.Hour))
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "APP_PORT", "LOG_LEVEL", "LOG_JSON", "GIN_MODE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"API_RATE_LIMIT", "API_RATE_WINDOW_SECONDS", "ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT_SECONDS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.LogJSON)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, time.Minute, cfg.APIRateWindow())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("API_RATE_LIMIT", "5")
	t.Setenv("API_RATE_WINDOW_SECONDS", "30")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogJSON)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, 5, cfg.APIRateLimit)
	assert.Equal(t, 30*time.Second, cfg.APIRateWindow())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_RATE_LIMIT", "lots")
	t.Setenv("API_RATE_WINDOW_SECONDS", "-3")
	t.Setenv("REDIS_DB", "x")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.APIRateLimit)
	assert.Equal(t, 60, cfg.APIRateWindowSeconds)
	assert.Equal(t, 0, cfg.RedisDB)
}

func TestUnknownGinModeFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIN_MODE", "production")

	cfg, err := load()
	require.NoError(t, err)
	assert.Equal(t, "release", cfg.GinMode)
}

func TestConfigFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "todo.toml")
	content := `
app_port = "7070"
log_level = "warn"
api_rate_limit = 20
allowed_origins = ["https://todo.example"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("APP_PORT", "7171")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "7171", cfg.AppPort, "env wins over file")
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 20, cfg.APIRateLimit)
	assert.Equal(t, []string{"https://todo.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 60, cfg.APIRateWindowSeconds, "untouched keys keep defaults")
}

func TestConfigFileMissing(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.toml"))

	_, err := load()
	assert.Error(t, err)
}

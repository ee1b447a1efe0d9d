package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manukrishna804/logic-solver-ai/internal/validation"
)

func newValidator(t *testing.T) *validation.JSONSchemaValidator {
	t.Helper()
	v, err := validation.NewJSONSchemaValidator()
	require.NoError(t, err)
	return v
}

func writeSettings(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "gemini-1.5-flash", cfg.Model)
	assert.True(t, cfg.History)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 2, cfg.Retry.Max)
	assert.Equal(t, "history.db", filepath.Base(cfg.DBPath))

	d, err := cfg.Durations()
	require.NoError(t, err)
	assert.Equal(t, 720*time.Hour, d.Retention)
	assert.Equal(t, 60*time.Second, d.RequestTimeout)
	assert.Equal(t, 20*time.Second, d.AttemptTimeout)
	assert.Equal(t, 30*time.Second, d.BreakerCooldown)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"), newValidator(t))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfig_SettingsFile(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	path := writeSettings(t, `{
		"listen_addr": ":8080",
		"history": false,
		"allowed_origins": ["http://localhost:3000"],
		"retry": {"max": 0}
	}`)

	cfg, err := loadConfig(path, newValidator(t))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.False(t, cfg.History)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 0, cfg.Retry.Max)
	assert.Equal(t, "info", cfg.LogLevel, "unset fields keep defaults")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeSettings(t, `{"listen_addr": ":8080", "model": "file-model"}`)
	t.Setenv("LOGICSOLVER_LISTEN_ADDR", ":9090")
	t.Setenv("GOOGLE_API_KEY", "  secret  ")

	cfg, err := loadConfig(path, newValidator(t))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, "file-model", cfg.Model)
	assert.Equal(t, "secret", cfg.APIKey)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	tests := map[string]string{
		"unknown key":    `{"pool_size": 3}`,
		"bad level":      `{"log_level": "loud"}`,
		"bad duration":   `{"retention": "a week"}`,
		"bad threshold":  `{"breaker_threshold": 0}`,
		"malformed json": `{"listen_addr": `,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeSettings(t, body), newValidator(t))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("LOGICSOLVER_LOG_LEVEL", "loud")
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"), newValidator(t))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"LOGICSOLVER_MODEL":             "gemini-2.0-flash",
		"LOGICSOLVER_DB_PATH":           "/tmp/h.db",
		"LOGICSOLVER_HISTORY":           "0",
		"LOGICSOLVER_ALLOWED_ORIGINS":   "http://a.test, http://b.test,",
		"LOGICSOLVER_RETRY_MAX":         "4",
		"LOGICSOLVER_BREAKER_THRESHOLD": "2",
		"LOGICSOLVER_BREAKER_COOLDOWN":  "1m",
		"LOGICSOLVER_ATTEMPT_TIMEOUT":   "5s",
	}
	cfg := defaultConfig()
	require.NoError(t, applyEnv(&cfg, func(k string) string { return env[k] }))

	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "/tmp/h.db", cfg.DBPath)
	assert.False(t, cfg.History)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 4, cfg.Retry.Max)
	assert.Equal(t, 2, cfg.BreakerThreshold)
	assert.Empty(t, cfg.APIKey)

	d, err := cfg.Durations()
	require.NoError(t, err)
	bc := cfg.breakerConfig(d)
	assert.Equal(t, 2, bc.FailureThreshold)
	assert.Equal(t, time.Minute, bc.Cooldown)
	assert.Equal(t, 5*time.Second, d.AttemptTimeout)
}

func TestApplyEnv_BadInteger(t *testing.T) {
	cfg := defaultConfig()
	err := applyEnv(&cfg, func(k string) string {
		if k == "LOGICSOLVER_RETRY_MAX" {
			return "many"
		}
		return ""
	})
	assert.ErrorContains(t, err, "LOGICSOLVER_RETRY_MAX")
}

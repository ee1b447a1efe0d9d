package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/manukrishna804/logic-solver-ai/internal/generator"
	"github.com/manukrishna804/logic-solver-ai/internal/retention"
	"github.com/manukrishna804/logic-solver-ai/internal/validation"
	"github.com/manukrishna804/logic-solver-ai/pkg/schema"
)

// Config holds all logicsolver configuration.
// Priority: env vars > settings.json > defaults.
type Config struct {
	ListenAddr       string             `json:"listen_addr"`
	LogLevel         string             `json:"log_level"`
	Model            string             `json:"model"`
	DBPath           string             `json:"db_path"`
	History          bool               `json:"history"`
	Retention        string             `json:"retention"`
	PruneSchedule    string             `json:"prune_schedule"`
	AllowedOrigins   []string           `json:"allowed_origins"`
	RequestTimeout   string             `json:"request_timeout"`
	AttemptTimeout   string             `json:"attempt_timeout"`
	Retry            schema.RetryPolicy `json:"retry"`
	BreakerThreshold int                `json:"breaker_threshold"`
	BreakerCooldown  string             `json:"breaker_cooldown"`

	// APIKey comes from GOOGLE_API_KEY only and is never written to disk.
	APIKey string `json:"-"`
}

// Durations holds the parsed duration settings.
type Durations struct {
	Retention       time.Duration
	RequestTimeout  time.Duration
	AttemptTimeout  time.Duration
	BreakerCooldown time.Duration
}

func defaultConfig() Config {
	return Config{
		ListenAddr:     ":5000",
		LogLevel:       "info",
		Model:          generator.DefaultModel,
		DBPath:         filepath.Join(logicsolverDir(), "history.db"),
		History:        true,
		Retention:      "720h",
		PruneSchedule:  retention.DefaultSchedule,
		AllowedOrigins: []string{"*"},
		RequestTimeout: "60s",
		AttemptTimeout: "20s",
		Retry: schema.RetryPolicy{
			Max:      2,
			Backoff:  "exponential",
			Delay:    "500ms",
			MaxDelay: "5s",
		},
		BreakerThreshold: 5,
		BreakerCooldown:  "30s",
	}
}

func logicsolverDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".logicsolver"
	}
	return filepath.Join(home, ".logicsolver")
}

func settingsPath() string {
	return filepath.Join(logicsolverDir(), "settings.json")
}

// loadConfig layers defaults, the settings file at path and the environment.
// A missing settings file is not an error; a malformed one is. The merged
// result is checked against the settings schema.
func loadConfig(path string, v *validation.JSONSchemaValidator) (Config, error) {
	cfg := defaultConfig()

	// Layer 2: settings.json.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if verr := v.ValidateJSON(validation.SchemaSettings, data); verr != nil {
			return Config{}, fmt.Errorf("settings %s: %w", path, verr)
		}
		if jerr := json.Unmarshal(data, &cfg); jerr != nil {
			return Config{}, fmt.Errorf("settings %s: %w", path, jerr)
		}
	case !errors.Is(err, os.ErrNotExist):
		return Config{}, fmt.Errorf("read settings: %w", err)
	}

	// Layer 3: env vars override.
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return Config{}, err
	}

	if err := v.ValidateValue(validation.SchemaSettings, cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Durations(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides cfg with LOGICSOLVER_* variables and GOOGLE_API_KEY.
func applyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("LOGICSOLVER_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv("LOGICSOLVER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("LOGICSOLVER_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := getenv("LOGICSOLVER_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := getenv("LOGICSOLVER_HISTORY"); v != "" {
		cfg.History = v == "true" || v == "1"
	}
	if v := getenv("LOGICSOLVER_RETENTION"); v != "" {
		cfg.Retention = v
	}
	if v := getenv("LOGICSOLVER_PRUNE_SCHEDULE"); v != "" {
		cfg.PruneSchedule = v
	}
	if v := getenv("LOGICSOLVER_ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v := getenv("LOGICSOLVER_REQUEST_TIMEOUT"); v != "" {
		cfg.RequestTimeout = v
	}
	if v := getenv("LOGICSOLVER_ATTEMPT_TIMEOUT"); v != "" {
		cfg.AttemptTimeout = v
	}
	if v := getenv("LOGICSOLVER_RETRY_MAX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGICSOLVER_RETRY_MAX: %w", err)
		}
		cfg.Retry.Max = n
	}
	if v := getenv("LOGICSOLVER_BREAKER_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LOGICSOLVER_BREAKER_THRESHOLD: %w", err)
		}
		cfg.BreakerThreshold = n
	}
	if v := getenv("LOGICSOLVER_BREAKER_COOLDOWN"); v != "" {
		cfg.BreakerCooldown = v
	}
	cfg.APIKey = strings.TrimSpace(getenv("GOOGLE_API_KEY"))
	return nil
}

// Durations parses the duration settings. Empty values parse as zero.
func (c Config) Durations() (Durations, error) {
	var d Durations
	fields := []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"retention", c.Retention, &d.Retention},
		{"request_timeout", c.RequestTimeout, &d.RequestTimeout},
		{"attempt_timeout", c.AttemptTimeout, &d.AttemptTimeout},
		{"breaker_cooldown", c.BreakerCooldown, &d.BreakerCooldown},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(f.value)
		if err != nil {
			return Durations{}, fmt.Errorf("%s: %w", f.name, err)
		}
		*f.dst = parsed
	}
	return d, nil
}

// breakerConfig returns the circuit breaker settings for the generator.
func (c Config) breakerConfig(d Durations) generator.BreakerConfig {
	bc := generator.DefaultBreakerConfig()
	if c.BreakerThreshold > 0 {
		bc.Threshold = c.BreakerThreshold
	}
	if d.BreakerCooldown > 0 {
		bc.Cooldown = d.BreakerCooldown
	}
	return bc
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

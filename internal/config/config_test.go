package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"STORE_DRIVER", "UPLOAD_MAX_BYTES", "LLM_PROVIDER", "LLM_TIMEOUT", "UPLOAD_SWEEP_INTERVAL", "METRICS_ENABLED", "GO_ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "gemini", cfg.Ai.Provider)
	assert.Equal(t, 120*time.Second, cfg.Ai.Timeout)
	assert.Equal(t, time.Hour, cfg.Upload.SweepInterval)
	assert.True(t, cfg.Telemetry.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("UPLOAD_MAX_BYTES", "2048")
	t.Setenv("UPLOAD_SWEEP_INTERVAL", "0s")
	t.Setenv("LLM_TIMEOUT", "5s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("GO_ENV", "production")

	cfg := Load()

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, int64(2048), cfg.Upload.MaxBytes)
	assert.Equal(t, time.Duration(0), cfg.Upload.SweepInterval)
	assert.Equal(t, 5*time.Second, cfg.Ai.Timeout)
	assert.False(t, cfg.Telemetry.MetricsEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_ApiKeyFallbacks(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_AI_API_KEY", "google-key")

	assert.Equal(t, "google-key", Load().Ai.APIKey)

	t.Setenv("GEMINI_API_KEY", "gemini-key")
	assert.Equal(t, "gemini-key", Load().Ai.APIKey)
}

package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SOC_LOG_LEVEL", "SOC_CASE_HOOK", "SOC_ENDPOINT_HOOK",
		"SOC_ARGON2_ITERATIONS", "SOC_ARGON2_MEMORY",
		"SOC_ARGON2_PARALLELISM", "SOC_ARGON2_KEYLEN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "soc-case-sync", cfg.CaseHook)
	assert.Equal(t, "soc-endpoint-sync", cfg.EndpointHook)
	assert.Equal(t, 3, cfg.Argon2Iterations)
	assert.Equal(t, 14, cfg.Argon2MemoryExp)
	assert.Equal(t, 2, cfg.Argon2Parallelism)
	assert.Equal(t, 32, cfg.Argon2KeyLength)
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("SOC_LOG_LEVEL", "debug")
	t.Setenv("SOC_CASE_HOOK", "case-sync")
	t.Setenv("SOC_ENDPOINT_HOOK", "endpoint-sync")
	t.Setenv("SOC_ARGON2_ITERATIONS", "4")
	t.Setenv("SOC_ARGON2_MEMORY", "16")
	t.Setenv("SOC_ARGON2_PARALLELISM", "4")
	t.Setenv("SOC_ARGON2_KEYLEN", "64")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "case-sync", cfg.CaseHook)
	assert.Equal(t, "endpoint-sync", cfg.EndpointHook)
	assert.Equal(t, 4, cfg.Argon2Iterations)
	assert.Equal(t, 16, cfg.Argon2MemoryExp)
	assert.Equal(t, 4, cfg.Argon2Parallelism)
	assert.Equal(t, 64, cfg.Argon2KeyLength)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "non-numeric iterations", key: "SOC_ARGON2_ITERATIONS", value: "three"},
		{name: "zero iterations", key: "SOC_ARGON2_ITERATIONS", value: "0"},
		{name: "non-numeric memory", key: "SOC_ARGON2_MEMORY", value: "16MiB"},
		{name: "memory exponent too small", key: "SOC_ARGON2_MEMORY", value: "4"},
		{name: "memory exponent too large", key: "SOC_ARGON2_MEMORY", value: "40"},
		{name: "parallelism overflow", key: "SOC_ARGON2_PARALLELISM", value: "300"},
		{name: "key length too short", key: "SOC_ARGON2_KEYLEN", value: "8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := LoadFromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "info", want: slog.LevelInfo},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "DEBUG", want: slog.LevelDebug},
		{level: "", want: slog.LevelWarn},
		{level: "bogus", want: slog.LevelWarn},
	}

	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}

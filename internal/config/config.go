// Package config handles environment configuration for the user
// administration tool.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Defaults applied when the corresponding SOC_* variable is unset.
const (
	DefaultIdentityURL  = "http://127.0.0.1:4434"
	DefaultCredDBPath   = "/opt/soc/identity/db.sqlite"
	DefaultCaseHook     = "soc-case-sync"
	DefaultEndpointHook = "soc-endpoint-sync"

	DefaultArgon2Iterations  = 3
	DefaultArgon2MemoryExp   = 14 // 2^14 KiB = 16 MiB
	DefaultArgon2Parallelism = 2
	DefaultArgon2KeyLength   = 32
)

// Config holds the environment-driven knobs that are not overridable on
// the command line: logging, notifier hooks, and Argon2id hashing costs.
// Connection settings (service URL, database path, output format) are
// resolved by the CLI layer, which also consults flags and profiles.
type Config struct {
	LogLevel string // log level: debug, info, warn, error (default "warn")

	CaseHook     string // case-management sync command, invoked with <email>
	EndpointHook string // endpoint-management sync command, invoked with <email> <true|false>

	// Argon2id cost parameters. MemoryExp is the log2 exponent of the
	// memory cost in KiB, matching the argon2 CLI's -m flag.
	Argon2Iterations  int
	Argon2MemoryExp   int
	Argon2Parallelism int
	Argon2KeyLength   int
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LoadFromEnv loads configuration from SOC_* environment variables.
// Malformed numeric values are errors rather than silent fallbacks:
// a typo in a hashing knob must never weaken stored credentials.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		LogLevel:          os.Getenv("SOC_LOG_LEVEL"),
		CaseHook:          os.Getenv("SOC_CASE_HOOK"),
		EndpointHook:      os.Getenv("SOC_ENDPOINT_HOOK"),
		Argon2Iterations:  DefaultArgon2Iterations,
		Argon2MemoryExp:   DefaultArgon2MemoryExp,
		Argon2Parallelism: DefaultArgon2Parallelism,
		Argon2KeyLength:   DefaultArgon2KeyLength,
	}

	intVars := []struct {
		key string
		dst *int
	}{
		{"SOC_ARGON2_ITERATIONS", &cfg.Argon2Iterations},
		{"SOC_ARGON2_MEMORY", &cfg.Argon2MemoryExp},
		{"SOC_ARGON2_PARALLELISM", &cfg.Argon2Parallelism},
		{"SOC_ARGON2_KEYLEN", &cfg.Argon2KeyLength},
	}
	for _, iv := range intVars {
		v := os.Getenv(iv.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", iv.key, err)
		}
		*iv.dst = n
	}

	// Defaults
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.CaseHook == "" {
		cfg.CaseHook = DefaultCaseHook
	}
	if cfg.EndpointHook == "" {
		cfg.EndpointHook = DefaultEndpointHook
	}

	if err := cfg.validateArgon2(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validateArgon2 bounds the cost parameters to values the hasher and the
// identity service both accept.
func (c *Config) validateArgon2() error {
	if c.Argon2Iterations < 1 {
		return fmt.Errorf("SOC_ARGON2_ITERATIONS must be at least 1, got %d", c.Argon2Iterations)
	}
	if c.Argon2MemoryExp < 10 || c.Argon2MemoryExp > 30 {
		return fmt.Errorf("SOC_ARGON2_MEMORY must be a log2 exponent between 10 and 30, got %d", c.Argon2MemoryExp)
	}
	if c.Argon2Parallelism < 1 || c.Argon2Parallelism > 255 {
		return fmt.Errorf("SOC_ARGON2_PARALLELISM must be between 1 and 255, got %d", c.Argon2Parallelism)
	}
	if c.Argon2KeyLength < 16 || c.Argon2KeyLength > 512 {
		return fmt.Errorf("SOC_ARGON2_KEYLEN must be between 16 and 512, got %d", c.Argon2KeyLength)
	}
	return nil
}

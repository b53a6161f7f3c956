// Package config provides configuration loading and validation for the CLI
// and the server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/jonathan/profile-pdf/internal/draft"
	"github.com/jonathan/profile-pdf/internal/logging"
)

// EnvPrefix prefixes every environment variable read by Load,
// e.g. PROFILE_PDF_DRAFT_BACKEND.
const EnvPrefix = "PROFILE_PDF_"

// Draft store backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds the settings of the CLI and the server. It can be loaded from
// a JSON file and overridden from the environment.
type Config struct {
	// Server
	Port int `json:"port,omitempty" koanf:"port"`

	// Draft storage
	DraftBackend string `json:"draft_backend,omitempty" koanf:"draft_backend"` // file, redis, postgres or memory
	DraftPath    string `json:"draft_path,omitempty" koanf:"draft_path"`       // JSON file for the file backend
	DraftKey     string `json:"draft_key,omitempty" koanf:"draft_key"`         // key for the redis and postgres backends

	RedisAddr     string `json:"redis_addr,omitempty" koanf:"redis_addr"`
	RedisPassword string `json:"redis_password,omitempty" koanf:"redis_password"`
	RedisDB       int    `json:"redis_db,omitempty" koanf:"redis_db"`
	DatabaseURL   string `json:"database_url,omitempty" koanf:"database_url"` // PostgreSQL connection URL

	// Logging
	LogLevel  string `json:"log_level,omitempty" koanf:"log_level"`
	LogFormat string `json:"log_format,omitempty" koanf:"log_format"` // json or console

	// Rendering
	RenderTimeoutSeconds int    `json:"render_timeout_seconds,omitempty" koanf:"render_timeout_seconds"`
	ChromePath           string `json:"chrome_path,omitempty" koanf:"chrome_path"` // empty means auto-detect
}

// Defaults returns the compiled defaults.
func Defaults() Config {
	return Config{
		Port:                 8080,
		DraftBackend:         BackendFile,
		DraftPath:            filepath.Join(".profile-pdf", "draft.json"),
		DraftKey:             draft.DefaultKey,
		RedisAddr:            "localhost:6379",
		LogLevel:             "info",
		LogFormat:            "console",
		RenderTimeoutSeconds: 30,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: environment variables override
// the JSON file at path (optional), which overrides the defaults. The result
// is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		fileCfg, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}
	merged := cfg.MergeWithDefaults(Defaults())

	if err := applyEnv(&merged); err != nil {
		return nil, err
	}
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// applyEnv overlays PROFILE_PDF_* variables onto cfg.
func applyEnv(cfg *Config) error {
	k := koanf.New(".")
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("load env vars: %w", err)
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return fmt.Errorf("unmarshal env config: %w", err)
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.RenderTimeoutSeconds < 0 {
		return fmt.Errorf("config error: 'render_timeout_seconds' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	switch c.DraftBackend {
	case BackendFile:
		if c.DraftPath == "" {
			return fmt.Errorf("config error: 'draft_path' is required for the file backend")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config error: 'redis_addr' is required for the redis backend")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config error: unknown draft backend %q", c.DraftBackend)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DraftBackend == "" {
		result.DraftBackend = defaults.DraftBackend
	}
	if result.DraftPath == "" {
		result.DraftPath = defaults.DraftPath
	}
	if result.DraftKey == "" {
		result.DraftKey = defaults.DraftKey
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.RenderTimeoutSeconds == 0 {
		result.RenderTimeoutSeconds = defaults.RenderTimeoutSeconds
	}

	return result
}

// RenderTimeout returns the PDF render timeout.
func (c *Config) RenderTimeout() time.Duration {
	return time.Duration(c.RenderTimeoutSeconds) * time.Second
}

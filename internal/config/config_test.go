package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))
	return tmpFile
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	tmpFile := writeConfig(t, `{
		"port": 9090,
		"draft_backend": "redis",
		"redis_addr": "cache:6379",
		"redis_db": 2,
		"log_format": "json"
	}`)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, BackendRedis, cfg.DraftBackend)
	assert.Equal(t, "cache:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := writeConfig(t, `{ invalid json }`)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "memory backend", mutate: func(c *Config) { c.DraftBackend = BackendMemory }},
		{name: "negative port", mutate: func(c *Config) { c.Port = -1 }, wantErr: "'port'"},
		{name: "port too large", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "'port'"},
		{name: "negative timeout", mutate: func(c *Config) { c.RenderTimeoutSeconds = -5 }, wantErr: "render_timeout_seconds"},
		{name: "negative redis db", mutate: func(c *Config) { c.RedisDB = -1 }, wantErr: "redis_db"},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "chatty" }, wantErr: "unknown log level"},
		{name: "unknown backend", mutate: func(c *Config) { c.DraftBackend = "s3" }, wantErr: "unknown draft backend"},
		{name: "file without path", mutate: func(c *Config) { c.DraftPath = "" }, wantErr: "draft_path"},
		{
			name:    "redis without addr",
			mutate:  func(c *Config) { c.DraftBackend = BackendRedis; c.RedisAddr = "" },
			wantErr: "redis_addr",
		},
		{
			name:    "postgres without url",
			mutate:  func(c *Config) { c.DraftBackend = BackendPostgres },
			wantErr: "database_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		DraftBackend: BackendRedis,
		RedisAddr:    "cache:6379",
	}

	merged := cfg.MergeWithDefaults(Defaults())

	// Set values win
	assert.Equal(t, BackendRedis, merged.DraftBackend)
	assert.Equal(t, "cache:6379", merged.RedisAddr)

	// Empty values come from defaults
	assert.Equal(t, 8080, merged.Port)
	assert.Equal(t, "pdfFormData", merged.DraftKey)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 30, merged.RenderTimeoutSeconds)

	// Original is unchanged
	assert.Zero(t, cfg.Port)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: 1234}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, 1234, merged.Port)
	assert.Empty(t, merged.DraftBackend)
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `{"port": 9090, "log_level": "debug", "draft_backend": "memory"}`)
	t.Setenv("PROFILE_PDF_PORT", "7070")
	t.Setenv("PROFILE_PDF_REDIS_DB", "3")
	t.Setenv("PROFILE_PDF_DRAFT_KEY", "custom")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "custom", cfg.DraftKey)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, BackendMemory, cfg.DraftBackend)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PROFILE_PDF_DRAFT_BACKEND", "floppy")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown draft backend")
}

func TestRenderTimeout(t *testing.T) {
	cfg := Config{RenderTimeoutSeconds: 12}
	assert.Equal(t, 12*time.Second, cfg.RenderTimeout())
}

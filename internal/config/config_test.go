package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir runs the test from an empty directory so no stray .env or config
// file is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	for _, key := range []string{"PORT", "TMDB_API_KEY", "REDIS_URL"} {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8787", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "movies.json", cfg.Catalog.Path)
	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 3, cfg.TMDB.Retries)
	assert.Equal(t, time.Second, cfg.TMDB.RetryDelay)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 120, cfg.RateLimit.Limit)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 2*time.Hour, cfg.Session.IdleTimeout)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoadEnvironment(t *testing.T) {
	chdir(t)
	t.Setenv("REELMATCH_LOG_LEVEL", "debug")
	t.Setenv("REELMATCH_TMDB_TIMEOUT", "2s")
	t.Setenv("REELMATCH_CATALOG_DSN", "catalog.db")
	t.Setenv("TMDB_API_KEY", "legacy-key")
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 2*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, "catalog.db", cfg.Catalog.DSN)
	assert.Equal(t, "legacy-key", cfg.TMDB.APIKey)
	assert.Equal(t, "9000", cfg.Server.Port)
}

func TestPrefixedEnvWinsOverLegacy(t *testing.T) {
	chdir(t)
	t.Setenv("TMDB_API_KEY", "legacy")
	t.Setenv("REELMATCH_TMDB_API_KEY", "prefixed")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "prefixed", cfg.TMDB.APIKey)
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("REELMATCH_OUTPUT_FORMAT=json\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("REELMATCH_OUTPUT_FORMAT") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadConfigFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.toml")
	content := `
[server]
port = "7000"
environment = "production"

[tmdb]
retries = 5
retry_delay = "250ms"

[ratelimit]
limit = 0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7000", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 5, cfg.TMDB.Retries)
	assert.Equal(t, 250*time.Millisecond, cfg.TMDB.RetryDelay)
	assert.Equal(t, 0, cfg.RateLimit.Limit)
}

func TestLoadDiscoveredConfigFile(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "reelmatch.yaml"), []byte("catalog:\n  path: other.json\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "other.json", cfg.Catalog.Path)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	dir := chdir(t)
	_, err := Load(filepath.Join(dir, "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Catalog:   CatalogConfig{Path: "movies.json"},
			TMDB:      TMDBConfig{Retries: 3, Timeout: time.Second},
			RateLimit: RateLimitConfig{Limit: 10, Window: time.Minute},
			Telemetry: TelemetryConfig{SamplingRate: 0.5},
			Output:    OutputConfig{Format: "json"},
		}
	}

	base := valid()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no catalog", func(c *Config) { c.Catalog = CatalogConfig{} }},
		{"zero retries", func(c *Config) { c.TMDB.Retries = 0 }},
		{"zero timeout", func(c *Config) { c.TMDB.Timeout = 0 }},
		{"negative limit", func(c *Config) { c.RateLimit.Limit = -1 }},
		{"zero window", func(c *Config) { c.RateLimit.Window = 0 }},
		{"sampling above one", func(c *Config) { c.Telemetry.SamplingRate = 1.5 }},
		{"unknown output", func(c *Config) { c.Output.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

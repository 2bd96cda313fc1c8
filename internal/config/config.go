// Package config loads settings from defaults, an optional config file,
// a .env file, and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. REELMATCH_LOG_LEVEL.
const EnvPrefix = "REELMATCH"

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Retries      int           `mapstructure:"retries"`
	RetryDelay   time.Duration `mapstructure:"retry_delay"`
}

type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

type SessionConfig struct {
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	TMDB      TMDBConfig      `mapstructure:"tmdb"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Session   SessionConfig   `mapstructure:"session"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Output    OutputConfig    `mapstructure:"output"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8787")
	v.SetDefault("server.environment", "development")

	v.SetDefault("catalog.path", "movies.json")
	v.SetDefault("catalog.dsn", "")

	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.timeout", "5s")
	v.SetDefault("tmdb.retries", 3)
	v.SetDefault("tmdb.retry_delay", "1s")

	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "reelmatch.log")

	v.SetDefault("ratelimit.limit", 120)
	v.SetDefault("ratelimit.window", "1m")

	v.SetDefault("session.idle_timeout", "2h")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4318")
	v.SetDefault("telemetry.sampling_rate", 1.0)

	v.SetDefault("output.format", "text")
}

// bindLegacyEnv maps the conventional unprefixed variables onto their keys.
// The prefixed form wins when both are set.
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"tmdb.api_key":    "TMDB_API_KEY",
		"server.port":     "PORT",
		"cache.redis_url": "REDIS_URL",
	}
	for key, legacy := range bindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, legacy); err != nil {
			return err
		}
	}
	return nil
}

// Load builds the configuration. configFile may be empty, in which case a
// reelmatch.{toml,yaml,json} in the working directory is used if present.
// A .env file in the working directory is loaded first when it exists;
// variables already set in the environment are not overridden.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindLegacyEnv(v); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("reelmatch")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.Catalog.Path == "" && c.Catalog.DSN == "" {
		return errors.New("config: catalog.path or catalog.dsn is required")
	}
	if c.TMDB.Retries < 1 {
		return fmt.Errorf("config: tmdb.retries must be at least 1, got %d", c.TMDB.Retries)
	}
	if c.TMDB.Timeout <= 0 {
		return errors.New("config: tmdb.timeout must be positive")
	}
	if c.RateLimit.Limit < 0 {
		return errors.New("config: ratelimit.limit must not be negative")
	}
	if c.RateLimit.Limit > 0 && c.RateLimit.Window <= 0 {
		return errors.New("config: ratelimit.window must be positive")
	}
	if c.Telemetry.SamplingRate < 0 || c.Telemetry.SamplingRate > 1 {
		return fmt.Errorf("config: telemetry.sampling_rate must be within [0, 1], got %v", c.Telemetry.SamplingRate)
	}
	switch c.Output.Format {
	case "text", "json":
	default:
		return fmt.Errorf("config: output.format must be text or json, got %q", c.Output.Format)
	}
	return nil
}

package tmdb

import (
	"net/http"
	"time"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
)

// Config controls the TMDB client. Zero fields fall back to DefaultConfig.
type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	// Timeout bounds each attempt, not the whole lookup.
	Timeout    time.Duration
	Attempts   int
	RetryDelay time.Duration
	// Transport overrides the HTTP transport (tests, tracing).
	Transport http.RoundTripper
}

// DefaultConfig returns three 5s attempts spaced one second apart.
func DefaultConfig() Config {
	return Config{
		BaseURL:      DefaultBaseURL,
		ImageBaseURL: DefaultImageBaseURL,
		Timeout:      5 * time.Second,
		Attempts:     3,
		RetryDelay:   time.Second,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.ImageBaseURL == "" {
		c.ImageBaseURL = d.ImageBaseURL
	}
	if c.Timeout <= 0 {
		c.Timeout = d.Timeout
	}
	if c.Attempts <= 0 {
		c.Attempts = d.Attempts
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	return c
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import "time"

// Default webhook endpoints returning {"texts": [...]}.
const (
	DefaultEOSummariesURL       = "https://mackwiltrout.app.n8n.cloud/webhook-test/65895fd9-6f95-4956-a66f-9f4e9ff0dae2"
	DefaultCongressSummariesURL = "https://mackwiltrout.app.n8n.cloud/webhook-test/05723c84-2472-4041-be33-ca5157e222e1"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// Title is the dashboard heading.
	Title string `koanf:"title"`

	// EOSummariesURL and CongressSummariesURL are the two webhook endpoints.
	EOSummariesURL       string `koanf:"eo_summaries_url"`
	CongressSummariesURL string `koanf:"congress_summaries_url"`

	// CacheTTLSeconds is how long a fetched payload stays fresh.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// CacheCleanupSeconds is the interval of the expired-entry sweep.
	CacheCleanupSeconds int `koanf:"cache_cleanup_seconds"`

	// FetchTimeoutMS bounds a single webhook request.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		Title:                "Government Tracking Dashboard",
		EOSummariesURL:       DefaultEOSummariesURL,
		CongressSummariesURL: DefaultCongressSummariesURL,
		CacheTTLSeconds:      300,
		CacheCleanupSeconds:  600,
		FetchTimeoutMS:       10_000,
	}
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// CacheCleanupInterval returns CacheCleanupSeconds as a duration.
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.CacheCleanupSeconds) * time.Second
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

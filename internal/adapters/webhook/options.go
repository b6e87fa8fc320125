package webhook

import (
	"net/http"
	"time"

	"github.com/okian/govdash/pkg/logger"
)

// Option applies a configuration option to the Fetcher.
type Option func(*Fetcher)

// WithName sets the source name used in logs and metrics.
func WithName(name string) Option {
	return func(f *Fetcher) {
		if name != "" {
			f.name = name
		}
	}
}

// WithHTTPClient replaces the HTTP client. Tests use it to count calls.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout bounds a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

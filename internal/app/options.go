package service

import (
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/okian/govdash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithTitle sets the dashboard heading.
func WithTitle(title string) Option {
	return func(s *Service) {
		if title != "" {
			s.title = title
		}
	}
}

// WithEOSummariesURL sets the executive order summaries webhook.
func WithEOSummariesURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.eoURL = url
		}
	}
}

// WithCongressSummariesURL sets the congressional summaries webhook.
func WithCongressSummariesURL(url string) Option {
	return func(s *Service) {
		if url != "" {
			s.congressURL = url
		}
	}
}

// WithCacheTTL sets the freshness window of every cached lookup.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithCacheCleanupInterval sets the expired-entry sweep interval.
func WithCacheCleanupInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.cacheCleanup = interval
		}
	}
}

// WithFetchTimeout bounds each webhook request.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithHTTPClient sets the client used for webhook requests.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithClock sets the clock that dates the placeholder series.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

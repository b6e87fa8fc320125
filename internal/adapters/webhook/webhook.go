// Package webhook fetches summary payloads of the form {"texts": [...]} from
// external webhook endpoints.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fastjson"

	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
	"github.com/okian/govdash/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 8 << 20
	textsKey       = "texts"
	userAgent      = "govdash/1.0"
)

var parserPool fastjson.ParserPool

// Fetcher issues GET requests to one fixed URL.
type Fetcher struct {
	name    string
	url     string
	client  *http.Client
	timeout time.Duration
	logger  logger.Logger
}

// NewFetcher creates a fetcher for url.
func NewFetcher(url string, opts ...Option) *Fetcher {
	f := &Fetcher{
		name:    "webhook",
		url:     url,
		client:  &http.Client{},
		timeout: defaultTimeout,
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Name returns the source name.
func (f *Fetcher) Name() string { return f.name }

// URL returns the endpoint.
func (f *Fetcher) URL() string { return f.url }

// FetchTexts performs one GET and returns the "texts" array. No retries.
func (f *Fetcher) FetchTexts(ctx context.Context) ([]string, error) {
	start := time.Now()
	texts, err := f.fetch(ctx)
	latencyMs := float64(time.Since(start).Milliseconds())

	if err != nil {
		outcome := outcomeOf(err)
		metrics.RecordWebhookFetch(f.name, outcome, latencyMs)
		metrics.RecordErrorByComponent("webhook", outcome)
		f.logger.Warn(ctx, "webhook fetch failed",
			logger.String("source", f.name),
			logger.String("url", f.url),
			logger.Error(err),
		)
		return nil, err
	}

	metrics.RecordWebhookFetch(f.name, metrics.OutcomeSuccess, latencyMs)
	metrics.UpdateSummaryItems(f.name, len(texts))
	f.logger.Debug(ctx, "webhook fetched",
		logger.String("source", f.name),
		logger.Int("items", len(texts)),
		logger.Duration("took", time.Since(start)),
	)
	return texts, nil
}

// FetchTable fetches and wraps the texts in a summary table.
func (f *Fetcher) FetchTable(ctx context.Context) (model.SummaryTable, error) {
	texts, err := f.FetchTexts(ctx)
	if err != nil {
		return model.SummaryTable{}, err
	}
	return model.NewSummaryTable(f.name, texts), nil
}

func (f *Fetcher) fetch(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, f.name, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRequest, f.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("%w: %s: %d %s", ErrUnexpectedStatus, f.name, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read body: %w", ErrRequest, f.name, err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("%w: %s: body exceeds %d bytes", ErrMalformedBody, f.name, maxBodyBytes)
	}

	texts, err := ParseTexts(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.name, err)
	}
	return texts, nil
}

// ParseTexts extracts the "texts" string array from a JSON document.
func ParseTexts(body []byte) ([]string, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if v.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: top-level value is %s, want object", ErrMalformedBody, v.Type())
	}

	raw := v.Get(textsKey)
	if raw == nil {
		return nil, ErrMissingTexts
	}
	items, err := raw.Array()
	if err != nil {
		return nil, fmt.Errorf("%w: %q is %s, want array", ErrMalformedBody, textsKey, raw.Type())
	}

	texts := make([]string, 0, len(items))
	for i, item := range items {
		b, err := item.StringBytes()
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] is %s, want string", ErrMalformedBody, textsKey, i, item.Type())
		}
		// b aliases parser memory that is reused once p returns to the pool.
		texts = append(texts, string(b))
	}
	return texts, nil
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrUnexpectedStatus):
		return metrics.OutcomeStatus
	case errors.Is(err, ErrMissingTexts):
		return metrics.OutcomeMissingKey
	case errors.Is(err, ErrMalformedBody):
		return metrics.OutcomeMalformed
	case errors.Is(err, ErrRequest):
		return metrics.OutcomeTransport
	default:
		return metrics.OutcomeUnknownFail
	}
}

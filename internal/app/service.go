// Package service provides the dashboard service: the cached webhook and
// placeholder lookups, and the assembly of the dashboard view served by the
// HTTP API.
package service

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/okian/govdash/internal/adapters/cache"
	"github.com/okian/govdash/internal/adapters/webhook"
	"github.com/okian/govdash/internal/config"
	"github.com/okian/govdash/internal/domain/chart"
	"github.com/okian/govdash/internal/domain/markup"
	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/internal/domain/series"
	"github.com/okian/govdash/pkg/logger"
	"github.com/okian/govdash/pkg/metrics"
)

// Source names used for logs, metrics and table labels.
const (
	SourceExecutiveOrders = "executive_orders"
	SourceCongress        = "congress"
)

// URL slugs accepted by the lookup-by-name operations.
const (
	SlugExecutiveOrders = "executive-orders"
	SlugCongress        = "congress"
	SlugLegislative     = "legislative"
)

// Cache keys.
const (
	keyEOSummaries       = "eo_summaries"
	keyCongressSummaries = "congress_summaries"
	keyEOCounts          = "eo_counts"
	keyLegCounts         = "leg_counts"
)

// Dashboard copy.
const (
	defaultTitle        = "Government Tracking Dashboard"
	subtitleMarkdown    = "**Executive Orders** vs **Congressional Summaries** for the past week"
	eoChartTitle        = "EOs per Day"
	legChartTitle       = "Legislative Updates per Day"
	eoMetricLabel       = "EO Summaries"
	legMetricLabel      = "Legislative Summaries"
	eoSectionTitle      = "Executive Order Texts"
	congressSecTitle    = "Congressional Summaries"
	defaultFetchTimeout = 10 * time.Second
)

// Service implements the API dependencies for the dashboard.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache             *cache.Cache
	eoFetcher         *webhook.Fetcher
	congressFetcher   *webhook.Fetcher
	eoSummaries       *cache.Memo[model.SummaryTable]
	congressSummaries *cache.Memo[model.SummaryTable]
	eoCounts          *cache.Memo[model.CountSeries]
	legCounts         *cache.Memo[model.CountSeries]

	// Configuration
	title        string
	eoURL        string
	congressURL  string
	cacheTTL     time.Duration
	cacheCleanup time.Duration
	fetchTimeout time.Duration
	httpClient   *http.Client
	clock        clockwork.Clock

	// State
	started bool
	renders atomic.Int64
	failed  atomic.Int64

	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		title:        defaultTitle,
		eoURL:        config.DefaultEOSummariesURL,
		congressURL:  config.DefaultCongressSummariesURL,
		cacheTTL:     5 * time.Minute,
		cacheCleanup: 10 * time.Minute,
		fetchTimeout: defaultFetchTimeout,
		httpClient:   &http.Client{},
		clock:        clockwork.NewRealClock(),
		logger:       nil, // replaced on Start
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the cache, the fetchers and the memoized lookups.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting dashboard service...")

	s.cache = cache.New(
		cache.WithTTL(s.cacheTTL),
		cache.WithCleanupInterval(s.cacheCleanup),
		cache.WithLogger(s.logger.Named("cache")),
	)
	s.eoFetcher = webhook.NewFetcher(s.eoURL,
		webhook.WithName(SourceExecutiveOrders),
		webhook.WithHTTPClient(s.httpClient),
		webhook.WithTimeout(s.fetchTimeout),
		webhook.WithLogger(s.logger.Named("webhook")),
	)
	s.congressFetcher = webhook.NewFetcher(s.congressURL,
		webhook.WithName(SourceCongress),
		webhook.WithHTTPClient(s.httpClient),
		webhook.WithTimeout(s.fetchTimeout),
		webhook.WithLogger(s.logger.Named("webhook")),
	)

	s.eoSummaries = cache.Memoize(s.cache, keyEOSummaries, s.eoFetcher.FetchTable)
	s.congressSummaries = cache.Memoize(s.cache, keyCongressSummaries, s.congressFetcher.FetchTable)
	s.eoCounts = cache.Memoize(s.cache, keyEOCounts, func(context.Context) (model.CountSeries, error) {
		return series.ExecutiveOrderCounts(s.clock), nil
	})
	s.legCounts = cache.Memoize(s.cache, keyLegCounts, func(context.Context) (model.CountSeries, error) {
		return series.LegislativeCounts(s.clock), nil
	})

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.String("eoSummariesURL", s.eoURL),
		logger.String("congressSummariesURL", s.congressURL),
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Duration("fetchTimeout", s.fetchTimeout),
	)
	return nil
}

// Stop drops cached state and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.logger.Info(context.Background(), "stopping dashboard service...")
	s.cache.Flush()
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// memos returns the lookups, or ErrNotStarted.
func (s *Service) memos() (eo, cong *cache.Memo[model.SummaryTable], eoC, legC *cache.Memo[model.CountSeries], err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, nil, nil, ErrNotStarted
	}
	return s.eoSummaries, s.congressSummaries, s.eoCounts, s.legCounts, nil
}

// LoadEOSummaries returns the cached executive order summaries.
func (s *Service) LoadEOSummaries(ctx context.Context) (model.SummaryTable, error) {
	eo, _, _, _, err := s.memos()
	if err != nil {
		return model.SummaryTable{}, err
	}
	return eo.Get(ctx)
}

// LoadCongressSummaries returns the cached congressional summaries.
func (s *Service) LoadCongressSummaries(ctx context.Context) (model.SummaryTable, error) {
	_, cong, _, _, err := s.memos()
	if err != nil {
		return model.SummaryTable{}, err
	}
	return cong.Get(ctx)
}

// LoadEOCounts returns the cached placeholder executive orders per day.
func (s *Service) LoadEOCounts(ctx context.Context) (model.CountSeries, error) {
	_, _, eoC, _, err := s.memos()
	if err != nil {
		return model.CountSeries{}, err
	}
	return eoC.Get(ctx)
}

// LoadLegCounts returns the cached placeholder legislative updates per day.
func (s *Service) LoadLegCounts(ctx context.Context) (model.CountSeries, error) {
	_, _, _, legC, err := s.memos()
	if err != nil {
		return model.CountSeries{}, err
	}
	return legC.Get(ctx)
}

// Summaries looks up a summary table by slug: executive-orders or congress.
func (s *Service) Summaries(ctx context.Context, slug string) (model.SummaryTable, error) {
	switch slug {
	case SlugExecutiveOrders:
		return s.LoadEOSummaries(ctx)
	case SlugCongress:
		return s.LoadCongressSummaries(ctx)
	default:
		return model.SummaryTable{}, fmt.Errorf("%w: %q", ErrUnknownSource, slug)
	}
}

// Counts looks up a count series by slug: executive-orders or legislative.
func (s *Service) Counts(ctx context.Context, slug string) (model.CountSeries, error) {
	switch slug {
	case SlugExecutiveOrders:
		return s.LoadEOCounts(ctx)
	case SlugLegislative:
		return s.LoadLegCounts(ctx)
	default:
		return model.CountSeries{}, fmt.Errorf("%w: %q", ErrUnknownSource, slug)
	}
}

// Chart returns the chart spec for a count series slug.
func (s *Service) Chart(ctx context.Context, slug string) (chart.Spec, error) {
	data, err := s.Counts(ctx, slug)
	if err != nil {
		return chart.Spec{}, err
	}
	return chartFor(slug, data), nil
}

func chartFor(slug string, data model.CountSeries) chart.Spec {
	if slug == SlugLegislative {
		return chart.Line(legChartTitle, data, true)
	}
	return chart.Bar(eoChartTitle, data)
}

// Dashboard performs the four cached lookups and assembles the view. Any
// failed lookup fails the whole render; nothing partial is returned.
func (s *Service) Dashboard(ctx context.Context) (model.Dashboard, error) {
	start := time.Now()
	d, err := s.dashboard(ctx)
	latencyMs := float64(time.Since(start).Milliseconds())
	metrics.RecordDashboardRender(err == nil, latencyMs)
	if err != nil {
		s.failed.Add(1)
		return model.Dashboard{}, fmt.Errorf("%w: %w", ErrRender, err)
	}
	s.renders.Add(1)
	return d, nil
}

func (s *Service) dashboard(ctx context.Context) (model.Dashboard, error) {
	var (
		eo, cong   model.SummaryTable
		eoC, legC  model.CountSeries
		g, loadCtx = errgroup.WithContext(ctx)
	)
	g.Go(func() (err error) { eo, err = s.LoadEOSummaries(loadCtx); return err })
	g.Go(func() (err error) { cong, err = s.LoadCongressSummaries(loadCtx); return err })
	g.Go(func() (err error) { eoC, err = s.LoadEOCounts(loadCtx); return err })
	g.Go(func() (err error) { legC, err = s.LoadLegCounts(loadCtx); return err })
	if err := g.Wait(); err != nil {
		return model.Dashboard{}, err
	}

	subtitle, err := markup.Render(subtitleMarkdown)
	if err != nil {
		return model.Dashboard{}, err
	}

	eoPanel, err := panel("eo-chart", eoChartTitle, chartFor(SlugExecutiveOrders, eoC), eoC)
	if err != nil {
		return model.Dashboard{}, err
	}
	legPanel, err := panel("leg-chart", legChartTitle, chartFor(SlugLegislative, legC), legC)
	if err != nil {
		return model.Dashboard{}, err
	}

	eoSection, err := section("eo-texts", eoSectionTitle, eo)
	if err != nil {
		return model.Dashboard{}, err
	}
	congSection, err := section("congress-texts", congressSecTitle, cong)
	if err != nil {
		return model.Dashboard{}, err
	}

	s.mu.RLock()
	title := s.title
	s.mu.RUnlock()

	return model.Dashboard{
		Title:    title,
		Subtitle: subtitle,
		Metrics: []model.Metric{
			{Label: eoMetricLabel, Value: eo.Len()},
			{Label: legMetricLabel, Value: cong.Len()},
		},
		Charts:      []model.ChartPanel{eoPanel, legPanel},
		Sections:    []model.SummarySection{eoSection, congSection},
		GeneratedAt: s.clock.Now().UTC(),
	}, nil
}

func panel(id, title string, spec chart.Spec, data model.CountSeries) (model.ChartPanel, error) {
	js, err := spec.Script()
	if err != nil {
		return model.ChartPanel{}, err
	}
	return model.ChartPanel{ID: id, Title: title, Spec: js, Data: data}, nil
}

func section(id, title string, table model.SummaryTable) (model.SummarySection, error) {
	texts := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		texts[i] = r.HTML
	}
	items, err := markup.RenderAll(texts)
	if err != nil {
		return model.SummarySection{}, fmt.Errorf("%s: %w", table.Source, err)
	}
	return model.SummarySection{ID: id, Title: title, Items: items}, nil
}

// ClearCache drops every cached lookup so the next render fetches again.
func (s *Service) ClearCache(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	s.cache.Flush()
	s.logger.Info(ctx, "cache cleared")
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":         s.started,
		"cacheTTLSeconds": int(s.cacheTTL / time.Second),
		"renders":         s.renders.Load(),
		"failedRenders":   s.failed.Load(),
		"sources": map[string]string{
			SourceExecutiveOrders: s.eoURL,
			SourceCongress:        s.congressURL,
		},
	}
	if s.started {
		cs := s.cache.Stats()
		stats["cacheHits"] = cs.Hits
		stats["cacheMisses"] = cs.Misses
		stats["cacheLoads"] = cs.Loads
		stats["cacheEntries"] = cs.Entries
		metrics.UpdateCacheEntries(cs.Entries)
	}
	return stats
}

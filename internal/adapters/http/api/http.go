// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/govdash/internal/domain/chart"
	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Dashboard assembles the full view; any failed lookup fails it.
	Dashboard(ctx context.Context) (model.Dashboard, error)

	// Lookups by URL slug.
	Summaries(ctx context.Context, slug string) (model.SummaryTable, error)
	Counts(ctx context.Context, slug string) (model.CountSeries, error)
	Chart(ctx context.Context, slug string) (chart.Spec, error)

	ClearCache(ctx context.Context) error
}

// Server wires HTTP routes for the dashboard and its JSON API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	dashboardHandler *DashboardHandler
	summariesHandler *SummariesHandler
	countsHandler    *CountsHandler
	cacheHandler     *CacheHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	log := logger.Get().Named("api")
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		dashboardHandler: NewDashboardHandler(deps, log),
		summariesHandler: NewSummariesHandler(deps, log),
		countsHandler:    NewCountsHandler(deps, log),
		cacheHandler:     NewCacheHandler(deps, log),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("GET /dashboard", MetricsMiddleware(s.dashboardHandler.HandleDashboard, "dashboard"))
	mux.HandleFunc("GET /api/summaries/{source}", MetricsMiddleware(s.summariesHandler.HandleGetSummaries, "summaries"))
	mux.HandleFunc("GET /api/counts/{series}", MetricsMiddleware(s.countsHandler.HandleGetCounts, "counts"))
	mux.HandleFunc("GET /api/charts/{series}", MetricsMiddleware(s.countsHandler.HandleGetChart, "charts"))
	mux.HandleFunc("POST /api/cache/clear", MetricsMiddleware(s.cacheHandler.HandleClear, "cache_clear"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

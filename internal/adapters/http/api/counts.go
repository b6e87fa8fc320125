// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/govdash/internal/domain/chart"
	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
)

// CountsDependencies defines the interface for count series lookups.
type CountsDependencies interface {
	Counts(ctx context.Context, slug string) (model.CountSeries, error)
	Chart(ctx context.Context, slug string) (chart.Spec, error)
}

// CountsHandler serves the daily count series and their chart specs.
type CountsHandler struct {
	deps   CountsDependencies
	logger logger.Logger
}

// NewCountsHandler creates a new counts handler.
func NewCountsHandler(deps CountsDependencies, log logger.Logger) *CountsHandler {
	return &CountsHandler{deps: deps, logger: log}
}

// HandleGetCounts handles GET /api/counts/{series} requests.
func (h *CountsHandler) HandleGetCounts(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("series")
	data, err := h.deps.Counts(r.Context(), slug)
	if err != nil {
		h.fail(w, r, slug, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

// HandleGetChart handles GET /api/charts/{series} requests. The body is a
// Vega-Lite spec that can be passed to vegaEmbed as is.
func (h *CountsHandler) HandleGetChart(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("series")
	spec, err := h.deps.Chart(r.Context(), slug)
	if err != nil {
		h.fail(w, r, slug, err)
		return
	}
	writeJSON(w, http.StatusOK, spec)
}

func (h *CountsHandler) fail(w http.ResponseWriter, r *http.Request, slug string, err error) {
	status, code, err := lookupFailure(err)
	h.logger.Warn(r.Context(), "series lookup failed",
		logger.String("series", slug),
		logger.String("request_id", r.Header.Get(RequestIDHeader)),
		logger.Error(err))
	writeError(w, status, code, err)
}

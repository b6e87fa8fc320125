// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
)

// SummariesDependencies defines the interface for summary table lookups.
type SummariesDependencies interface {
	Summaries(ctx context.Context, slug string) (model.SummaryTable, error)
}

// SummariesHandler serves the fetched summary tables.
type SummariesHandler struct {
	deps   SummariesDependencies
	logger logger.Logger
}

// NewSummariesHandler creates a new summaries handler.
func NewSummariesHandler(deps SummariesDependencies, log logger.Logger) *SummariesHandler {
	return &SummariesHandler{deps: deps, logger: log}
}

type summariesResponse struct {
	Source  string          `json:"source"`
	Columns []string        `json:"columns"`
	Count   int             `json:"count"`
	Rows    []model.Summary `json:"rows"`
}

// HandleGetSummaries handles GET /api/summaries/{source} requests.
func (h *SummariesHandler) HandleGetSummaries(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("source")
	table, err := h.deps.Summaries(r.Context(), slug)
	if err != nil {
		status, code, err := lookupFailure(err)
		h.logger.Warn(r.Context(), "summaries lookup failed",
			logger.String("source", slug),
			logger.String("request_id", r.Header.Get(RequestIDHeader)),
			logger.Error(err))
		writeError(w, status, code, err)
		return
	}
	writeJSON(w, http.StatusOK, summariesResponse{
		Source:  table.Source,
		Columns: table.Columns(),
		Count:   table.Len(),
		Rows:    table.Rows,
	})
}

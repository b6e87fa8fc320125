// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/okian/govdash/pkg/logger"
)

// CacheDependencies defines the interface for cache administration.
type CacheDependencies interface {
	ClearCache(ctx context.Context) error
}

// CacheHandler handles cache administration requests.
type CacheHandler struct {
	deps   CacheDependencies
	logger logger.Logger
}

// NewCacheHandler creates a new cache handler.
func NewCacheHandler(deps CacheDependencies, log logger.Logger) *CacheHandler {
	return &CacheHandler{deps: deps, logger: log}
}

type ackResponse struct {
	Status string `json:"status"`
}

// HandleClear handles POST /api/cache/clear requests.
func (h *CacheHandler) HandleClear(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.ClearCache(r.Context()); err != nil {
		h.logger.Error(r.Context(), "cache clear failed", logger.Error(err))
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
		return
	}
	h.logger.Debug(r.Context(), "cache clear requested",
		logger.String("request_id", r.Header.Get(RequestIDHeader)))
	writeJSON(w, http.StatusOK, ackResponse{Status: "cleared"})
}

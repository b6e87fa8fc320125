// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/okian/govdash/internal/domain/model"
	"github.com/okian/govdash/pkg/logger"
)

// DashboardDependencies defines the interface for dashboard rendering.
type DashboardDependencies interface {
	Dashboard(ctx context.Context) (model.Dashboard, error)
}

// DashboardHandler renders the HTML dashboard.
type DashboardHandler struct {
	deps   DashboardDependencies
	logger logger.Logger
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(deps DashboardDependencies, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{deps: deps, logger: log}
}

// errorPage is the view model of the failure page.
type errorPage struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}

// HandleDashboard handles GET / and GET /dashboard. Every view runs the
// cached lookups; if any of them fails the error page is shown instead.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := r.Header.Get(RequestIDHeader)

	d, err := h.deps.Dashboard(ctx)
	if err != nil {
		h.logger.Error(ctx, "dashboard render failed",
			logger.String("request_id", reqID),
			logger.Error(err))
		h.renderError(ctx, w, errorPage{
			Status:    http.StatusBadGateway,
			Title:     "Dashboard unavailable",
			Message:   err.Error(),
			RequestID: reqID,
		})
		return
	}

	if err := render(w, http.StatusOK, "dashboard.html", d); err != nil {
		h.logger.Error(ctx, "dashboard template failed",
			logger.String("request_id", reqID),
			logger.Error(err))
		h.renderError(ctx, w, errorPage{
			Status:    http.StatusInternalServerError,
			Title:     "Dashboard unavailable",
			Message:   http.StatusText(http.StatusInternalServerError),
			RequestID: reqID,
		})
		return
	}
	h.logger.Debug(ctx, "dashboard rendered",
		logger.String("request_id", reqID),
		logger.Int("charts", len(d.Charts)),
		logger.Int("sections", len(d.Sections)))
}

func (h *DashboardHandler) renderError(ctx context.Context, w http.ResponseWriter, page errorPage) {
	if err := render(w, page.Status, "error.html", page); err != nil {
		h.logger.Error(ctx, "error template failed", logger.Error(err))
		http.Error(w, page.Message, page.Status)
	}
}

// render executes the named page into a buffer first so a template failure
// never leaves a half-written response behind.
func render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrTemplate, name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

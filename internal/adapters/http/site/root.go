// Package site serves the embedded static assets of the dashboard page.
package site

import (
	"context"
	"errors"
	"net/http"
)

// Error constants
var (
	ErrServe = errors.New("static asset serve failed")
)

// Prefix is the URL path under which assets are served.
const Prefix = "/static/"

// Middleware decorates a handler with per-endpoint instrumentation.
type Middleware func(next http.HandlerFunc, endpoint string) http.HandlerFunc

// Register attaches the static asset routes to mux. wrap may be nil.
func Register(_ context.Context, mux *http.ServeMux, wrap Middleware) {
	if mux == nil {
		panic("mux is nil")
	}
	h := NewAssetHandler().HandleAsset
	if wrap != nil {
		h = wrap(h, "static")
	}
	mux.HandleFunc("GET "+Prefix, h)
}

// AssetHandler serves files from the embedded static directory.
type AssetHandler struct {
	files http.Handler
}

// NewAssetHandler creates a new asset handler.
func NewAssetHandler() *AssetHandler {
	return &AssetHandler{files: http.StripPrefix(Prefix, http.FileServer(FS()))}
}

// HandleAsset handles GET /static/* requests. Directory listings are not
// exposed.
func (h *AssetHandler) HandleAsset(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == Prefix || r.URL.Path[len(r.URL.Path)-1] == '/' {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=300")
	h.files.ServeHTTP(w, r)
}

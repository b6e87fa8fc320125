// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"

	service "github.com/okian/govdash/internal/app"
)

// lookupFailure maps a lookup error to a status code and error code.
// Unknown slugs are the caller's fault; everything else is blamed on the
// upstream webhooks.
func lookupFailure(err error) (int, string, error) {
	if errors.Is(err, service.ErrUnknownSource) {
		return http.StatusNotFound, "not_found", err
	}
	return http.StatusBadGateway, "upstream_error", fmt.Errorf("%w: %w", ErrUpstream, err)
}

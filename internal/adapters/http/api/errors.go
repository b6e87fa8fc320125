package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrUpstream = errors.New("upstream lookup failed")
	ErrTemplate = errors.New("template render failed")
)

package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrUnknownSource = errors.New("unknown source")
	ErrRender        = errors.New("dashboard render failed")
)

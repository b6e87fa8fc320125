package webhook

import "errors"

// Sentinel kinds for webhook fetch failures.
var (
	ErrRequest          = errors.New("webhook request failed")
	ErrUnexpectedStatus = errors.New("webhook returned unexpected status")
	ErrMalformedBody    = errors.New("webhook returned malformed body")
	ErrMissingTexts     = errors.New(`webhook response has no "texts" key`)
)

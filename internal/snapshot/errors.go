package snapshot

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrUnknownSection = errors.New("unknown section")
	ErrWrite          = errors.New("snapshot write failed")
)

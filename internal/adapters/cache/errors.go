package cache

import "errors"

// Sentinel kinds for cache errors.
var (
	ErrNilLoader  = errors.New("cache loader is nil")
	ErrEmptyKey   = errors.New("cache key is empty")
	ErrTypeAssert = errors.New("cached value has unexpected type")
)

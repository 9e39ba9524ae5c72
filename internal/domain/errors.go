package domain

import "errors"

// Sentinel errors shared by the catalog, providers and transport layers.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("catalog unavailable")
)

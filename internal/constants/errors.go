package constants

import "errors"

// Configuration errors.
var (
	ErrNoAPIConfigured  = errors.New("no API endpoint configured, use --api or 'dsp login --api <url>'")
	ErrNotAuthenticated = errors.New("not authenticated, use 'dsp login' first")
)

// Command errors.
var (
	ErrResourceTypeRequired = errors.New("--type flag is required")
	ErrUnsupportedFormat    = errors.New("unsupported output format")
)

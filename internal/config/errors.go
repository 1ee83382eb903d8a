package config

import "errors"

// Sentinel kinds callers can match with errors.Is.
var (
	// ErrInvalidConfig marks a configuration that fails validation.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading or decoding config sources.
	ErrLoadConfig = errors.New("load config failed")
)

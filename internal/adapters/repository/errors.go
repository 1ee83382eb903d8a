package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrSessionNotFound = errors.New("ranking session not found")
	ErrPoolNotFound    = errors.New("custom pool not found")
	ErrShareCodeTaken  = errors.New("share code already in use")
	ErrVersionConflict = errors.New("session version conflict")
	ErrUnknownDriver   = errors.New("unknown store driver")
)

package pool

import (
	"errors"

	"github.com/okian/joust/internal/domain/model"
)

// Sentinel errors for pool resolution failures. All of them mean the
// request was rejected before any session state was created.
var (
	ErrInvalidSize   = errors.New("pool size must be 0, 10, 50, or 100")
	ErrUnknownPreset = errors.New("unknown preset")

	// ErrPoolTooSmall is the aggregate's sentinel, re-exported so callers
	// can match resolution failures without importing model.
	ErrPoolTooSmall = model.ErrPoolTooSmall
)

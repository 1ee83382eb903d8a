// Package repository defines the session store interface, its errors
// and the provided implementations.
package repository

import (
	"context"
	"fmt"

	"github.com/okian/joust/internal/domain/model"
)

// Stats are aggregate store counts for the stats surface.
type Stats struct {
	Sessions          int
	CompletedSessions int
	Votes             int
	CustomPools       int
}

// Store provides durable access to ranking sessions, their vote log
// and custom pools. Implementations return deep copies; callers own
// what they get back.
//
// Writes are guarded optimistically: UpdateSession and RecordVote
// compare the aggregate's Version against the stored one and fail with
// ErrVersionConflict when another writer got there first. On success
// the aggregate's Version advances to the newly stored value.
type Store interface {
	// CreateSession persists a new session and stamps its first version.
	CreateSession(ctx context.Context, s *model.Session) error
	// GetSession returns the session by id.
	// Returns ErrSessionNotFound if the id is unknown.
	GetSession(ctx context.Context, id string) (*model.Session, error)
	// GetSessionByShareToken returns the session a share token points at.
	// Returns ErrSessionNotFound if no session carries the token.
	GetSessionByShareToken(ctx context.Context, token string) (*model.Session, error)
	// UpdateSession persists a modified session under the version guard.
	UpdateSession(ctx context.Context, s *model.Session) error
	// RecordVote appends a vote to the session's log and persists the
	// session update in the same atomic step, under the version guard.
	// On success the vote's ID carries its position in the log.
	RecordVote(ctx context.Context, s *model.Session, v *model.Vote) error
	// ListVotes returns a session's votes in submission order.
	ListVotes(ctx context.Context, sessionID string) ([]model.Vote, error)

	// CreateCustomPool persists a new custom pool.
	// Returns ErrShareCodeTaken when the share code is already in use.
	CreateCustomPool(ctx context.Context, p *model.CustomPool) error
	// GetCustomPoolByCode returns the custom pool a share code points at.
	// Returns ErrPoolNotFound if the code is unknown.
	GetCustomPoolByCode(ctx context.Context, code string) (*model.CustomPool, error)

	// Stats returns aggregate counts across the store.
	Stats(ctx context.Context) (Stats, error)
	// Close releases store resources.
	Close() error
}

// Store driver names accepted by New.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// New builds a store from options. The default is the in-memory
// driver; the sqlite driver needs a DSN (file path or ":memory:").
func New(opts ...Option) (Store, error) {
	cfg := options{driver: DriverMemory}
	for _, opt := range opts {
		opt(&cfg)
	}
	switch cfg.driver {
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverSQLite:
		return OpenSQLite(cfg.dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.driver)
	}
}

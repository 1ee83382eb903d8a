// Package service provides the core ranking service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/okian/joust/internal/adapters/catalog"
	"github.com/okian/joust/internal/adapters/repository"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/pkg/logger"
	"github.com/okian/joust/pkg/metrics"
)

const (
	// defaultRetryAttempts bounds how often a write is retried after a
	// store version conflict before ErrUnavailable is surfaced.
	defaultRetryAttempts = 3

	// shareTokenBytes and poolCodeBytes size the random identifiers
	// before base64 encoding. Session tokens guard result pages and get
	// the longer form; pool codes are typed by hand and stay short.
	shareTokenBytes = 8
	poolCodeBytes   = 6

	// maxCustomPoolItems caps user-supplied pools.
	maxCustomPoolItems = 200
	// maxUnknownReported bounds how many offending ids an ErrUnknownItems
	// message names.
	maxUnknownReported = 5
)

// Service implements the API dependencies for the ranking engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	catalog *catalog.Catalog
	locks   *sessionLocks

	// Configuration
	storeDriver   string
	storeDSN      string
	catalogCSV    string
	retryAttempts int
	shareBaseURL  string

	// State
	started bool

	// Logging
	logger logger.Logger

	// clock stamps every mutation; swappable in tests.
	clock func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore injects a pre-built session store. When unset, Start opens
// one from the configured driver and DSN.
func WithStore(st repository.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithCatalog injects a pre-built item catalog. When unset, Start loads
// the configured CSV, or falls back to the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithStoreDriver selects the session store driver.
func WithStoreDriver(driver string) Option {
	return func(s *Service) {
		if driver != "" {
			s.storeDriver = driver
		}
	}
}

// WithStoreDSN sets the data source name handed to the store driver.
func WithStoreDSN(dsn string) Option {
	return func(s *Service) {
		s.storeDSN = dsn
	}
}

// WithCatalogCSV points Start at a CSV file to load the catalog from.
func WithCatalogCSV(path string) Option {
	return func(s *Service) {
		s.catalogCSV = path
	}
}

// WithRetryAttempts sets the bounded retry budget for conflicting writes.
func WithRetryAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

// WithShareBaseURL sets the public base URL share links are built on.
// When empty, responses carry the bare token and no URL.
func WithShareBaseURL(base string) Option {
	return func(s *Service) {
		s.shareBaseURL = strings.TrimRight(base, "/")
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithClock overrides the time source. Tests use it to pin timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		storeDriver:   repository.DriverMemory,
		retryAttempts: defaultRetryAttempts,
		locks:         newSessionLocks(defaultLockStripes),
		logger:        nil, // replaced when the service starts
		clock:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting ranking service...")

	if s.store == nil {
		st, err := repository.New(
			repository.WithDriver(s.storeDriver),
			repository.WithDSN(s.storeDSN),
		)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		s.store = st
	}

	if s.catalog == nil {
		if s.catalogCSV != "" {
			cat, err := catalog.LoadFile(s.catalogCSV)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			s.catalog = cat
		} else {
			s.catalog = catalog.Default()
		}
	}

	s.started = true
	s.logger.Info(ctx, "ranking service started",
		logger.String("store", s.storeDriver),
		logger.Int("catalogItems", s.catalog.Size()),
		logger.Int("retryAttempts", s.retryAttempts),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping ranking service...")

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn(context.Background(), "closing session store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(context.Background(), "ranking service stopped")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started": s.started,
		"presets": len(pool.Presets()),
	}

	if !s.started {
		return stats
	}

	stats["catalog_items"] = s.catalog.Size()

	st, err := s.store.Stats(context.Background())
	if err != nil {
		s.logger.Warn(context.Background(), "reading store stats", logger.Error(err))
		return stats
	}
	stats["sessions_total"] = st.Sessions
	stats["sessions_completed"] = st.CompletedSessions
	stats["votes_total"] = st.Votes
	stats["custom_pools_total"] = st.CustomPools

	metrics.UpdateSessionsStored(st.Sessions)

	return stats
}

// randomToken returns n random bytes as unpadded URL-safe base64.
func randomToken(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)
}

func newShareToken() string { return randomToken(shareTokenBytes) }

func newPoolCode() string { return randomToken(poolCodeBytes) }

// shareURL renders the public link for a share token, or "" when either
// the token or the configured base URL is missing.
func (s *Service) shareURL(token string) string {
	if token == "" || s.shareBaseURL == "" {
		return ""
	}
	return s.shareBaseURL + "/share/" + token
}

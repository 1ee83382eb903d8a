// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keys are lower_snake, flat (addr) or grouped one level deep
//   (store.driver). The JOUST_ environment prefix maps onto them.
// - New() builds a Config carrying defaults; Load layers an optional
//   YAML file and environment overrides on top, then validates.
// - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"fmt"
	"time"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Log controls verbosity and encoding of process logs.
	Log LogConfig `koanf:"log"`

	// Store selects where ranking sessions persist.
	Store StoreConfig `koanf:"store"`

	// Catalog optionally replaces the built-in item catalog.
	Catalog CatalogConfig `koanf:"catalog"`

	// Engine tunes ranking-engine behavior.
	Engine EngineConfig `koanf:"engine"`

	// HTTP carries server lifecycle timeouts.
	HTTP HTTPConfig `koanf:"http"`
}

// LogConfig controls the global logger.
type LogConfig struct {
	// Level is one of: debug, info, warn, error.
	Level string `koanf:"level"`

	// Format selects the output encoding: text or json.
	Format string `koanf:"format"`
}

// StoreConfig selects and parameterizes the session store.
type StoreConfig struct {
	// Driver is one of: memory, sqlite.
	Driver string `koanf:"driver"`

	// DSN is the data source name handed to the driver. The sqlite
	// driver treats it as the database path; memory ignores it.
	DSN string `koanf:"dsn"`
}

// CatalogConfig points at an alternative item catalog.
type CatalogConfig struct {
	// CSV is a path to a catalog file. Empty selects the built-in set.
	CSV string `koanf:"csv"`
}

// EngineConfig tunes the ranking engine.
type EngineConfig struct {
	// RetryAttempts bounds write retries after store version conflicts.
	RetryAttempts int `koanf:"retry_attempts"`

	// ShareBaseURL is the public base share links are composed on,
	// e.g. "https://rank.example.com". Empty disables link rendering;
	// responses then carry the bare token only.
	ShareBaseURL string `koanf:"share_base_url"`
}

// HTTPConfig carries HTTP server timeouts.
type HTTPConfig struct {
	// ShutdownTimeout bounds the graceful drain on exit.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// ReadHeaderTimeout guards against slow-header clients.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
}

// New creates a Config carrying the defaults Load layers onto.
func New() *Config {
	return &Config{
		Addr: ":9080",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Store: StoreConfig{
			Driver: "memory",
		},
		Engine: EngineConfig{
			RetryAttempts: 3,
		},
		HTTP: HTTPConfig{
			ShutdownTimeout:   30 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Validate rejects configurations the process cannot run with. The log
// level is deliberately not checked here: an unknown level downgrades
// to info at startup rather than blocking boot.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}
	switch c.Store.Driver {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}
	if c.Engine.RetryAttempts < 1 {
		return fmt.Errorf("%w: engine.retry_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: http.shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.HTTP.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("%w: http.read_header_timeout must be positive", ErrInvalidConfig)
	}
	return nil
}

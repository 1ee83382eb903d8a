package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if JOUST_CONFIG is set
//  3. env (prefix JOUST_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("JOUST_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: file %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: JOUST_ADDR, JOUST_STORE_DRIVER, ...
	// The first underscore after the prefix separates the group from the
	// key, so JOUST_ENGINE_RETRY_ATTEMPTS maps to engine.retry_attempts
	// and prefix-only names like JOUST_ADDR stay flat.
	envProvider := env.Provider("JOUST_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "joust_")
		if group, key, ok := strings.Cut(s, "_"); ok {
			return group + "." + key
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: environment: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy so defaults survive for unset keys.
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

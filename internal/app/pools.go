package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/joust/internal/adapters/repository"
	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/pkg/logger"
	"github.com/okian/joust/pkg/metrics"
)

// CreatePoolRequest describes a new shareable custom pool.
type CreatePoolRequest struct {
	Name        string
	Description string
	Items       []string
	Public      bool
	OwnerToken  string
}

// CreateCustomPool validates and stores a custom pool, minting a fresh
// share code. Items are kept in the submitted order; duplicates are
// collapsed only later, at session resolution.
func (s *Service) CreateCustomPool(ctx context.Context, req CreatePoolRequest) (*PoolView, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrPoolNameRequired
	}

	items := make([]string, 0, len(req.Items))
	for _, id := range req.Items {
		if id = strings.TrimSpace(id); id != "" {
			items = append(items, id)
		}
	}
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: got %d items", model.ErrPoolTooSmall, len(items))
	}
	if len(items) > maxCustomPoolItems {
		return nil, fmt.Errorf("%w: got %d items, max %d", ErrPoolTooLarge, len(items), maxCustomPoolItems)
	}

	var unknown []string
	for _, id := range items {
		if !s.catalog.Has(id) {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		sample := unknown
		if len(sample) > maxUnknownReported {
			sample = sample[:maxUnknownReported]
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownItems, strings.Join(sample, ", "))
	}

	cp := &model.CustomPool{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Items:       items,
		Public:      req.Public,
		OwnerToken:  req.OwnerToken,
		CreatedAt:   s.clock().UTC(),
	}

	// Share codes are short, so regenerate on the rare collision instead
	// of failing the create.
	for attempt := 0; ; attempt++ {
		cp.ShareCode = newPoolCode()
		err := s.store.CreateCustomPool(ctx, cp)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrShareCodeTaken) || attempt >= s.retryAttempts {
			return nil, fmt.Errorf("persist custom pool: %w", err)
		}
	}

	metrics.RecordPoolCreated()
	s.logger.Info(ctx, "custom pool created",
		logger.String("poolID", cp.ID),
		logger.String("shareCode", cp.ShareCode),
		logger.Int("items", len(cp.Items)),
	)

	return s.poolView(cp), nil
}

// GetCustomPool resolves a share code to its pool. Like session reads,
// pool reads carry no ownership check.
func (s *Service) GetCustomPool(ctx context.Context, code string) (*PoolView, error) {
	cp, err := s.store.GetCustomPoolByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.poolView(cp), nil
}

// Presets lists the built-in pools in display order.
func (s *Service) Presets() []pool.Preset {
	return pool.Presets()
}

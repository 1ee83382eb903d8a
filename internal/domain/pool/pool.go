// Package pool resolves a session request into the item pool to rank.
package pool

import (
	"fmt"
)

// Valid bounded sizes; 0 is the unbounded sentinel.
const (
	SizeUnbounded = 0
	SizeSmall     = 10
	SizeMedium    = 50
	SizeLarge     = 100
)

// Catalog is the slice of the item catalog the resolver needs: the
// canonical ranked order for top-N pools and membership checks for
// preset filtering.
type Catalog interface {
	CanonicalOrder() []string
	Has(id string) bool
}

// Spec describes the requested pool. Items wins over Preset; when both
// are empty the canonical catalog order supplies the pool. Callers that
// support stored custom pools resolve the reference to an item list
// before building the Spec.
type Spec struct {
	Size   int
	Items  []string
	Preset string
}

// ValidSize reports whether size is one of the supported values.
func ValidSize(size int) bool {
	switch size {
	case SizeUnbounded, SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Resolve produces the deduplicated, ordered item pool for a session.
// Resolution rules:
//   - the size must be one of {0, 10, 50, 100}, else ErrInvalidSize
//   - an explicit item list is used as given (order kept, duplicates
//     dropped); items are opaque, no catalog check
//   - a preset resolves to its item list filtered to catalog members
//   - otherwise the first N items of the canonical catalog order,
//     where N is the bounded size, or the whole catalog when unbounded
//
// Any path yielding fewer than 2 items fails with ErrPoolTooSmall.
func Resolve(spec Spec, cat Catalog) ([]string, error) {
	if !ValidSize(spec.Size) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, spec.Size)
	}

	var items []string
	switch {
	case len(spec.Items) > 0:
		items = spec.Items
	case spec.Preset != "":
		preset, ok := PresetByID(spec.Preset)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, spec.Preset)
		}
		items = make([]string, 0, len(preset.Items))
		for _, id := range preset.Items {
			if cat.Has(id) {
				items = append(items, id)
			}
		}
	default:
		canonical := cat.CanonicalOrder()
		n := len(canonical)
		if spec.Size > 0 && spec.Size < n {
			n = spec.Size
		}
		items = canonical[:n]
	}

	pool := dedupe(items)
	if len(pool) < 2 {
		return nil, fmt.Errorf("%w: resolved to %d items", ErrPoolTooSmall, len(pool))
	}
	return pool, nil
}

// dedupe removes repeated identifiers, keeping first occurrences in
// their original order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, id := range items {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Package catalog serves the item catalog: the ranked universe of
// items with display attributes and precomputed per-attribute
// statistics.
package catalog

import (
	"math"
	"sort"

	"github.com/okian/joust/internal/domain/types"
	"github.com/okian/joust/pkg/metrics"
)

// StatAttributes are the catalog attributes ranked across all items,
// in card display order.
var StatAttributes = []string{"games", "points", "rebounds", "assists", "win_shares"}

// Player is one catalog row. Career totals feed the per-attribute
// statistics; win shares drive the canonical order.
type Player struct {
	ID         string
	Name       string
	Position   string
	Team       string
	CareerFrom int
	CareerTo   int
	Games      int
	Points     int
	Rebounds   int
	Assists    int
	WinShares  float64
}

// Catalog indexes players by id, keeps the canonical ranked order and
// precomputes per-attribute ranks and percentiles. Immutable after
// construction, safe for concurrent use.
type Catalog struct {
	byID  map[string]Player
	order []string
	stats map[string]map[string]types.Stat // attribute -> item id -> stat
}

// New builds a catalog from rows. Rows rank by career win shares, best
// first; rows with an empty id are skipped and duplicate ids keep the
// first occurrence.
func New(players []Player) *Catalog {
	rows := make([]Player, 0, len(players))
	seen := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		rows = append(rows, p)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinShares > rows[j].WinShares
	})

	c := &Catalog{
		byID:  make(map[string]Player, len(rows)),
		order: make([]string, len(rows)),
		stats: make(map[string]map[string]types.Stat, len(StatAttributes)),
	}
	for i, p := range rows {
		c.byID[p.ID] = p
		c.order[i] = p.ID
	}
	c.computeStats(rows)

	metrics.UpdateCatalogItems(len(rows))
	return c
}

// computeStats ranks every attribute across all items. Rank 1 is the
// best value; ties keep the canonical order. Percentile runs 100
// (best) down to 0 (worst), rounded to one decimal.
func (c *Catalog) computeStats(rows []Player) {
	total := len(rows)
	for _, attr := range StatAttributes {
		ranked := make([]Player, len(rows))
		copy(ranked, rows)
		sort.SliceStable(ranked, func(i, j int) bool {
			return attrValue(ranked[i], attr) > attrValue(ranked[j], attr)
		})

		lookup := make(map[string]types.Stat, total)
		for i, p := range ranked {
			rank := i + 1
			pct := float64(total-rank) / float64(total) * 100
			lookup[p.ID] = types.Stat{
				Value:      attrValue(p, attr),
				Rank:       rank,
				Percentile: math.Round(pct*10) / 10,
			}
		}
		c.stats[attr] = lookup
	}
}

func attrValue(p Player, attr string) float64 {
	switch attr {
	case "games":
		return float64(p.Games)
	case "points":
		return float64(p.Points)
	case "rebounds":
		return float64(p.Rebounds)
	case "assists":
		return float64(p.Assists)
	case "win_shares":
		return p.WinShares
	}
	return 0
}

// Size returns the number of items in the catalog.
func (c *Catalog) Size() int {
	return len(c.order)
}

// Has reports whether the catalog knows the item.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// CanonicalOrder returns item ids ranked by career win shares, best
// first. Callers must not mutate the returned slice.
func (c *Catalog) CanonicalOrder() []string {
	return c.order
}

// Name returns the item's display name, or the id itself when the
// catalog does not know the item.
func (c *Catalog) Name(id string) string {
	if p, ok := c.byID[id]; ok {
		return p.Name
	}
	return id
}

// Card assembles the full catalog card for an item. Unknown items get
// a bare card carrying only the id, so sessions over opaque pools
// still render.
func (c *Catalog) Card(id string) types.Card {
	p, ok := c.byID[id]
	if !ok {
		return types.Card{ItemID: id}
	}
	stats := make(map[string]types.Stat, len(StatAttributes))
	for _, attr := range StatAttributes {
		stats[attr] = c.stats[attr][id]
	}
	return types.Card{
		ItemID:     p.ID,
		Name:       p.Name,
		Team:       p.Team,
		Position:   p.Position,
		CareerFrom: p.CareerFrom,
		CareerTo:   p.CareerTo,
		Stats:      stats,
	}
}

// Decorate fills display fields on standings rows in place. Unknown
// items keep their id as the display name.
func (c *Catalog) Decorate(rows []types.Standing) {
	for i := range rows {
		p, ok := c.byID[rows[i].ItemID]
		if !ok {
			rows[i].Name = rows[i].ItemID
			continue
		}
		rows[i].Name = p.Name
		rows[i].Team = p.Team
		rows[i].Position = p.Position
	}
}

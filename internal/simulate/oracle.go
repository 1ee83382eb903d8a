package simulate

import (
	"math/rand"
)

// oracle fixes a hidden total order over a session's pool and always
// votes for the better-placed side of a matchup. Its preference is
// transitive and a bounded session compares every pair exactly once,
// so the hidden order's rank-k item must end with exactly n-1-k wins;
// the win column of the final standings reproduces the hidden order
// even where the path-dependent scores transpose close neighbors.
type oracle struct {
	order  []string
	rankOf map[string]int
}

// newOracle shuffles the pool into a hidden order using the supplied
// source, so a failed run can be replayed from its seed.
func newOracle(items []string, rng *rand.Rand) *oracle {
	order := append([]string(nil), items...)
	rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	rankOf := make(map[string]int, len(order))
	for i, id := range order {
		rankOf[id] = i
	}
	return &oracle{order: order, rankOf: rankOf}
}

// pick returns the preferred side of a pair.
func (o *oracle) pick(a, b string) string {
	if o.rankOf[a] <= o.rankOf[b] {
		return a
	}
	return b
}

// size returns the number of pooled items.
func (o *oracle) size() int {
	return len(o.order)
}

// itemIDs extracts the pool membership from a standings listing.
func itemIDs(standings []standing) []string {
	ids := make([]string, len(standings))
	for i, s := range standings {
		ids[i] = s.ItemID
	}
	return ids
}

// Package standings materializes a session's ratings into display order.
package standings

import (
	"math"
	"sort"

	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/types"
)

// Compute orders the ratings descending by score with explicit 1-based
// ranks. The sort uses full-precision scores; equal scores keep the
// original pool order, so output is deterministic for a given state.
// Displayed scores are rounded to one decimal; the live ratings keep
// full precision.
func Compute(pool []string, ratings map[string]model.Rating) []types.Standing {
	rows := make([]types.Standing, 0, len(pool))
	for _, id := range pool {
		r, ok := ratings[id]
		if !ok {
			continue
		}
		rows = append(rows, types.Standing{
			ItemID: id,
			Score:  r.Score,
			Wins:   r.Wins,
			Losses: r.Losses,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Score > rows[j].Score
	})
	for i := range rows {
		rows[i].Rank = i + 1
		rows[i].Score = roundDisplay(rows[i].Score)
	}
	return rows
}

// FromSession is a convenience wrapper over Compute.
func FromSession(s *model.Session) []types.Standing {
	return Compute(s.Pool, s.Ratings)
}

func roundDisplay(score float64) float64 {
	return math.Round(score*10) / 10
}

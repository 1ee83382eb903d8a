// Package matchup selects the next pair to present for comparison.
package matchup

import (
	"math"

	"github.com/okian/joust/internal/domain/model"
)

// Next returns the most informative remaining matchup for the session:
// among all pairs not yet compared, the one with the smallest absolute
// score difference. Ties go to the first pair in pool enumeration
// order (outer index before inner), so the choice is deterministic for
// identical state.
//
// The second return is false when no matchup remains: for bounded
// sessions once the full round-robin budget is spent, and for any
// session once every pair has been compared. The pending matchup is
// never stored; callers recompute it from persisted state.
func Next(s *model.Session) (model.Pair, bool) {
	if s.Bounded() && s.Completed.Len() >= s.TotalMatchups {
		return model.Pair{}, false
	}

	var (
		best     model.Pair
		found    bool
		bestDiff = math.Inf(1)
	)
	for i := 0; i < len(s.Pool); i++ {
		for j := i + 1; j < len(s.Pool); j++ {
			p := model.NewPair(s.Pool[i], s.Pool[j])
			if s.Completed.Has(p) {
				continue
			}
			diff := math.Abs(s.Ratings[p.A].Score - s.Ratings[p.B].Score)
			if diff < bestDiff {
				bestDiff = diff
				best = p
				found = true
			}
		}
	}
	return best, found
}

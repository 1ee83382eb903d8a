package simulate

import (
	"fmt"
	"strings"
)

// verifyCompletedSession checks everything the engine promises about a
// session driven to round-robin exhaustion by a transitive voter: the
// exhausted budget, a minted share token, dense ranks, per-item records
// summing to n-1 games and win counts that reproduce the oracle's
// hidden order.
func verifyCompletedSession(sess *sessionReply, orc *oracle) error {
	n := orc.size()
	budget := n * (n - 1) / 2

	if !sess.IsComplete {
		return fmt.Errorf("session not complete after %d votes", sess.VotesCompleted)
	}
	if sess.TotalMatchups != budget {
		return fmt.Errorf("total matchups = %d, want %d for %d items", sess.TotalMatchups, budget, n)
	}
	if sess.VotesCompleted != budget {
		return fmt.Errorf("votes completed = %d, want %d", sess.VotesCompleted, budget)
	}
	if sess.ShareToken == "" {
		return fmt.Errorf("completed session carries no share token")
	}
	return verifyStandings(sess.CurrentRankings, orc)
}

// verifyStandings checks the final standings against what a transitive
// voter forces. After a full round robin the hidden order's rank-k item
// holds exactly n-1-k wins, so the win column pins down every single
// vote. The score order itself is path-dependent and may transpose
// close neighbors in larger pools, so it is checked for shape (dense
// ranks, non-increasing scores), never against the hidden order.
func verifyStandings(standings []standing, orc *oracle) error {
	n := orc.size()
	if len(standings) != n {
		return fmt.Errorf("standings list %d items, want %d", len(standings), n)
	}

	seen := make(map[string]bool, n)
	for i, st := range standings {
		if st.Rank != i+1 {
			return fmt.Errorf("standing %d has rank %d, want %d", i, st.Rank, i+1)
		}
		if seen[st.ItemID] {
			return fmt.Errorf("%s appears twice in the standings", st.ItemID)
		}
		seen[st.ItemID] = true
		if games := st.Wins + st.Losses; games != n-1 {
			return fmt.Errorf("%s played %d games, want %d", st.ItemID, games, n-1)
		}
		if i > 0 && st.Score > standings[i-1].Score {
			return fmt.Errorf("standings not sorted: %s (%.2f) above %s (%.2f)",
				standings[i-1].ItemID, standings[i-1].Score, st.ItemID, st.Score)
		}
		hiddenRank, ok := orc.rankOf[st.ItemID]
		if !ok {
			return fmt.Errorf("standings carry %s, which is not in the pool", st.ItemID)
		}
		if want := n - 1 - hiddenRank; st.Wins != want {
			return fmt.Errorf("%s has %d wins, hidden order demands %d (order: %s)",
				st.ItemID, st.Wins, want, strings.Join(orc.order, " > "))
		}
	}
	return nil
}

// verifySharedView checks a share-token lookup against the session it
// should expose.
func verifySharedView(shared *sessionReply, sessionID string, votes int) error {
	if shared.SessionID != sessionID {
		return fmt.Errorf("share token resolved to session %s, want %s", shared.SessionID, sessionID)
	}
	if !shared.IsComplete {
		return fmt.Errorf("shared session %s is not complete", shared.SessionID)
	}
	if shared.VotesCompleted != votes {
		return fmt.Errorf("shared session reports %d votes, want %d", shared.VotesCompleted, votes)
	}
	return nil
}

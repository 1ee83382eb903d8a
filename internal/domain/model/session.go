// Package model contains the domain models passed between layers.
package model

import (
	"fmt"
	"time"

	"github.com/okian/joust/internal/domain/rating"
)

// Rating is one item's live standing inside a session. The JSON shape
// matches the persisted ratings snapshot.
type Rating struct {
	Score  float64 `json:"score"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}

// Session is the ranking session aggregate. All mutation goes through
// its methods so the counter invariants cannot drift.
type Session struct {
	ID        string
	PoolSize  int      // 0 means unbounded
	Pool      []string // fixed at creation, order is the tie-break order
	Ratings   map[string]Rating
	Completed PairSet
	// VotesCompleted always equals Completed.Len(); kept as a field so
	// the persisted row carries it explicitly.
	VotesCompleted int
	// TotalMatchups is n*(n-1)/2 for bounded sessions and 0 when the
	// session is unbounded.
	TotalMatchups int
	IsComplete    bool
	ShareToken    string
	OwnerToken    string
	// Version is the optimistic concurrency stamp maintained by the
	// store; never exposed to clients.
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates a session over a resolved pool. The pool must
// already be deduplicated; order is preserved for the session's life.
func NewSession(id string, poolSize int, pool []string, ownerToken string, now time.Time) (*Session, error) {
	if len(pool) < 2 {
		return nil, fmt.Errorf("%w: got %d items", ErrPoolTooSmall, len(pool))
	}
	ratings := make(map[string]Rating, len(pool))
	for _, item := range pool {
		if _, dup := ratings[item]; dup {
			return nil, fmt.Errorf("%w: duplicate item %q", ErrDuplicateItem, item)
		}
		ratings[item] = Rating{Score: rating.InitialScore}
	}
	total := 0
	if poolSize > 0 {
		n := len(pool)
		total = n * (n - 1) / 2
	}
	return &Session{
		ID:            id,
		PoolSize:      poolSize,
		Pool:          append([]string(nil), pool...),
		Ratings:       ratings,
		Completed:     NewPairSet(),
		TotalMatchups: total,
		OwnerToken:    ownerToken,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Bounded reports whether the session completes by round-robin
// exhaustion rather than explicit finalization only.
func (s *Session) Bounded() bool {
	return s.PoolSize > 0
}

// OwnedBy reports whether token may mutate the session. Sessions
// without an owner accept any caller.
func (s *Session) OwnedBy(token string) bool {
	return s.OwnerToken == "" || s.OwnerToken == token
}

// ApplyVote records the outcome of one matchup: the winner's and
// loser's scores move per the rating model, the win/loss counters
// advance, and the pair joins the completed set. The caller is
// responsible for having validated the pair against the pending
// matchup; the checks here guard aggregate consistency only.
func (s *Session) ApplyVote(p Pair, winnerID string, now time.Time) error {
	if s.IsComplete {
		return ErrSessionComplete
	}
	if !p.Contains(winnerID) {
		return fmt.Errorf("%w: %q is not in matchup %q vs %q", ErrWinnerNotInPair, winnerID, p.A, p.B)
	}
	loserID := p.Other(winnerID)
	winner, ok := s.Ratings[winnerID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotInPool, winnerID)
	}
	loser, ok := s.Ratings[loserID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrItemNotInPool, loserID)
	}
	if s.Completed.Has(p) {
		return fmt.Errorf("%w: %q vs %q", ErrPairAlreadyCompared, p.A, p.B)
	}

	winner.Score, loser.Score = rating.Update(winner.Score, loser.Score)
	winner.Wins++
	loser.Losses++
	s.Ratings[winnerID] = winner
	s.Ratings[loserID] = loser

	s.Completed.Add(p)
	s.VotesCompleted = s.Completed.Len()
	s.UpdatedAt = now
	return nil
}

// MarkComplete transitions the session to its terminal state. Calling
// it on a complete session is a no-op.
func (s *Session) MarkComplete(now time.Time) {
	if s.IsComplete {
		return
	}
	s.IsComplete = true
	s.UpdatedAt = now
}

// EnsureShareToken assigns token when none exists yet and returns the
// session's share token. An existing token is never replaced.
func (s *Session) EnsureShareToken(token string, now time.Time) string {
	if s.ShareToken == "" && token != "" {
		s.ShareToken = token
		s.UpdatedAt = now
	}
	return s.ShareToken
}

// CheckInvariants verifies the aggregate's structural invariants.
// Stores call it before persisting; tests call it after every step.
func (s *Session) CheckInvariants() error {
	if len(s.Pool) < 2 {
		return fmt.Errorf("%w: got %d items", ErrPoolTooSmall, len(s.Pool))
	}
	if s.VotesCompleted != s.Completed.Len() {
		return fmt.Errorf("%w: votes_completed=%d completed_pairs=%d",
			ErrCounterDrift, s.VotesCompleted, s.Completed.Len())
	}
	if len(s.Ratings) != len(s.Pool) {
		return fmt.Errorf("%w: %d ratings for %d pool items",
			ErrRatingsDrift, len(s.Ratings), len(s.Pool))
	}
	for _, item := range s.Pool {
		if _, ok := s.Ratings[item]; !ok {
			return fmt.Errorf("%w: no rating for %q", ErrRatingsDrift, item)
		}
	}
	return nil
}

// Clone returns a deep copy so callers never alias live state.
func (s *Session) Clone() *Session {
	c := *s
	c.Pool = append([]string(nil), s.Pool...)
	c.Ratings = make(map[string]Rating, len(s.Ratings))
	for k, v := range s.Ratings {
		c.Ratings[k] = v
	}
	c.Completed = s.Completed.Clone()
	return &c
}

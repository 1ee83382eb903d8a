package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/joust/internal/adapters/repository"
	"github.com/okian/joust/internal/domain/matchup"
	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/pkg/logger"
	"github.com/okian/joust/pkg/metrics"
)

// StartRequest describes the pool a new ranking session should cover.
// Precedence when several sources are set: PoolCode, then Items, then
// Preset, then the catalog's canonical top-N for the requested size.
type StartRequest struct {
	// Size is one of {0, 10, 50, 100}; 0 means unbounded.
	Size       int
	Items      []string
	Preset     string
	PoolCode   string
	OwnerToken string
}

// VoteRequest names the winner of the session's pending matchup.
type VoteRequest struct {
	SessionID  string
	WinnerID   string
	OwnerToken string
}

// FinalizeRequest ends a session early and optionally mints a share link.
type FinalizeRequest struct {
	SessionID         string
	OwnerToken        string
	GenerateShareLink bool
}

// StartSession resolves the requested pool, creates the session and
// returns its initial view, first matchup included.
func (s *Service) StartSession(ctx context.Context, req StartRequest) (*SessionView, error) {
	spec := pool.Spec{Size: req.Size, Items: req.Items, Preset: req.Preset}
	if req.PoolCode != "" {
		cp, err := s.store.GetCustomPoolByCode(ctx, req.PoolCode)
		if err != nil {
			return nil, fmt.Errorf("resolve pool code %q: %w", req.PoolCode, err)
		}
		spec.Items = cp.Items
	}
	items, err := pool.Resolve(spec, s.catalog)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC()
	sess, err := model.NewSession(uuid.NewString(), req.Size, items, req.OwnerToken, now)
	if err != nil {
		return nil, err
	}
	if err := s.store.CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	metrics.RecordSessionStarted(strconv.Itoa(req.Size))
	s.logger.Info(ctx, "ranking session started",
		logger.String("sessionID", sess.ID),
		logger.Int("poolSize", len(sess.Pool)),
		logger.Int("totalMatchups", sess.TotalMatchups),
	)

	return s.viewOf(sess), nil
}

// GetSession returns the current view of a session. Reads carry no
// ownership check: knowing the id grants read access.
func (s *Service) GetSession(ctx context.Context, id string) (*SessionView, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.viewOf(sess), nil
}

// GetSharedSession resolves a public share token to its session view.
func (s *Service) GetSharedSession(ctx context.Context, token string) (*SessionView, error) {
	sess, err := s.store.GetSessionByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.viewOf(sess), nil
}

// SubmitVote applies one vote against the session's pending matchup.
// Processing is serialized per session and retried under the bounded
// budget when the store reports a version conflict; an accepted vote is
// atomic, a rejected one leaves no trace.
func (s *Service) SubmitVote(ctx context.Context, req VoteRequest) (*SessionView, error) {
	start := time.Now()

	mu := s.locks.lock(req.SessionID)
	mu.Lock()
	defer mu.Unlock()

	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		view, err := s.applyVote(ctx, req)
		if err == nil {
			metrics.RecordVote()
			metrics.RecordVoteLatency(float64(time.Since(start).Milliseconds()))
			return view, nil
		}
		if errors.Is(err, repository.ErrVersionConflict) {
			metrics.RecordVoteRetry()
			continue
		}
		metrics.RecordVoteFailure(failureReason(err))
		return nil, err
	}

	metrics.RecordVoteFailure("contention")
	return nil, fmt.Errorf("%w: session %q", ErrUnavailable, req.SessionID)
}

// applyVote runs one read-validate-mutate-persist cycle for a vote.
func (s *Service) applyVote(ctx context.Context, req VoteRequest) (*SessionView, error) {
	sess, err := s.store.GetSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if !sess.OwnedBy(req.OwnerToken) {
		return nil, fmt.Errorf("%w: session %q", ErrNotOwner, sess.ID)
	}
	if sess.IsComplete {
		return nil, fmt.Errorf("%w: session %q", model.ErrSessionComplete, sess.ID)
	}
	pending, ok := matchup.Next(sess)
	if !ok {
		return nil, fmt.Errorf("%w: session %q", ErrNoPendingMatchup, sess.ID)
	}
	if !pending.Contains(req.WinnerID) {
		return nil, fmt.Errorf("%w: %q is not in %q vs %q",
			ErrInvalidWinner, req.WinnerID, pending.A, pending.B)
	}

	now := s.clock().UTC()
	if err := sess.ApplyVote(pending, req.WinnerID, now); err != nil {
		return nil, err
	}

	// A session completes the moment no pair is left, either because the
	// bounded budget is spent or because an unbounded pool ran out of
	// untried pairs. Completion always carries a share token.
	completed := false
	if _, more := matchup.Next(sess); !more {
		sess.MarkComplete(now)
		sess.EnsureShareToken(newShareToken(), now)
		completed = true
	}

	vote := &model.Vote{
		SessionID: sess.ID,
		ItemA:     pending.A,
		ItemB:     pending.B,
		Winner:    req.WinnerID,
		CreatedAt: now,
	}
	if err := s.store.RecordVote(ctx, sess, vote); err != nil {
		return nil, err
	}

	if completed {
		metrics.RecordSessionCompleted()
		s.logger.Info(ctx, "ranking session completed",
			logger.String("sessionID", sess.ID),
			logger.Int("votes", sess.VotesCompleted),
		)
	} else {
		s.logger.Debug(ctx, "vote applied",
			logger.String("sessionID", sess.ID),
			logger.String("winner", req.WinnerID),
			logger.Int("votes", sess.VotesCompleted),
		)
	}

	return s.viewOf(sess), nil
}

// FinalizeSession ends a session regardless of remaining matchups and
// returns the final view. Finalizing a complete session is a no-op, so
// the call doubles as "fetch final results, minting a share link if
// asked and missing".
func (s *Service) FinalizeSession(ctx context.Context, req FinalizeRequest) (*SessionView, error) {
	mu := s.locks.lock(req.SessionID)
	mu.Lock()
	defer mu.Unlock()

	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		sess, err := s.store.GetSession(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if !sess.OwnedBy(req.OwnerToken) {
			return nil, fmt.Errorf("%w: session %q", ErrNotOwner, sess.ID)
		}

		now := s.clock().UTC()
		changed := false
		if !sess.IsComplete {
			sess.MarkComplete(now)
			changed = true
		}
		if req.GenerateShareLink && sess.ShareToken == "" {
			sess.EnsureShareToken(newShareToken(), now)
			changed = true
		}
		if !changed {
			return s.viewOf(sess), nil
		}

		if err := s.store.UpdateSession(ctx, sess); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				continue
			}
			return nil, err
		}

		metrics.RecordSessionFinalized()
		s.logger.Info(ctx, "ranking session finalized",
			logger.String("sessionID", sess.ID),
			logger.Int("votes", sess.VotesCompleted),
			logger.Bool("shared", sess.ShareToken != ""),
		)
		return s.viewOf(sess), nil
	}

	return nil, fmt.Errorf("%w: session %q", ErrUnavailable, req.SessionID)
}

// ListVotes returns a session's accepted votes in application order.
// Replaying them over a fresh pool reproduces the session's ratings.
func (s *Service) ListVotes(ctx context.Context, sessionID string) ([]model.Vote, error) {
	return s.store.ListVotes(ctx, sessionID)
}

// failureReason buckets vote errors into the bounded label set used by
// the failure counter.
func failureReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return "not_found"
	case errors.Is(err, ErrNotOwner):
		return "forbidden"
	case errors.Is(err, model.ErrSessionComplete):
		return "session_complete"
	case errors.Is(err, ErrNoPendingMatchup):
		return "no_pending_matchup"
	case errors.Is(err, ErrInvalidWinner):
		return "invalid_winner"
	default:
		return "other"
	}
}

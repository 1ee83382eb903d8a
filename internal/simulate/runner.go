package simulate

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/joust/pkg/logger"
)

// Scenario configuration constants.
const (
	customPoolSize       = 5
	percentageMultiplier = 100
)

// simulation carries the shared state of one run: the client, the seed
// the oracles derive from and the counters the workers update.
type simulation struct {
	cfg    *Config
	client *client
	seed   int64

	started   int64
	completed int64
	failed    int64
	votes     int64
	shares    int64
}

// Run executes the complete simulation: a health check, the scripted
// scenario checks and the concurrent session fan-out, followed by a
// final report.
func Run(ctx context.Context, config *Config) error {
	if err := config.validate(); err != nil {
		return fmt.Errorf("invalid simulation config: %w", err)
	}

	stats := &Stats{StartTime: time.Now()}
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	logger.Get().Info(ctx, "starting joust ranking simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("sessions", config.Sessions),
		logger.Int("poolSize", config.PoolSize),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int64("seed", seed),
		logger.Any("verbose", config.Verbose))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	sim := &simulation{
		cfg:    config,
		client: newClient(config.BaseURL, config.Timeout),
		seed:   seed,
	}

	if err := sim.runScenario(ctx); err != nil {
		return fmt.Errorf("scenario checks failed: %w", err)
	}
	if err := sim.runSessions(ctx); err != nil {
		return fmt.Errorf("session fan-out aborted: %w", err)
	}

	stats.SessionsStarted = int(atomic.LoadInt64(&sim.started))
	stats.SessionsCompleted = int(atomic.LoadInt64(&sim.completed))
	stats.SessionsFailed = int(atomic.LoadInt64(&sim.failed))
	stats.VotesSubmitted = int(atomic.LoadInt64(&sim.votes))
	stats.SharesVerified = int(atomic.LoadInt64(&sim.shares))
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.SessionsFailed > 0 {
		return fmt.Errorf("%d of %d sessions failed verification", stats.SessionsFailed, config.Sessions)
	}
	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newClient(config.BaseURL, config.Timeout)
	if err := client.health(ctx); err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// runSessions drives the configured number of sessions concurrently.
// A failed session is recorded and reported, not fatal: the remaining
// load keeps running and Run turns the count into the final verdict.
func (s *simulation) runSessions(ctx context.Context) error {
	log.Printf("🎯 Driving %d sessions of size %d with %d workers...",
		s.cfg.Sessions, s.cfg.PoolSize, s.cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i := 0; i < s.cfg.Sessions; i++ {
		i := i // per-iteration copy; required under go1.21 loop semantics
		g.Go(func() error {
			rng := rand.New(rand.NewSource(s.seed + int64(i) + 1))
			final, err := s.driveSession(ctx, rng, "")
			if err != nil {
				atomic.AddInt64(&s.failed, 1)
				log.Printf("⚠️  Session %d failed: %v", i, err)
				return nil
			}
			atomic.AddInt64(&s.completed, 1)

			if s.cfg.Verbose {
				logger.Get().Debug(ctx, "session verified",
					logger.String("sessionID", final.SessionID),
					logger.Int("votes", final.VotesCompleted))
			}
			done := atomic.LoadInt64(&s.completed) + atomic.LoadInt64(&s.failed)
			log.Printf("🗳️  Sessions: %d/%d done (votes: %d, failed: %d)",
				done, s.cfg.Sessions, atomic.LoadInt64(&s.votes), atomic.LoadInt64(&s.failed))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// driveSession runs one session from start to round-robin exhaustion
// with a fresh oracle, checking progress invariants on every vote and
// the full result contract at the end, share-token lookup included.
func (s *simulation) driveSession(ctx context.Context, rng *rand.Rand, poolCode string) (*sessionReply, error) {
	ownerToken := uuid.NewString()

	start, err := s.client.startSession(ctx, ownerToken, s.cfg.PoolSize, poolCode)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&s.started, 1)
	if start.FirstMatchup == nil {
		return nil, fmt.Errorf("session %s: no first matchup", start.SessionID)
	}

	view, err := s.client.getSession(ctx, start.SessionID)
	if err != nil {
		return nil, err
	}
	orc := newOracle(itemIDs(view.CurrentRankings), rng)

	budget := orc.size() * (orc.size() - 1) / 2
	if start.TotalMatchups != budget {
		return nil, fmt.Errorf("session %s: total matchups = %d, want %d for %d items",
			start.SessionID, start.TotalMatchups, budget, orc.size())
	}

	votes := 0
	next := start.FirstMatchup
	for next != nil {
		if votes >= budget {
			return nil, fmt.Errorf("session %s: still offers matchups after %d votes", start.SessionID, votes)
		}
		winner := orc.pick(next.ItemA.ItemID, next.ItemB.ItemID)
		reply, err := s.client.submitVote(ctx, ownerToken, start.SessionID, winner)
		if err != nil {
			return nil, fmt.Errorf("session %s: vote %d: %w", start.SessionID, votes+1, err)
		}
		atomic.AddInt64(&s.votes, 1)
		if reply.VotesCompleted != votes+1 {
			return nil, fmt.Errorf("session %s: vote count went %d -> %d",
				start.SessionID, votes, reply.VotesCompleted)
		}
		votes = reply.VotesCompleted
		if reply.IsComplete && reply.NextMatchup != nil {
			return nil, fmt.Errorf("session %s: complete but still offers a matchup", start.SessionID)
		}
		next = reply.NextMatchup
	}
	if votes != budget {
		return nil, fmt.Errorf("session %s: ran out of matchups after %d of %d votes",
			start.SessionID, votes, budget)
	}

	final, err := s.client.getSession(ctx, start.SessionID)
	if err != nil {
		return nil, err
	}
	if err := verifyCompletedSession(final, orc); err != nil {
		return nil, fmt.Errorf("session %s: %w", start.SessionID, err)
	}

	shared, err := s.client.getShared(ctx, final.ShareToken)
	if err != nil {
		return nil, fmt.Errorf("session %s: resolve share token: %w", start.SessionID, err)
	}
	if err := verifySharedView(shared, final.SessionID, final.VotesCompleted); err != nil {
		return nil, fmt.Errorf("session %s: %w", start.SessionID, err)
	}
	atomic.AddInt64(&s.shares, 1)

	return final, nil
}

// runScenario exercises the flows the concurrent fan-out leaves out:
// finalizing early with a minted share link, resolving that link
// publicly and ranking a stored custom pool end to end.
func (s *simulation) runScenario(ctx context.Context) error {
	log.Println("🔍 Running scenario checks...")

	rng := rand.New(rand.NewSource(s.seed))
	ownerToken := uuid.NewString()

	// Finalize half-way through and mint a share link.
	start, err := s.client.startSession(ctx, ownerToken, s.cfg.PoolSize, "")
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	atomic.AddInt64(&s.started, 1)

	view, err := s.client.getSession(ctx, start.SessionID)
	if err != nil {
		return err
	}
	orc := newOracle(itemIDs(view.CurrentRankings), rng)

	half := start.TotalMatchups / 2
	votes := 0
	next := start.FirstMatchup
	for next != nil && votes < half {
		reply, err := s.client.submitVote(ctx, ownerToken, start.SessionID,
			orc.pick(next.ItemA.ItemID, next.ItemB.ItemID))
		if err != nil {
			return fmt.Errorf("vote %d: %w", votes+1, err)
		}
		atomic.AddInt64(&s.votes, 1)
		votes = reply.VotesCompleted
		next = reply.NextMatchup
	}

	fin, err := s.client.finalize(ctx, ownerToken, start.SessionID, true)
	if err != nil {
		return fmt.Errorf("finalize session %s: %w", start.SessionID, err)
	}
	if fin.ShareToken == "" || fin.ShareURL == "" {
		return fmt.Errorf("finalize of %s minted no share link", start.SessionID)
	}
	if !strings.Contains(fin.ShareURL, fin.ShareToken) {
		return fmt.Errorf("share URL %q does not embed token %q", fin.ShareURL, fin.ShareToken)
	}
	if len(fin.FinalRankings) != orc.size() {
		return fmt.Errorf("final rankings list %d items, want %d", len(fin.FinalRankings), orc.size())
	}

	shared, err := s.client.getShared(ctx, fin.ShareToken)
	if err != nil {
		return fmt.Errorf("resolve share token: %w", err)
	}
	if err := verifySharedView(shared, start.SessionID, votes); err != nil {
		return err
	}
	atomic.AddInt64(&s.shares, 1)

	// Rank a stored custom pool end to end.
	pool, err := s.client.createPool(ctx, ownerToken, "Simulator shortlist", orc.order[:customPoolSize])
	if err != nil {
		return fmt.Errorf("create custom pool: %w", err)
	}
	if pool.ShareCode == "" {
		return errors.New("custom pool carries no share code")
	}
	if len(pool.Items) != customPoolSize || len(pool.ItemNames) != customPoolSize {
		return fmt.Errorf("custom pool stored %d items and %d names, want %d",
			len(pool.Items), len(pool.ItemNames), customPoolSize)
	}

	final, err := s.driveSession(ctx, rng, pool.ShareCode)
	if err != nil {
		return fmt.Errorf("custom pool session: %w", err)
	}
	atomic.AddInt64(&s.completed, 1)
	if final.PoolSize != customPoolSize {
		return fmt.Errorf("custom pool session ranked %d items, want %d", final.PoolSize, customPoolSize)
	}

	log.Println("✅ Scenario checks passed")
	return nil
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate, votesPerSecond float64

	if stats.SessionsStarted > 0 {
		successRate = float64(stats.SessionsCompleted) / float64(stats.SessionsStarted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		votesPerSecond = float64(stats.VotesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sessionsStarted", stats.SessionsStarted),
		logger.Int("sessionsCompleted", stats.SessionsCompleted),
		logger.Int("sessionsFailed", stats.SessionsFailed),
		logger.Int("votesSubmitted", stats.VotesSubmitted),
		logger.Int("sharesVerified", stats.SharesVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("votesPerSecond", votesPerSecond))
}

package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/pkg/metrics"
)

// MemoryStore is the in-memory Store implementation. Aggregates are
// deep-copied on the way in and out, so callers can never mutate
// stored state behind the version guard's back.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Session
	votes    map[string][]model.Vote // session id -> votes in insertion order
	pools    map[string]*model.CustomPool
	byShare  map[string]string // share token -> session id
	voteSeq  int64
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*model.Session),
		votes:    make(map[string][]model.Vote),
		pools:    make(map[string]*model.CustomPool),
		byShare:  make(map[string]string),
	}
}

// CreateSession implements Store.CreateSession.
func (m *MemoryStore) CreateSession(_ context.Context, s *model.Session) error {
	defer observe("create_session", time.Now())

	if err := s.CheckInvariants(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s.Version = 1
	m.sessions[s.ID] = s.Clone()
	if s.ShareToken != "" {
		m.byShare[s.ShareToken] = s.ID
	}
	metrics.UpdateSessionsStored(len(m.sessions))
	return nil
}

// GetSession implements Store.GetSession.
func (m *MemoryStore) GetSession(_ context.Context, id string) (*model.Session, error) {
	defer observe("get_session", time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// GetSessionByShareToken implements Store.GetSessionByShareToken.
func (m *MemoryStore) GetSessionByShareToken(_ context.Context, token string) (*model.Session, error) {
	defer observe("get_session_by_share", time.Now())

	if token == "" {
		return nil, ErrSessionNotFound
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byShare[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.Clone(), nil
}

// UpdateSession implements Store.UpdateSession.
func (m *MemoryStore) UpdateSession(_ context.Context, s *model.Session) error {
	defer observe("update_session", time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.updateLocked(s)
}

// RecordVote implements Store.RecordVote. The vote append and the
// session update happen under one lock acquisition, so readers never
// see one without the other.
func (m *MemoryStore) RecordVote(_ context.Context, s *model.Session, v *model.Vote) error {
	defer observe("record_vote", time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.updateLocked(s); err != nil {
		return err
	}
	m.voteSeq++
	v.ID = m.voteSeq
	m.votes[s.ID] = append(m.votes[s.ID], *v)
	return nil
}

// updateLocked applies the version-guarded session write. Caller holds
// the write lock.
func (m *MemoryStore) updateLocked(s *model.Session) error {
	if err := s.CheckInvariants(); err != nil {
		return err
	}
	stored, ok := m.sessions[s.ID]
	if !ok {
		return ErrSessionNotFound
	}
	if stored.Version != s.Version {
		metrics.RecordStoreConflict()
		return ErrVersionConflict
	}

	s.Version++
	next := s.Clone()
	if stored.ShareToken != "" && stored.ShareToken != next.ShareToken {
		delete(m.byShare, stored.ShareToken)
	}
	if next.ShareToken != "" {
		m.byShare[next.ShareToken] = next.ID
	}
	m.sessions[s.ID] = next
	return nil
}

// ListVotes implements Store.ListVotes.
func (m *MemoryStore) ListVotes(_ context.Context, sessionID string) ([]model.Vote, error) {
	defer observe("list_votes", time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}
	return append([]model.Vote(nil), m.votes[sessionID]...), nil
}

// CreateCustomPool implements Store.CreateCustomPool.
func (m *MemoryStore) CreateCustomPool(_ context.Context, p *model.CustomPool) error {
	defer observe("create_pool", time.Now())

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, taken := m.pools[p.ShareCode]; taken {
		return ErrShareCodeTaken
	}
	m.pools[p.ShareCode] = clonePool(p)
	return nil
}

// GetCustomPoolByCode implements Store.GetCustomPoolByCode.
func (m *MemoryStore) GetCustomPoolByCode(_ context.Context, code string) (*model.CustomPool, error) {
	defer observe("get_pool", time.Now())

	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.pools[code]
	if !ok {
		return nil, ErrPoolNotFound
	}
	return clonePool(p), nil
}

// Stats implements Store.Stats.
func (m *MemoryStore) Stats(_ context.Context) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	st := Stats{
		Sessions:    len(m.sessions),
		CustomPools: len(m.pools),
	}
	for _, s := range m.sessions {
		if s.IsComplete {
			st.CompletedSessions++
		}
	}
	for _, votes := range m.votes {
		st.Votes += len(votes)
	}
	return st, nil
}

// Close implements Store.Close. Nothing to release.
func (m *MemoryStore) Close() error {
	return nil
}

func clonePool(p *model.CustomPool) *model.CustomPool {
	c := *p
	c.Items = append([]string(nil), p.Items...)
	return &c
}

// observe records one store operation's latency.
func observe(op string, start time.Time) {
	metrics.RecordStoreOpLatency(op, float64(time.Since(start).Milliseconds()))
}

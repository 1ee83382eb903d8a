package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // sqlite driver registration

	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/pkg/metrics"
)

// SQLiteStore persists sessions, their vote log and custom pools in
// SQLite. All methods are safe for concurrent use via an internal
// mutex; session state is stored as JSON blobs next to the queryable
// columns.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLite opens, and if needed initializes, a SQLite-backed store.
// File databases run in WAL mode; ":memory:" uses a shared cache with
// a single connection so every query sees the same database.
func OpenSQLite(dsn string) (*SQLiteStore, error) {
	if dsn == "" {
		dsn = ":memory:"
	}
	connStr := dsn
	if dsn == ":memory:" {
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if dsn != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS ranking_sessions (
		id TEXT PRIMARY KEY,
		pool_size INTEGER NOT NULL,
		pool TEXT NOT NULL,
		ratings TEXT NOT NULL,
		completed TEXT NOT NULL,
		votes_completed INTEGER NOT NULL DEFAULT 0,
		total_matchups INTEGER NOT NULL DEFAULT 0,
		is_complete INTEGER NOT NULL DEFAULT 0,
		share_token TEXT UNIQUE,
		owner_token TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS matchup_votes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL REFERENCES ranking_sessions(id),
		item_a TEXT NOT NULL,
		item_b TEXT NOT NULL,
		winner TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_votes_session ON matchup_votes(session_id);

	CREATE TABLE IF NOT EXISTS custom_pools (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		items TEXT NOT NULL,
		share_code TEXT UNIQUE NOT NULL,
		is_public INTEGER NOT NULL DEFAULT 0,
		owner_token TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// CreateSession implements Store.CreateSession.
func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.Session) error {
	defer observe("create_session", time.Now())

	pool, ratings, completed, err := marshalSessionBlobs(sess)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	const firstVersion = 1
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ranking_sessions (
			id, pool_size, pool, ratings, completed, votes_completed,
			total_matchups, is_complete, share_token, owner_token,
			version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sess.ID, sess.PoolSize, pool, ratings, completed, sess.VotesCompleted,
		sess.TotalMatchups, boolToInt(sess.IsComplete), nullIfEmpty(sess.ShareToken),
		sess.OwnerToken, firstVersion, sess.CreatedAt, sess.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	sess.Version = firstVersion

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ranking_sessions").Scan(&count); err == nil {
		metrics.UpdateSessionsStored(count)
	}
	return nil
}

const sessionColumns = `id, pool_size, pool, ratings, completed, votes_completed,
	total_matchups, is_complete, share_token, owner_token, version, created_at, updated_at`

// GetSession implements Store.GetSession.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	defer observe("get_session", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM ranking_sessions WHERE id = ?", id)
	return scanSession(row)
}

// GetSessionByShareToken implements Store.GetSessionByShareToken.
func (s *SQLiteStore) GetSessionByShareToken(ctx context.Context, token string) (*model.Session, error) {
	defer observe("get_session_by_share", time.Now())

	if token == "" {
		return nil, ErrSessionNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM ranking_sessions WHERE share_token = ?", token)
	return scanSession(row)
}

// UpdateSession implements Store.UpdateSession.
func (s *SQLiteStore) UpdateSession(ctx context.Context, sess *model.Session) error {
	defer observe("update_session", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := updateSessionTx(ctx, tx, sess); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit session update: %w", err)
	}
	sess.Version++
	return nil
}

// RecordVote implements Store.RecordVote. The session update and the
// vote append share one transaction, so readers never see one without
// the other.
func (s *SQLiteStore) RecordVote(ctx context.Context, sess *model.Session, v *model.Vote) error {
	defer observe("record_vote", time.Now())

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := updateSessionTx(ctx, tx, sess); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `
		INSERT INTO matchup_votes (session_id, item_a, item_b, winner, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, v.SessionID, v.ItemA, v.ItemB, v.Winner, v.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert vote: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("vote id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit vote: %w", err)
	}
	v.ID = id
	sess.Version++
	return nil
}

// updateSessionTx writes the mutable session columns under the version
// guard. Zero affected rows means either a missing session or a stale
// version; the follow-up lookup tells the two apart.
func updateSessionTx(ctx context.Context, tx *sql.Tx, sess *model.Session) error {
	_, ratings, completed, err := marshalSessionBlobs(sess)
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE ranking_sessions SET
			ratings = ?, completed = ?, votes_completed = ?, is_complete = ?,
			share_token = ?, version = ?, updated_at = ?
		WHERE id = ? AND version = ?
	`, ratings, completed, sess.VotesCompleted, boolToInt(sess.IsComplete),
		nullIfEmpty(sess.ShareToken), sess.Version+1, sess.UpdatedAt,
		sess.ID, sess.Version)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session result: %w", err)
	}
	if n == 0 {
		var one int
		err := tx.QueryRowContext(ctx,
			"SELECT 1 FROM ranking_sessions WHERE id = ?", sess.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("classify update miss: %w", err)
		}
		metrics.RecordStoreConflict()
		return ErrVersionConflict
	}
	return nil
}

// ListVotes implements Store.ListVotes.
func (s *SQLiteStore) ListVotes(ctx context.Context, sessionID string) ([]model.Vote, error) {
	defer observe("list_votes", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM ranking_sessions WHERE id = ?", sessionID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, item_a, item_b, winner, created_at
		FROM matchup_votes
		WHERE session_id = ?
		ORDER BY id ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query votes: %w", err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var votes []model.Vote
	for rows.Next() {
		var v model.Vote
		if err := rows.Scan(&v.ID, &v.SessionID, &v.ItemA, &v.ItemB, &v.Winner, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read votes: %w", err)
	}
	return votes, nil
}

// CreateCustomPool implements Store.CreateCustomPool.
func (s *SQLiteStore) CreateCustomPool(ctx context.Context, p *model.CustomPool) error {
	defer observe("create_pool", time.Now())

	items, err := json.Marshal(p.Items)
	if err != nil {
		return fmt.Errorf("marshal pool items: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var one int
	err = s.db.QueryRowContext(ctx,
		"SELECT 1 FROM custom_pools WHERE share_code = ?", p.ShareCode).Scan(&one)
	if err == nil {
		return ErrShareCodeTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check share code: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO custom_pools (id, name, description, items, share_code, is_public, owner_token, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Description, string(items), p.ShareCode,
		boolToInt(p.Public), p.OwnerToken, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert pool: %w", err)
	}
	return nil
}

// GetCustomPoolByCode implements Store.GetCustomPoolByCode.
func (s *SQLiteStore) GetCustomPoolByCode(ctx context.Context, code string) (*model.CustomPool, error) {
	defer observe("get_pool", time.Now())

	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, items, share_code, is_public, owner_token, created_at
		FROM custom_pools
		WHERE share_code = ?
	`, code)

	var (
		p        model.CustomPool
		items    string
		isPublic int
	)
	err := row.Scan(&p.ID, &p.Name, &p.Description, &items, &p.ShareCode, &isPublic, &p.OwnerToken, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPoolNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pool: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &p.Items); err != nil {
		return nil, fmt.Errorf("unmarshal pool items: %w", err)
	}
	p.Public = isPublic != 0
	return &p, nil
}

// Stats implements Store.Stats.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM ranking_sessions),
			(SELECT COUNT(*) FROM ranking_sessions WHERE is_complete = 1),
			(SELECT COUNT(*) FROM matchup_votes),
			(SELECT COUNT(*) FROM custom_pools)
	`).Scan(&st.Sessions, &st.CompletedSessions, &st.Votes, &st.CustomPools)
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return st, nil
}

// scanner abstracts sql.Row for session hydration.
type scanner interface {
	Scan(dest ...any) error
}

// scanSession hydrates a session aggregate from a full column row.
func scanSession(row scanner) (*model.Session, error) {
	var (
		sess       model.Session
		pool       string
		ratings    string
		completed  string
		isComplete int
		shareToken sql.NullString
	)
	err := row.Scan(&sess.ID, &sess.PoolSize, &pool, &ratings, &completed,
		&sess.VotesCompleted, &sess.TotalMatchups, &isComplete, &shareToken,
		&sess.OwnerToken, &sess.Version, &sess.CreatedAt, &sess.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	if err := json.Unmarshal([]byte(pool), &sess.Pool); err != nil {
		return nil, fmt.Errorf("unmarshal pool: %w", err)
	}
	if err := json.Unmarshal([]byte(ratings), &sess.Ratings); err != nil {
		return nil, fmt.Errorf("unmarshal ratings: %w", err)
	}
	if err := json.Unmarshal([]byte(completed), &sess.Completed); err != nil {
		return nil, fmt.Errorf("unmarshal completed pairs: %w", err)
	}
	sess.IsComplete = isComplete != 0
	sess.ShareToken = shareToken.String
	return &sess, nil
}

// marshalSessionBlobs serializes the session's JSON columns. Every
// write path funnels through here, so it doubles as the pre-persist
// invariant gate.
func marshalSessionBlobs(s *model.Session) (pool, ratings, completed string, err error) {
	if err := s.CheckInvariants(); err != nil {
		return "", "", "", err
	}
	poolB, err := json.Marshal(s.Pool)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal pool: %w", err)
	}
	ratingsB, err := json.Marshal(s.Ratings)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal ratings: %w", err)
	}
	completedB, err := json.Marshal(s.Completed)
	if err != nil {
		return "", "", "", fmt.Errorf("marshal completed pairs: %w", err)
	}
	return string(poolB), string(ratingsB), string(completedB), nil
}

// nullIfEmpty maps empty strings to NULL so the share token's UNIQUE
// constraint ignores sessions that have no token yet.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// boolToInt converts a bool to an int for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

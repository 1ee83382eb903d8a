package model

import "time"

// Vote is one append-only log entry. The live ratings map is a derived
// cache: replaying a session's votes in insertion order from initial
// ratings must reproduce it exactly.
type Vote struct {
	ID        int64 // assigned by the store, preserves insertion order
	SessionID string
	ItemA     string
	ItemB     string
	Winner    string
	CreatedAt time.Time
}

// Pair returns the vote's matchup.
func (v Vote) Pair() Pair {
	return NewPair(v.ItemA, v.ItemB)
}

// CustomPool is a user-defined, shareable item list usable as a session
// pool source. Immutable once created.
type CustomPool struct {
	ID          string
	Name        string
	Description string
	Items       []string
	ShareCode   string
	Public      bool
	OwnerToken  string
	CreatedAt   time.Time
}

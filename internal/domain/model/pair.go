package model

import (
	"encoding/json"
	"sort"
)

// Pair is an unordered pair of item identifiers. A and B keep the order
// in which the pair was first presented; identity ignores order.
type Pair struct {
	A string `json:"item_a"`
	B string `json:"item_b"`
}

// NewPair builds a pair from two distinct item identifiers.
func NewPair(a, b string) Pair {
	return Pair{A: a, B: b}
}

// Key returns an order-insensitive identity for the pair.
func (p Pair) Key() string {
	if p.B < p.A {
		return p.B + "\x00" + p.A
	}
	return p.A + "\x00" + p.B
}

// Contains reports whether id is one of the pair's items.
func (p Pair) Contains(id string) bool {
	return id == p.A || id == p.B
}

// Other returns the counterpart of id within the pair, or "" when id is
// not part of it.
func (p Pair) Other(id string) string {
	switch id {
	case p.A:
		return p.B
	case p.B:
		return p.A
	}
	return ""
}

// PairSet is a set of unordered pairs. The zero value is not usable;
// construct with NewPairSet.
type PairSet struct {
	m map[string]Pair
}

// NewPairSet returns an empty set.
func NewPairSet() PairSet {
	return PairSet{m: make(map[string]Pair)}
}

// Add inserts p and reports whether it was newly added.
func (s PairSet) Add(p Pair) bool {
	if _, ok := s.m[p.Key()]; ok {
		return false
	}
	s.m[p.Key()] = p
	return true
}

// Has reports whether p is in the set, regardless of item order.
func (s PairSet) Has(p Pair) bool {
	_, ok := s.m[p.Key()]
	return ok
}

// Len returns the number of pairs in the set.
func (s PairSet) Len() int {
	return len(s.m)
}

// Pairs returns the set's contents ordered by pair key, so repeated
// calls on unchanged state yield identical slices.
func (s PairSet) Pairs() []Pair {
	keys := make([]string, 0, len(s.m))
	for k := range s.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Pair, len(keys))
	for i, k := range keys {
		out[i] = s.m[k]
	}
	return out
}

// Clone returns an independent copy of the set.
func (s PairSet) Clone() PairSet {
	c := NewPairSet()
	for k, v := range s.m {
		c.m[k] = v
	}
	return c
}

// MarshalJSON encodes the set as a deterministic array of [a, b] pairs.
func (s PairSet) MarshalJSON() ([]byte, error) {
	pairs := s.Pairs()
	out := make([][2]string, len(pairs))
	for i, p := range pairs {
		out[i] = [2]string{p.A, p.B}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes an array of [a, b] pairs.
func (s *PairSet) UnmarshalJSON(data []byte) error {
	var in [][2]string
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*s = NewPairSet()
	for _, ab := range in {
		s.Add(NewPair(ab[0], ab[1]))
	}
	return nil
}

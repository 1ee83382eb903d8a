// Package types contains common types shared across the application.
package types

// Standing is one row of a materialized ranking. Name, Team and
// Position are filled from the catalog when the item is known there.
type Standing struct {
	Rank     int     `json:"rank"`
	ItemID   string  `json:"item_id"`
	Score    float64 `json:"score"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	Name     string  `json:"name,omitempty"`
	Team     string  `json:"team,omitempty"`
	Position string  `json:"position,omitempty"`
}

// Stat is one precomputed catalog statistic for an item.
type Stat struct {
	Value      float64 `json:"value"`
	Rank       int     `json:"rank"`
	Percentile float64 `json:"percentile"`
}

// Card carries an item's catalog attributes. The engine embeds cards
// into matchup payloads unmodified.
type Card struct {
	ItemID     string          `json:"item_id"`
	Name       string          `json:"name,omitempty"`
	Team       string          `json:"team,omitempty"`
	Position   string          `json:"position,omitempty"`
	CareerFrom int             `json:"career_from,omitempty"`
	CareerTo   int             `json:"career_to,omitempty"`
	Stats      map[string]Stat `json:"stats,omitempty"`
}

// Matchup is the wire form of a pending pair, catalog cards included.
type Matchup struct {
	ItemA Card `json:"item_a"`
	ItemB Card `json:"item_b"`
}

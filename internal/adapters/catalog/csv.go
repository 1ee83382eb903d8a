package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrEmptyCatalog means the source yielded no usable rows.
var ErrEmptyCatalog = errors.New("catalog has no items")

// Column names a catalog CSV must carry. Column order is free and
// extra columns are ignored.
const (
	colID         = "id"
	colName       = "name"
	colPosition   = "position"
	colTeam       = "team"
	colCareerFrom = "career_from"
	colCareerTo   = "career_to"
	colGames      = "games"
	colPoints     = "points"
	colRebounds   = "rebounds"
	colAssists    = "assists"
	colWinShares  = "win_shares"
)

// LoadFile reads a catalog CSV from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog csv: %w", err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog csv %s: %w", path, err)
	}
	return c, nil
}

// Parse reads catalog rows from CSV. The first record is the header;
// fields match by name, so column order does not matter. Rows without
// an id are skipped, and numeric fields that fail to parse count as
// zero rather than failing the whole load.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := idx[colID]; !ok {
		return nil, fmt.Errorf("csv header missing %q column", colID)
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var players []Player
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		id := field(rec, colID)
		if id == "" {
			continue
		}
		players = append(players, Player{
			ID:         id,
			Name:       field(rec, colName),
			Position:   field(rec, colPosition),
			Team:       field(rec, colTeam),
			CareerFrom: atoiOrZero(field(rec, colCareerFrom)),
			CareerTo:   atoiOrZero(field(rec, colCareerTo)),
			Games:      atoiOrZero(field(rec, colGames)),
			Points:     atoiOrZero(field(rec, colPoints)),
			Rebounds:   atoiOrZero(field(rec, colRebounds)),
			Assists:    atoiOrZero(field(rec, colAssists)),
			WinShares:  atofOrZero(field(rec, colWinShares)),
		})
	}
	if len(players) == 0 {
		return nil, ErrEmptyCatalog
	}
	return New(players), nil
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func atofOrZero(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

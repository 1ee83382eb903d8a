package service

import (
	"time"

	"github.com/okian/joust/internal/domain/matchup"
	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/standings"
	"github.com/okian/joust/internal/domain/types"
)

// SessionView is the caller-facing snapshot of one ranking session.
// The HTTP layer projects the per-endpoint response shapes from it.
type SessionView struct {
	ID string
	// PoolSize is the number of items being ranked, after resolution.
	PoolSize       int
	VotesCompleted int
	// TotalMatchups is 0 for unbounded sessions; such sessions end only
	// by explicit finalization or literal pair exhaustion.
	TotalMatchups int
	IsComplete    bool
	Standings     []types.Standing
	// NextMatchup is nil once the session is complete or out of pairs.
	NextMatchup *types.Matchup
	ShareToken  string
	ShareURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PoolView is the caller-facing snapshot of one custom pool.
type PoolView struct {
	ID          string
	Name        string
	Description string
	Items       []string
	// ItemNames parallels Items with display names; ids the catalog does
	// not know fall back to the raw id.
	ItemNames []string
	ShareCode string
	Public    bool
	CreatedAt time.Time
}

// viewOf snapshots a session: standings decorated from the catalog,
// plus the pending matchup recomputed from the session's current state.
func (s *Service) viewOf(sess *model.Session) *SessionView {
	rows := standings.FromSession(sess)
	s.catalog.Decorate(rows)

	v := &SessionView{
		ID:             sess.ID,
		PoolSize:       len(sess.Pool),
		VotesCompleted: sess.VotesCompleted,
		TotalMatchups:  sess.TotalMatchups,
		IsComplete:     sess.IsComplete,
		Standings:      rows,
		ShareToken:     sess.ShareToken,
		ShareURL:       s.shareURL(sess.ShareToken),
		CreatedAt:      sess.CreatedAt,
		UpdatedAt:      sess.UpdatedAt,
	}
	if !sess.IsComplete {
		if pending, ok := matchup.Next(sess); ok {
			m := types.Matchup{
				ItemA: s.catalog.Card(pending.A),
				ItemB: s.catalog.Card(pending.B),
			}
			v.NextMatchup = &m
		}
	}
	return v
}

func (s *Service) poolView(p *model.CustomPool) *PoolView {
	names := make([]string, len(p.Items))
	for i, id := range p.Items {
		names[i] = s.catalog.Name(id)
	}
	return &PoolView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Items:       append([]string(nil), p.Items...),
		ItemNames:   names,
		ShareCode:   p.ShareCode,
		Public:      p.Public,
		CreatedAt:   p.CreatedAt,
	}
}

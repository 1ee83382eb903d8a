// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	service "github.com/okian/joust/internal/app"
	"github.com/okian/joust/internal/domain/pool"
	"github.com/okian/joust/internal/domain/types"
	"github.com/okian/joust/pkg/metrics"
)

// Views and request shapes are owned by the service layer; the aliases
// keep handler signatures readable without re-exporting the package.
type (
	SessionView       = service.SessionView
	PoolView          = service.PoolView
	StartRequest      = service.StartRequest
	VoteRequest       = service.VoteRequest
	FinalizeRequest   = service.FinalizeRequest
	CreatePoolRequest = service.CreatePoolRequest
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	StartSession(ctx context.Context, req StartRequest) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	SubmitVote(ctx context.Context, req VoteRequest) (*SessionView, error)
	FinalizeSession(ctx context.Context, req FinalizeRequest) (*SessionView, error)
	GetSharedSession(ctx context.Context, token string) (*SessionView, error)

	CreateCustomPool(ctx context.Context, req CreatePoolRequest) (*PoolView, error)
	GetCustomPool(ctx context.Context, code string) (*PoolView, error)
	Presets() []pool.Preset
}

// ownerTokenHeader carries the caller's claim on mutable sessions.
const ownerTokenHeader = "X-Owner-Token"

// Server wires HTTP routes for the ranking API.
type Server struct {
	rankingsHandler *RankingsHandler
	sharedHandler   *SharedHandler
	poolsHandler    *PoolsHandler
	statsHandler    *StatsHandler
	healthHandler   *HealthHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		rankingsHandler: NewRankingsHandler(deps),
		sharedHandler:   NewSharedHandler(deps),
		poolsHandler:    NewPoolsHandler(deps),
		statsHandler:    NewStatsHandler(statsProvider),
		healthHandler:   NewHealthHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	mux.HandleFunc("/api/v1/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/rankings", MetricsMiddleware(s.rankingsHandler.HandleCreate, "rankings"))
	mux.HandleFunc("/api/v1/rankings/", MetricsMiddleware(s.rankingsHandler.HandleSession, "rankings"))
	mux.HandleFunc("/api/v1/shared/", MetricsMiddleware(s.sharedHandler.HandleGetShared, "shared"))
	mux.HandleFunc("/api/v1/pools", MetricsMiddleware(s.poolsHandler.HandleCreate, "pools"))
	mux.HandleFunc("/api/v1/pools/", MetricsMiddleware(s.poolsHandler.HandleGet, "pools"))
}

// ownerToken extracts the caller's owner claim, empty when absent.
func ownerToken(r *http.Request) string {
	return r.Header.Get(ownerTokenHeader)
}

// startResponse mirrors the POST /api/v1/rankings reply.
type startResponse struct {
	SessionID     string         `json:"session_id"`
	PoolSize      int            `json:"pool_size"`
	TotalMatchups int            `json:"total_matchups,omitempty"`
	FirstMatchup  *types.Matchup `json:"first_matchup"`
}

// voteResponse mirrors the POST .../votes reply: standings and the next
// matchup both reflect the state after the vote was applied.
type voteResponse struct {
	VotesCompleted  int              `json:"votes_completed"`
	TotalMatchups   int              `json:"total_matchups,omitempty"`
	CurrentRankings []types.Standing `json:"current_rankings"`
	NextMatchup     *types.Matchup   `json:"next_matchup,omitempty"`
	IsComplete      bool             `json:"is_complete"`
}

// sessionResponse mirrors GET .../rankings/{id} and GET /shared/{token}.
type sessionResponse struct {
	SessionID       string           `json:"session_id"`
	PoolSize        int              `json:"pool_size"`
	IsComplete      bool             `json:"is_complete"`
	VotesCompleted  int              `json:"votes_completed"`
	TotalMatchups   int              `json:"total_matchups,omitempty"`
	CurrentRankings []types.Standing `json:"current_rankings"`
	ShareToken      string           `json:"share_token,omitempty"`
	ShareURL        string           `json:"share_url,omitempty"`
}

// finalizeResponse mirrors the POST .../finalize reply.
type finalizeResponse struct {
	FinalRankings []types.Standing `json:"final_rankings"`
	ShareToken    string           `json:"share_token,omitempty"`
	ShareURL      string           `json:"share_url,omitempty"`
}

// poolResponse mirrors custom pool replies.
type poolResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Items       []string  `json:"items"`
	ItemNames   []string  `json:"item_names"`
	ShareCode   string    `json:"share_code"`
	Public      bool      `json:"public"`
	CreatedAt   time.Time `json:"created_at"`
}

func toStartResponse(v *SessionView) startResponse {
	return startResponse{
		SessionID:     v.ID,
		PoolSize:      v.PoolSize,
		TotalMatchups: v.TotalMatchups,
		FirstMatchup:  v.NextMatchup,
	}
}

func toVoteResponse(v *SessionView) voteResponse {
	return voteResponse{
		VotesCompleted:  v.VotesCompleted,
		TotalMatchups:   v.TotalMatchups,
		CurrentRankings: v.Standings,
		NextMatchup:     v.NextMatchup,
		IsComplete:      v.IsComplete,
	}
}

func toSessionResponse(v *SessionView) sessionResponse {
	return sessionResponse{
		SessionID:       v.ID,
		PoolSize:        v.PoolSize,
		IsComplete:      v.IsComplete,
		VotesCompleted:  v.VotesCompleted,
		TotalMatchups:   v.TotalMatchups,
		CurrentRankings: v.Standings,
		ShareToken:      v.ShareToken,
		ShareURL:        v.ShareURL,
	}
}

func toFinalizeResponse(v *SessionView) finalizeResponse {
	return finalizeResponse{
		FinalRankings: v.Standings,
		ShareToken:    v.ShareToken,
		ShareURL:      v.ShareURL,
	}
}

func toPoolResponse(v *PoolView) poolResponse {
	return poolResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Items:       v.Items,
		ItemNames:   v.ItemNames,
		ShareCode:   v.ShareCode,
		Public:      v.Public,
		CreatedAt:   v.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

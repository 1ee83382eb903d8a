// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// RankingDependencies defines the interface for session operations.
type RankingDependencies interface {
	StartSession(ctx context.Context, req StartRequest) (*SessionView, error)
	GetSession(ctx context.Context, id string) (*SessionView, error)
	SubmitVote(ctx context.Context, req VoteRequest) (*SessionView, error)
	FinalizeSession(ctx context.Context, req FinalizeRequest) (*SessionView, error)
}

// RankingsHandler handles ranking session requests.
type RankingsHandler struct {
	deps RankingDependencies
}

// NewRankingsHandler creates a new rankings handler.
func NewRankingsHandler(deps RankingDependencies) *RankingsHandler {
	return &RankingsHandler{deps: deps}
}

// startRankingRequest mirrors the POST /api/v1/rankings body.
type startRankingRequest struct {
	PoolSize int      `json:"pool_size"`
	Items    []string `json:"items,omitempty"`
	Preset   string   `json:"preset,omitempty"`
	PoolCode string   `json:"pool_code,omitempty"`
}

// submitVoteRequest mirrors the POST .../votes body.
type submitVoteRequest struct {
	WinnerID string `json:"winner_id"`
}

func (v submitVoteRequest) validate() error {
	if strings.TrimSpace(v.WinnerID) == "" {
		return errors.New("missing winner_id")
	}
	return nil
}

// finalizeSessionRequest mirrors the POST .../finalize body. The body
// may be omitted entirely; everything defaults to false.
type finalizeSessionRequest struct {
	GenerateShareLink bool `json:"generate_share_link"`
}

// HandleCreate handles POST /api/v1/rankings requests.
func (h *RankingsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.start_ranking"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req startRankingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.StartSession(r.Context(), StartRequest{
		Size:       req.PoolSize,
		Items:      req.Items,
		Preset:     strings.TrimSpace(req.Preset),
		PoolCode:   strings.TrimSpace(req.PoolCode),
		OwnerToken: ownerToken(r),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toStartResponse(view))
}

// HandleSession dispatches requests under /api/v1/rankings/{id}:
// GET {id}, POST {id}/votes and POST {id}/finalize.
func (h *RankingsHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/rankings/")
	id, sub, _ := strings.Cut(path, "/")
	if id == "" || strings.Contains(sub, "/") {
		http.NotFound(w, r)
		return
	}
	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.handleGet(w, r, id)
	case sub == "votes" && r.Method == http.MethodPost:
		h.handleVote(w, r, id)
	case sub == "finalize" && r.Method == http.MethodPost:
		h.handleFinalize(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (h *RankingsHandler) handleGet(w http.ResponseWriter, r *http.Request, id string) {
	view, err := h.deps.GetSession(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

func (h *RankingsHandler) handleVote(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.submit_vote"
	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.SubmitVote(r.Context(), VoteRequest{
		SessionID:  id,
		WinnerID:   strings.TrimSpace(req.WinnerID),
		OwnerToken: ownerToken(r),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toVoteResponse(view))
}

func (h *RankingsHandler) handleFinalize(w http.ResponseWriter, r *http.Request, id string) {
	const op = "api.finalize_ranking"
	var req finalizeSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.FinalizeSession(r.Context(), FinalizeRequest{
		SessionID:         id,
		OwnerToken:        ownerToken(r),
		GenerateShareLink: req.GenerateShareLink,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toFinalizeResponse(view))
}

// SharedDependencies defines the interface for share token lookups.
type SharedDependencies interface {
	GetSharedSession(ctx context.Context, token string) (*SessionView, error)
}

// SharedHandler handles public share link requests.
type SharedHandler struct {
	deps SharedDependencies
}

// NewSharedHandler creates a new shared handler.
func NewSharedHandler(deps SharedDependencies) *SharedHandler {
	return &SharedHandler{deps: deps}
}

// HandleGetShared handles GET /api/v1/shared/{token} requests. Share
// reads never check ownership: the token itself is the capability.
func (h *SharedHandler) HandleGetShared(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_shared"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	token := strings.TrimPrefix(r.URL.Path, "/api/v1/shared/")
	if token == "" || strings.Contains(token, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	view, err := h.deps.GetSharedSession(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(view))
}

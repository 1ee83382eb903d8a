// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/joust/internal/domain/pool"
)

// PoolDependencies defines the interface for custom pool operations.
type PoolDependencies interface {
	CreateCustomPool(ctx context.Context, req CreatePoolRequest) (*PoolView, error)
	GetCustomPool(ctx context.Context, code string) (*PoolView, error)
	Presets() []pool.Preset
}

// PoolsHandler handles custom pool requests.
type PoolsHandler struct {
	deps PoolDependencies
}

// NewPoolsHandler creates a new pools handler.
func NewPoolsHandler(deps PoolDependencies) *PoolsHandler {
	return &PoolsHandler{deps: deps}
}

// createPoolRequest mirrors the POST /api/v1/pools body.
type createPoolRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Items       []string `json:"items"`
	Public      bool     `json:"public"`
}

// HandleCreate handles POST /api/v1/pools requests.
func (h *PoolsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_pool"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req createPoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	view, err := h.deps.CreateCustomPool(r.Context(), CreatePoolRequest{
		Name:        req.Name,
		Description: req.Description,
		Items:       req.Items,
		Public:      req.Public,
		OwnerToken:  ownerToken(r),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPoolResponse(view))
}

// HandleGet dispatches GET /api/v1/pools/{code} and the reserved
// GET /api/v1/pools/presets listing.
func (h *PoolsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_pool"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	code := strings.TrimPrefix(r.URL.Path, "/api/v1/pools/")
	if code == "" || strings.Contains(code, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if code == "presets" {
		writeJSON(w, http.StatusOK, h.deps.Presets())
		return
	}
	view, err := h.deps.GetCustomPool(r.Context(), code)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPoolResponse(view))
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/joust/internal/adapters/repository"
	service "github.com/okian/joust/internal/app"
	"github.com/okian/joust/internal/domain/model"
	"github.com/okian/joust/internal/domain/pool"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// NewKind tags a sentinel with the operation that raised it.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// WrapKind tags a sentinel with the operation and the underlying cause.
func WrapKind(op string, kind, cause error) error {
	return fmt.Errorf("%s: %w: %v", op, kind, cause)
}

// errorBody is the stable machine-readable failure shape.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: msg}})
}

// writeServiceError translates a service failure into its stable code
// and status. Unrecognized errors become an opaque 500 so internals
// never leak to clients.
func writeServiceError(w http.ResponseWriter, err error) {
	status, code := errorCode(err)
	if status == http.StatusInternalServerError {
		writeError(w, status, code, nil)
		return
	}
	writeError(w, status, code, err)
}

// errorCode maps the engine's failure taxonomy onto HTTP.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrPoolNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, service.ErrNotOwner):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, model.ErrSessionComplete):
		return http.StatusBadRequest, "session_complete"
	case errors.Is(err, service.ErrNoPendingMatchup):
		return http.StatusBadRequest, "no_pending_matchup"
	case errors.Is(err, service.ErrInvalidWinner):
		return http.StatusBadRequest, "invalid_winner"
	case errors.Is(err, pool.ErrInvalidSize),
		errors.Is(err, pool.ErrUnknownPreset),
		errors.Is(err, model.ErrPoolTooSmall),
		errors.Is(err, service.ErrPoolNameRequired),
		errors.Is(err, service.ErrPoolTooLarge),
		errors.Is(err, service.ErrUnknownItems):
		return http.StatusBadRequest, "invalid_pool"
	case errors.Is(err, service.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

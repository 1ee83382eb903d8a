package service

import "errors"

// Sentinel kinds for service-level failures. The HTTP layer maps each
// to a status code; domain and store sentinels pass through untouched.
var (
	// ErrNotOwner rejects a mutation attempted with the wrong owner token.
	ErrNotOwner = errors.New("session is owned by another token")
	// ErrNoPendingMatchup means the session has no pair left to compare.
	// A vote hitting it on an incomplete session indicates a bug, so it
	// is surfaced instead of swallowed.
	ErrNoPendingMatchup = errors.New("no pending matchup")
	// ErrInvalidWinner rejects a vote whose winner is not part of the
	// currently pending matchup.
	ErrInvalidWinner = errors.New("winner is not part of the pending matchup")
	// ErrUnavailable is returned once the bounded write-conflict retries
	// are exhausted. The whole operation is safe to resubmit.
	ErrUnavailable = errors.New("session is contended, retry the request")
	// ErrPoolNameRequired rejects a custom pool without a display name.
	ErrPoolNameRequired = errors.New("custom pool needs a name")
	// ErrPoolTooLarge rejects a custom pool above the item cap.
	ErrPoolTooLarge = errors.New("custom pool has too many items")
	// ErrUnknownItems rejects a custom pool referencing ids the catalog
	// does not know.
	ErrUnknownItems = errors.New("custom pool references unknown items")
)

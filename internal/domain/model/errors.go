package model

import "errors"

// Sentinel errors for aggregate consistency violations.
var (
	ErrPoolTooSmall        = errors.New("pool needs at least 2 items")
	ErrDuplicateItem       = errors.New("pool contains a duplicate item")
	ErrSessionComplete     = errors.New("ranking session is already complete")
	ErrWinnerNotInPair     = errors.New("winner is not part of the matchup")
	ErrItemNotInPool       = errors.New("item is not part of the session pool")
	ErrPairAlreadyCompared = errors.New("matchup was already compared")
	ErrCounterDrift        = errors.New("vote counter diverged from completed pairs")
	ErrRatingsDrift        = errors.New("ratings diverged from session pool")
)

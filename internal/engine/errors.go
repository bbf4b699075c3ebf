package engine

import "errors"

// Errors for session lifecycle misuse.
var (
	ErrSessionActive   = errors.New("a study session is already active")
	ErrNoActiveSession = errors.New("no active study session")
)

// Errors for deck file exchange.
var (
	ErrInvalidDeck  = errors.New("invalid deck file")
	ErrDeckTooLarge = errors.New("deck file too large")
)

package session

import "errors"

// Common errors.
var (
	ErrSessionEnded       = errors.New("session already ended")
	ErrInvalidSessionType = errors.New("invalid session type")
)

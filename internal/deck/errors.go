package deck

import "errors"

// Common errors.
var (
	ErrCardNotFound     = errors.New("card not found")
	ErrMissingCardID    = errors.New("card id cannot be empty")
	ErrEmptyFront       = errors.New("card front cannot be empty")
	ErrEmptyBack        = errors.New("card back cannot be empty")
	ErrFrontTooLong     = errors.New("card front too long")
	ErrBackTooLong      = errors.New("card back too long")
	ErrTagTooLong       = errors.New("tag too long")
	ErrNegativeLimit    = errors.New("result limit cannot be negative")
	ErrInvalidSortField = errors.New("invalid sort field")
)

package srs

import "errors"

var (
	ErrInvalidQuality = errors.New("srs: invalid quality grade")
	ErrInvalidTier    = errors.New("srs: invalid difficulty tier")
	ErrInvalidConfig  = errors.New("srs: invalid scheduler config")
)

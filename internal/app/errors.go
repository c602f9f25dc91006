package app

import "errors"

// Sentinel kinds for input validation.
var (
	ErrInvalidWeight = errors.New("weight must be positive when set")
	ErrInvalidVolume = errors.New("volume must be positive")
	ErrInvalidABV    = errors.New("abv must not be negative")
)

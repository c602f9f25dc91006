package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound       = errors.New("subject not found")
	ErrInvalidSubject = errors.New("invalid subject")
)

package repository

import "errors"

// Sentinel kinds for draw store errors.
var (
	ErrNotFound  = errors.New("draw not found")
	ErrInvalidID = errors.New("invalid draw id")
)

package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	ErrInvalidInput = errors.New("invalid draw input")
	ErrNotStarted   = errors.New("service not started")
)

package model

import "errors"

// Sentinel kinds for roster validation.
var (
	ErrInvalidRoster        = errors.New("invalid roster")
	ErrDuplicateParticipant = errors.New("duplicate participant")
)

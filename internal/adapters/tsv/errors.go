package tsv

import "errors"

// Sentinel kinds for roster parsing.
var (
	ErrNoParticipants = errors.New("no participants found")
	ErrRead           = errors.New("read roster failed")
)

package draw

import "errors"

// Sentinel error kinds for this package. These allow errors.Is from callers.
var (
	// ErrRealization means a degree sequence handed to the realizer was not
	// realizable for its group. It signals a broken invariant upstream and is
	// never recovered.
	ErrRealization = errors.New("realization failed")

	ErrOddDegreeSum    = errors.New("odd degree sum in group")
	ErrNegativeTarget  = errors.New("negative degree target")
	ErrNegativeTotal   = errors.New("target total must not be negative")
	ErrNoEligiblePairs = errors.New("no group has two or more participants")
)

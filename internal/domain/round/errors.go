package round

import "errors"

// Sentinel kinds for round errors.
var (
	ErrRoundNotActive = errors.New("no active round")
	ErrNotANumber     = errors.New("guess is not a number")
)

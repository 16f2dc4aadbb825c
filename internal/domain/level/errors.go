package level

import "errors"

// Sentinel kinds for level errors.
var (
	ErrUnknownLevel = errors.New("unknown level")
)

package app

import "errors"

// Sentinel kinds for service errors.
var (
	ErrRoundNotResolved = errors.New("round is not resolved")
	ErrReadImport       = errors.New("read import file failed")
	ErrWriteExport      = errors.New("write export file failed")
)

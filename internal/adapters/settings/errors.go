package settings

import "errors"

// Sentinel kinds for settings persistence errors.
var (
	ErrLoadSettings = errors.New("load settings failed")
	ErrSaveSettings = errors.New("save settings failed")
)

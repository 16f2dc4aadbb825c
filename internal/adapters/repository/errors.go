package repository

import "errors"

// Sentinel kinds for persistence errors. Both are recoverable: the
// in-memory leaderboard stays valid whatever the file does.
var (
	ErrLoadScores = errors.New("load scores failed")
	ErrSaveScores = errors.New("save scores failed")
)

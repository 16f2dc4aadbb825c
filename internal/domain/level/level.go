// Package level defines the fixed set of game difficulty levels.
package level

import (
	"fmt"
	"strings"
)

// Level identifies one difficulty. The declaration order is the ranking
// order used by the leaderboard: Easy sorts ahead of Medium ahead of Hard.
type Level int

// The three difficulties.
const (
	Easy Level = iota
	Medium
	Hard
)

// Default is the level used when nothing else is configured.
const Default = Medium

// info carries the per-variant data. The table is fixed at process start
// and never mutated.
type info struct {
	name        string // stable token used on the wire and in settings
	label       string // human-facing label
	min, max    int    // inclusive guessing range
	timeSeconds int    // round time limit
}

var table = [...]info{
	Easy:   {name: "EASY", label: "Easy", min: 1, max: 50, timeSeconds: 15},
	Medium: {name: "MEDIUM", label: "Medium", min: 1, max: 100, timeSeconds: 30},
	Hard:   {name: "HARD", label: "Hard", min: 1, max: 500, timeSeconds: 60},
}

// Levels returns all levels in declaration order.
func Levels() []Level {
	return []Level{Easy, Medium, Hard}
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l >= Easy && int(l) < len(table)
}

// Name returns the stable identifier token, e.g. "MEDIUM".
func (l Level) Name() string {
	if !l.Valid() {
		return "UNKNOWN"
	}
	return table[l].name
}

// String returns the display label, e.g. "Medium".
func (l Level) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return table[l].label
}

// Min returns the inclusive lower bound of the guessing range.
func (l Level) Min() int { return table[l].min }

// Max returns the inclusive upper bound of the guessing range.
func (l Level) Max() int { return table[l].max }

// TimeSeconds returns the round time limit in seconds.
func (l Level) TimeSeconds() int { return table[l].timeSeconds }

// Parse resolves a stable name token (case-insensitive) to a Level.
func Parse(s string) (Level, error) {
	token := strings.ToUpper(strings.TrimSpace(s))
	for _, l := range Levels() {
		if table[l].name == token {
			return l, nil
		}
	}
	return Default, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}

// Package score contains the leaderboard record type, its ranking order,
// and the CSV wire codec.
package score

import (
	"sort"
	"time"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
)

// TimeLayout is the timestamp format used on the wire: minute precision,
// 24-hour clock, no zone.
const TimeLayout = "2006-01-02 15:04"

// Record is one completed round. Records are immutable once handed to the
// leaderboard store.
type Record struct {
	Name        string      // player name, free text
	Level       level.Level // difficulty the round was played at
	Attempts    int         // guesses taken, positive
	TimeSeconds int         // elapsed whole seconds, non-negative
	When        time.Time   // completion timestamp, minute precision
	Secret      int         // the round's secret number
}

// Less reports whether a ranks strictly better than b. The rank key is
// (level declaration order, attempts asc, time asc, timestamp asc); lower
// is better on every component.
func Less(a, b Record) bool {
	if a.Level != b.Level {
		return a.Level < b.Level
	}
	if a.Attempts != b.Attempts {
		return a.Attempts < b.Attempts
	}
	if a.TimeSeconds != b.TimeSeconds {
		return a.TimeSeconds < b.TimeSeconds
	}
	return a.When.Before(b.When)
}

// Sort orders records best-first. The sort is stable so records with fully
// identical keys keep encounter order; ties beyond minute precision are
// acceptable nondeterminism.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return Less(records[i], records[j])
	})
}

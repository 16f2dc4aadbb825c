// Package seed generates plausible random score records. The seed-scores
// CLI uses it to produce CSV files for exercising leaderboard import.
package seed

import (
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/level"
	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/score"
)

const (
	defaultCount = 10
	maxAttempts  = 12
	// Generated timestamps are spread over the last ~30 days.
	backdateMinutes = 30 * 24 * 60
)

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithCount sets how many records to generate.
func WithCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.count = n
		}
	}
}

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // synthetic test data
	}
}

// WithLevels restricts generation to the given levels.
func WithLevels(levels ...level.Level) Option {
	return func(g *Generator) {
		if len(levels) > 0 {
			g.levels = levels
		}
	}
}

// Generator produces random score records.
type Generator struct {
	rng    *rand.Rand
	count  int
	levels []level.Level
	now    time.Time
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())), //nolint:gosec // synthetic test data
		count:  defaultCount,
		levels: level.Levels(),
		now:    time.Now().Truncate(time.Minute),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Records generates the configured number of random records. Every record
// is well-formed: positive attempts, elapsed time within the level's
// allotment, and a secret inside the level's range.
func (g *Generator) Records() []score.Record {
	records := make([]score.Record, g.count)
	for i := range records {
		lvl := g.levels[g.rng.Intn(len(g.levels))]
		records[i] = score.Record{
			Name:        "player-" + uuid.NewString()[:8],
			Level:       lvl,
			Attempts:    1 + g.rng.Intn(maxAttempts),
			TimeSeconds: 1 + g.rng.Intn(lvl.TimeSeconds()),
			When:        g.now.Add(-time.Duration(g.rng.Intn(backdateMinutes)) * time.Minute),
			Secret:      lvl.Min() + g.rng.Intn(lvl.Max()-lvl.Min()+1),
		}
	}
	return records
}

// CSV generates records and serializes them in the leaderboard wire format.
func (g *Generator) CSV() string {
	return score.EncodeCSV(g.Records())
}

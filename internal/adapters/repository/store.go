// Package repository defines the leaderboard store interface and errors.
package repository

import (
	"context"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/score"
)

// Store provides read/write access to the ranked leaderboard.
type Store interface {
	// Add appends a record, re-ranks, and prunes to capacity. Records that
	// fall off the end are permanently discarded.
	Add(ctx context.Context, rec score.Record)

	// Entries returns the ranked records, best first.
	Entries(ctx context.Context) []score.Record

	// Count returns the number of records currently held.
	Count(ctx context.Context) int

	// Clear discards every record.
	Clear(ctx context.Context)

	// Load reads the persisted file at path. A missing file is not an
	// error; the store is simply empty. Malformed lines are dropped.
	Load(ctx context.Context, path string) error

	// Save rewrites the file at path with the header and all records.
	Save(ctx context.Context, path string) error

	// ImportMerge parses text with the tolerant codec, appends every valid
	// record, re-ranks and prunes, and returns how many records merged.
	ImportMerge(ctx context.Context, text string) int

	// Export serializes the current records, header included.
	Export(ctx context.Context) string
}

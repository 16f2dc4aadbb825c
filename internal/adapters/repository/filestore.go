package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Saibalraj/Number-Guessing-Game/internal/domain/score"
)

// defaultCapacity bounds the leaderboard size. Records ranked beyond it are
// discarded after every insertion or merge.
const defaultCapacity = 20

// FileStore implements Store with an in-memory ranked slice and a CSV file
// as the durable representation. It is safe for concurrent use, though the
// game drives it from a single logical thread.
type FileStore struct {
	mu       sync.RWMutex
	capacity int
	records  []score.Record
}

// NewFileStore creates an empty store with configuration options.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a record, re-ranks, and prunes to capacity.
func (s *FileStore) Add(_ context.Context, rec score.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	s.rankAndPruneLocked()
}

// Entries returns a ranked copy of the records, best first.
func (s *FileStore) Entries(_ context.Context) []score.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]score.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Count returns the number of records currently held.
func (s *FileStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear discards every record. The caller is responsible for persisting.
func (s *FileStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Load replaces the in-memory records with the contents of path. A missing
// file leaves the store empty and is not an error; any other read failure is
// reported and the in-memory state is left untouched.
func (s *FileStore) Load(_ context.Context, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.mu.Lock()
		s.records = nil
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadScores, err)
	}

	records := score.DecodeCSV(string(data))
	s.mu.Lock()
	s.records = records
	s.rankAndPruneLocked()
	s.mu.Unlock()
	return nil
}

// Save rewrites path with the header plus all current records. There is no
// atomic-rename guard; a crash mid-write is out of scope.
func (s *FileStore) Save(ctx context.Context, path string) error {
	text := s.Export(ctx)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrSaveScores, err)
	}
	return nil
}

// ImportMerge appends every record the tolerant codec can parse out of text,
// then re-ranks and prunes. Existing entries are never replaced; the merge
// only grows the collection before pruning by rank.
func (s *FileStore) ImportMerge(_ context.Context, text string) int {
	incoming := score.DecodeCSV(text)
	if len(incoming) == 0 {
		return 0
	}
	s.mu.Lock()
	s.records = append(s.records, incoming...)
	s.rankAndPruneLocked()
	s.mu.Unlock()
	return len(incoming)
}

// Export serializes the ranked records, header included.
func (s *FileStore) Export(_ context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return score.EncodeCSV(s.records)
}

// rankAndPruneLocked restores the store invariant: sorted by rank order and
// never longer than capacity. Caller holds the write lock.
func (s *FileStore) rankAndPruneLocked() {
	score.Sort(s.records)
	if len(s.records) > s.capacity {
		s.records = s.records[:s.capacity]
	}
}

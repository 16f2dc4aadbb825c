package repository

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithCapacity overrides the leaderboard capacity. Values below one are
// ignored.
func WithCapacity(n int) Option {
	return func(s *FileStore) {
		if n > 0 {
			s.capacity = n
		}
	}
}

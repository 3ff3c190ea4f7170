package repository

// Default store configuration constants.
const (
	defaultMaxDraws = 1000
)

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxDraws bounds the number of retained draws. When full, the oldest
// draw is evicted. maxDraws <= 0 keeps the default.
func WithMaxDraws(maxDraws int) Option {
	return func(s *MemStore) {
		if maxDraws > 0 {
			s.maxDraws = maxDraws
		}
	}
}

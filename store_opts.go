package fortune

import (
	"io"
	"log/slog"
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used while loading and querying.
// A nil logger discards all output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithRandom replaces the source of random bytes used for random picks
// (default: crypto/rand.Reader). The reader must be safe for concurrent use.
func WithRandom(r io.Reader) Option {
	return func(s *Store) {
		if r != nil {
			s.random = r
		}
	}
}

// WithStrictOffsets makes loading fail with ErrMalformedIndex when an index
// has decreasing offsets, instead of reporting ErrInternalInconsistency when
// the affected record is read.
func WithStrictOffsets(enabled bool) Option {
	return func(s *Store) {
		s.strictOffsets = enabled
	}
}

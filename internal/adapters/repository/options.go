package repository

import (
	"github.com/okian/jobmatch/pkg/metrics"
)

// Option applies a configuration option to the SQLStore.
type Option func(*SQLStore)

// WithMetrics routes store timings to m instead of the global manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *SQLStore) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithMaxOpenConns caps the connection pool. SQLite files are limited to one
// connection regardless.
func WithMaxOpenConns(n int) Option {
	return func(s *SQLStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

package service

import (
	repository "github.com/okian/fairdraw/internal/adapters/repository"
	"github.com/okian/fairdraw/pkg/logger"
)

// Default service configuration constants.
const (
	defaultMaxStoredDraws = 1000
	defaultMaxTargetTotal = 10_000
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory draw store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithMaxStoredDraws bounds the default in-memory store. Ignored when
// WithStore is used.
func WithMaxStoredDraws(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxStoredDraws = n
		}
	}
}

// WithSeed seeds the source that picks per-draw seeds for requests that do
// not carry one. Zero derives the seed from the clock at Start.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithMaxTargetTotal caps the number of matches a single draw may request.
func WithMaxTargetTotal(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxTargetTotal = n
		}
	}
}

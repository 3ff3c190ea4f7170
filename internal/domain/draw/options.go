// Package draw computes fair multi-group match draws: how many matches each
// participant plays, which pairings realize those counts inside each group,
// and the order the matches are played in.
package draw

import (
	"math/rand"

	"github.com/okian/fairdraw/pkg/logger"
)

// defaultRandomSeed is used when no seed or a zero seed is supplied.
const defaultRandomSeed = 42

// Option applies a configuration option to the Planner.
type Option func(*Planner)

// WithSeed makes the planner deterministic. Seed 0 maps to the default seed.
func WithSeed(seed int64) Option {
	return func(p *Planner) {
		p.rng = newRand(seed)
	}
}

// WithRand sets the random source. The planner takes ownership; the source
// must not be shared with other goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(p *Planner) {
		if rng != nil {
			p.rng = rng
		}
	}
}

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRandomSeed
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // draws need reproducibility, not secrecy
}

// SPDX-License-Identifier: MIT

package sampling

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/kgtriples/triples"
)

var (
	// ErrUnknownSampler is returned by New for unregistered names.
	ErrUnknownSampler = errors.New("sampling: unknown sampler")

	// ErrInvalidConfig is returned for unusable sampler configurations.
	ErrInvalidConfig = errors.New("sampling: invalid config")
)

// Negatives is the result of one Sample call.
type Negatives struct {
	// Triples has shape (b, k): k negatives per positive.
	Triples [][]triples.Triple
	// Mask has shape (b, k) and marks valid (non-filtered) negatives.
	// It is nil when the sampler does not filter.
	Mask [][]bool
}

// Sampler produces negatives for a batch of positives.
type Sampler interface {
	Sample(positives triples.MappedTriples, r *rand.Rand) (Negatives, error)
	NumNegsPerPos() int
}

// DefaultNumNegsPerPos is the number of negatives per positive.
const DefaultNumNegsPerPos = 1

// DefaultCorruption corrupts heads and tails.
var DefaultCorruption = []triples.Column{triples.ColumnHead, triples.ColumnTail}

// Config enumerates every option a registered sampler understands.
type Config struct {
	NumEntities  int
	NumRelations int

	// NumNegsPerPos defaults to DefaultNumNegsPerPos when ≤ 0.
	NumNegsPerPos int
	// Corruption lists the columns to corrupt; nil means DefaultCorruption.
	// The bernoulli sampler only corrupts heads and tails.
	Corruption []triples.Column
	// Filtered enables the validity mask against Known.
	Filtered bool
	// Known are the true triples: the filter set, and the statistics source
	// of the bernoulli sampler.
	Known triples.MappedTriples
}

func (c Config) withDefaults() Config {
	if c.NumNegsPerPos <= 0 {
		c.NumNegsPerPos = DefaultNumNegsPerPos
	}
	if c.Corruption == nil {
		c.Corruption = slices.Clone(DefaultCorruption)
	}

	return c
}

func (c Config) space(col triples.Column) int {
	if col == triples.ColumnRelation {
		return c.NumRelations
	}

	return c.NumEntities
}

func (c Config) validate() error {
	if len(c.Corruption) == 0 {
		return fmt.Errorf("no corruption columns: %w", ErrInvalidConfig)
	}
	for _, col := range c.Corruption {
		if col < triples.ColumnHead || col > triples.ColumnTail {
			return fmt.Errorf("column %d: %w", col, ErrInvalidConfig)
		}
		if c.space(col) < 2 {
			return fmt.Errorf("%s space has %d ids, need ≥ 2: %w", col, c.space(col), ErrInvalidConfig)
		}
	}

	return nil
}

// replace draws an ID from [0, n) different from old.
func replace(old int64, n int, r *rand.Rand) int64 {
	v := r.Int64N(int64(n - 1))
	if v >= old {
		v++
	}

	return v
}

// filter is the known-triple set shared by all samplers.
type filter map[triples.Triple]struct{}

func newFilter(enabled bool, known triples.MappedTriples) filter {
	if !enabled {
		return nil
	}
	f := make(filter, len(known))
	for _, t := range known {
		f[t] = struct{}{}
	}

	return f
}

// mask returns nil when filtering is disabled.
func (f filter) mask(negs [][]triples.Triple) [][]bool {
	if f == nil {
		return nil
	}
	out := make([][]bool, len(negs))
	for i, row := range negs {
		out[i] = make([]bool, len(row))
		for j, t := range row {
			_, known := f[t]
			out[i][j] = !known
		}
	}

	return out
}

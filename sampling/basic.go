// SPDX-License-Identifier: MIT

package sampling

import (
	"math/rand/v2"

	"github.com/katalvlaran/kgtriples/triples"
)

// BasicSampler corrupts a uniformly chosen column of cfg.Corruption with a
// uniformly drawn different ID.
type BasicSampler struct {
	cfg    Config
	filter filter
}

// NewBasicSampler validates cfg.
func NewBasicSampler(cfg Config) (*BasicSampler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &BasicSampler{cfg: cfg, filter: newFilter(cfg.Filtered, cfg.Known)}, nil
}

// NumNegsPerPos implements Sampler.
func (s *BasicSampler) NumNegsPerPos() int { return s.cfg.NumNegsPerPos }

// Sample implements Sampler.
// Complexity: O(b·k).
func (s *BasicSampler) Sample(positives triples.MappedTriples, r *rand.Rand) (Negatives, error) {
	negs := make([][]triples.Triple, len(positives))
	for i, pos := range positives {
		row := make([]triples.Triple, s.cfg.NumNegsPerPos)
		for j := range row {
			col := s.cfg.Corruption[r.IntN(len(s.cfg.Corruption))]
			neg := pos
			neg[col] = replace(pos[col], s.cfg.space(col), r)
			row[j] = neg
		}
		negs[i] = row
	}

	return Negatives{Triples: negs, Mask: s.filter.mask(negs)}, nil
}

// SPDX-License-Identifier: MIT

package sampling

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/kgtriples/triples"
)

// BernoulliSampler corrupts the head of a triple with relation r with
// probability tph(r) / (tph(r) + hpt(r)) and the tail otherwise, where tph
// is the mean number of tails per (head, r) and hpt the mean number of
// heads per (r, tail) among the known triples. Relations without known
// triples use probability 0.5.
type BernoulliSampler struct {
	cfg       Config
	headProbs []float64
	filter    filter
}

// NewBernoulliSampler computes the per-relation statistics from cfg.Known.
func NewBernoulliSampler(cfg Config) (*BernoulliSampler, error) {
	cfg = cfg.withDefaults()
	cfg.Corruption = DefaultCorruption
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if len(cfg.Known) == 0 {
		return nil, fmt.Errorf("bernoulli needs known triples: %w", ErrInvalidConfig)
	}

	return &BernoulliSampler{
		cfg:       cfg,
		headProbs: headProbabilities(cfg.Known, cfg.NumRelations),
		filter:    newFilter(cfg.Filtered, cfg.Known),
	}, nil
}

func headProbabilities(known triples.MappedTriples, numRelations int) []float64 {
	type pair [2]int64
	tails := make(map[pair]int) // (h, r) → #tails
	heads := make(map[pair]int) // (r, t) → #heads
	for _, t := range known.Unique() {
		tails[pair{t[0], t[1]}]++
		heads[pair{t[1], t[2]}]++
	}
	sumT, cntT := make([]float64, numRelations), make([]float64, numRelations)
	for k, n := range tails {
		sumT[k[1]] += float64(n)
		cntT[k[1]]++
	}
	sumH, cntH := make([]float64, numRelations), make([]float64, numRelations)
	for k, n := range heads {
		sumH[k[0]] += float64(n)
		cntH[k[0]]++
	}

	probs := make([]float64, numRelations)
	for r := range probs {
		if cntT[r] == 0 || cntH[r] == 0 {
			probs[r] = 0.5
			continue
		}
		tph, hpt := sumT[r]/cntT[r], sumH[r]/cntH[r]
		probs[r] = tph / (tph + hpt)
	}

	return probs
}

// HeadProbability returns the head-corruption probability of relation r.
func (s *BernoulliSampler) HeadProbability(r int64) float64 { return s.headProbs[r] }

// NumNegsPerPos implements Sampler.
func (s *BernoulliSampler) NumNegsPerPos() int { return s.cfg.NumNegsPerPos }

// Sample implements Sampler.
func (s *BernoulliSampler) Sample(positives triples.MappedTriples, r *rand.Rand) (Negatives, error) {
	negs := make([][]triples.Triple, len(positives))
	for i, pos := range positives {
		if pos[1] < 0 || pos[1] >= int64(len(s.headProbs)) {
			return Negatives{}, fmt.Errorf("relation %d of %d: %w", pos[1], len(s.headProbs), triples.ErrIDOutOfRange)
		}
		row := make([]triples.Triple, s.cfg.NumNegsPerPos)
		for j := range row {
			col := triples.ColumnTail
			if r.Float64() < s.headProbs[pos[1]] {
				col = triples.ColumnHead
			}
			neg := pos
			neg[col] = replace(pos[col], s.cfg.NumEntities, r)
			row[j] = neg
		}
		negs[i] = row
	}

	return Negatives{Triples: negs, Mask: s.filter.mask(negs)}, nil
}

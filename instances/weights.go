// SPDX-License-Identifier: MIT

package instances

import (
	"fmt"

	"github.com/katalvlaran/kgtriples/triples"
)

// LossWeighter computes per-sample loss weights from triple columns.
//
// At most one column may be nil: it marks the predicted slot of an LCWA
// row. The returned slice is aligned with the given columns.
type LossWeighter interface {
	WeightColumns(h, r, t []int64) ([]float32, error)
}

// WeightTriples weights fully specified triples.
func WeightTriples(w LossWeighter, ts []triples.Triple) ([]float32, error) {
	h, r, t := make([]int64, len(ts)), make([]int64, len(ts)), make([]int64, len(ts))
	for i, x := range ts {
		h[i], r[i], t[i] = x[0], x[1], x[2]
	}

	return w.WeightColumns(h, r, t)
}

// columnsLen checks the nil/length contract and returns the common length.
func columnsLen(h, r, t []int64) (int, error) {
	n, nils := -1, 0
	for _, c := range [][]int64{h, r, t} {
		if c == nil {
			nils++
			continue
		}
		if n >= 0 && len(c) != n {
			return 0, fmt.Errorf("lengths %d and %d: %w", n, len(c), ErrWeighterColumns)
		}
		n = len(c)
	}
	if nils > 1 {
		return 0, fmt.Errorf("%d nil columns: %w", nils, ErrWeighterColumns)
	}

	return n, nil
}

// RelationWeighter weights a sample by the weight of its relation. A
// predicted (nil) relation column yields weight 1.
type RelationWeighter struct {
	Weights []float32
}

// NewRelationWeighter copies weights, indexed by relation ID.
func NewRelationWeighter(weights []float32) *RelationWeighter {
	return &RelationWeighter{Weights: append([]float32(nil), weights...)}
}

// WeightColumns implements LossWeighter.
func (w *RelationWeighter) WeightColumns(h, r, t []int64) ([]float32, error) {
	n, err := columnsLen(h, r, t)
	if err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		if r == nil {
			out[i] = 1
			continue
		}
		if r[i] < 0 || r[i] >= int64(len(w.Weights)) {
			return nil, fmt.Errorf("relation %d of %d: %w", r[i], len(w.Weights), triples.ErrIDOutOfRange)
		}
		out[i] = w.Weights[r[i]]
	}

	return out, nil
}

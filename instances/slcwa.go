// SPDX-License-Identifier: MIT

package instances

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"

	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/sampling"
	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

// Kind names an sLCWA batching strategy.
type Kind string

// Registered sLCWA kinds.
const (
	KindBatched  Kind = "batched"
	KindSubGraph Kind = "subgraph"
)

// SLCWABatch pairs positives with their negatives.
type SLCWABatch struct {
	// Indices are the positive row numbers in the source triples.
	Indices   []int
	Positives triples.MappedTriples
	// Negatives has shape (b, k).
	Negatives [][]triples.Triple
	// Masks is nil unless the sampler filters.
	Masks [][]bool
	// PosWeights and NegWeights are nil without a weighter.
	PosWeights []float32
	NegWeights [][]float32
}

// SLCWAInstances is a restartable source of sLCWA batches.
type SLCWAInstances interface {
	// Len returns the number of batches of one epoch over all workers.
	Len() int
	// Epoch yields worker's share of one epoch. It stops at the first error.
	Epoch(worker splitting.WorkerInfo, r *rand.Rand) iter.Seq2[SLCWABatch, error]
}

var (
	_ SLCWAInstances = (*BatchedSLCWAInstances)(nil)
	_ SLCWAInstances = (*SubGraphSLCWAInstances)(nil)
)

// slcwaBase is shared by both batching strategies.
type slcwaBase struct {
	mapped      triples.MappedTriples
	batchSize   int
	dropLast    bool
	sampler     sampling.Sampler
	posWeighter LossWeighter
	negWeighter LossWeighter
	logger      *slog.Logger
	metrics     *metrics.Collectors
}

func newBase(mapped triples.MappedTriples, o Options) (slcwaBase, error) {
	s := o.sampler
	if s == nil {
		numEntities, numRelations := o.spaces(mapped)
		var err error
		s, err = sampling.New(o.samplerName, sampling.Config{
			NumEntities:   numEntities,
			NumRelations:  numRelations,
			NumNegsPerPos: o.numNegsPerPos,
			Filtered:      o.filtered,
			Known:         mapped,
		})
		if err != nil {
			return slcwaBase{}, err
		}
	}

	return slcwaBase{
		mapped:      mapped,
		batchSize:   o.batchSize,
		dropLast:    o.dropLast,
		sampler:     s,
		posWeighter: o.posWeighter,
		negWeighter: o.negWeighter,
		logger:      o.logger,
		metrics:     o.metrics,
	}, nil
}

// Len returns the number of batches: ⌊n/b⌋, plus one for a remainder when
// the last batch is kept.
func (s *slcwaBase) Len() int {
	n, rem := len(s.mapped)/s.batchSize, len(s.mapped)%s.batchSize
	if rem > 0 && !s.dropLast {
		n++
	}

	return n
}

// Sampler returns the negative sampler.
func (s *slcwaBase) Sampler() sampling.Sampler { return s.sampler }

// batch assembles positives, negatives and weights for ids.
func (s *slcwaBase) batch(ids []int, r *rand.Rand, kind Kind) (SLCWABatch, error) {
	pos := make(triples.MappedTriples, len(ids))
	for i, id := range ids {
		pos[i] = s.mapped[id]
	}
	negs, err := s.sampler.Sample(pos, r)
	if err != nil {
		return SLCWABatch{}, fmt.Errorf("%s batch: %w", kind, err)
	}
	b := SLCWABatch{Indices: ids, Positives: pos, Negatives: negs.Triples, Masks: negs.Mask}
	if s.posWeighter != nil {
		if b.PosWeights, err = WeightTriples(s.posWeighter, pos); err != nil {
			return SLCWABatch{}, fmt.Errorf("%s batch: positive weights: %w", kind, err)
		}
	}
	if s.negWeighter != nil {
		b.NegWeights = make([][]float32, len(negs.Triples))
		for i, row := range negs.Triples {
			if b.NegWeights[i], err = WeightTriples(s.negWeighter, row); err != nil {
				return SLCWABatch{}, fmt.Errorf("%s batch: negative weights: %w", kind, err)
			}
		}
	}
	s.metrics.Batch(string(kind))

	return b, nil
}

// BatchedSLCWAInstances draws uniformly random batches without replacement.
type BatchedSLCWAInstances struct {
	slcwaBase
}

// NewBatchedSLCWA builds batched instances over mapped.
func NewBatchedSLCWA(mapped triples.MappedTriples, opts ...Option) (*BatchedSLCWAInstances, error) {
	base, err := newBase(mapped, gatherOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("NewBatchedSLCWA: %w", err)
	}

	return &BatchedSLCWAInstances{slcwaBase: base}, nil
}

// Epoch permutes worker's slice of the triples and cuts it into batches.
func (s *BatchedSLCWAInstances) Epoch(worker splitting.WorkerInfo, r *rand.Rand) iter.Seq2[SLCWABatch, error] {
	return func(yield func(SLCWABatch, error) bool) {
		start, stop := splitting.SplitWorkload(len(s.mapped), worker)
		perm := r.Perm(stop - start)
		for lo := 0; lo < len(perm); lo += s.batchSize {
			hi := min(lo+s.batchSize, len(perm))
			if hi-lo < s.batchSize && s.dropLast {
				return
			}
			ids := make([]int, hi-lo)
			for i, p := range perm[lo:hi] {
				ids[i] = start + p
			}
			b, err := s.batch(ids, r, KindBatched)
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

// SLCWAFromFactory builds instances of the given kind from src, with
// inverse triples materialised when src requests them.
func SLCWAFromFactory(kind Kind, src triples.Factory, opts ...Option) (SLCWAInstances, error) {
	mapped := src.AddInverseTriplesIfNecessary(src.MappedTriples())
	opts = fromFactory(src, opts)
	var (
		inst SLCWAInstances
		err  error
	)
	switch kind {
	case KindBatched, "":
		inst, err = NewBatchedSLCWA(mapped, opts...)
	case KindSubGraph:
		inst, err = NewSubGraphSLCWA(mapped, opts...)
	default:
		return nil, fmt.Errorf("SLCWAFromFactory: %q (known: %s, %s): %w", kind, KindBatched, KindSubGraph, ErrUnknownKind)
	}
	if err != nil {
		return nil, err
	}

	return inst, nil
}

// SPDX-License-Identifier: MIT

package instances

import (
	"fmt"
	"iter"
	"log/slog"
	"math/rand/v2"
	"slices"

	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/katalvlaran/kgtriples/splitting"
	"github.com/katalvlaran/kgtriples/triples"
)

// SubGraphSLCWAInstances samples batches of edges that grow outwards from
// visited nodes.
//
// Each step draws a visited node with probability proportional to its
// residual degree (incident edges not yet in the batch) and adds one of its
// unpicked edges, visiting the other endpoint. When no visited node has a
// residual edge, a fresh node with at least one edge is drawn uniformly.
type SubGraphSLCWAInstances struct {
	slcwaBase
	adj           Adjacency
	active        []int // nodes with degree > 0
	maxRejections int
}

// NewSubGraphSLCWA builds subgraph instances over mapped.
func NewSubGraphSLCWA(mapped triples.MappedTriples, opts ...Option) (*SubGraphSLCWAInstances, error) {
	o := gatherOptions(opts)
	base, err := newBase(mapped, o)
	if err != nil {
		return nil, fmt.Errorf("NewSubGraphSLCWA: %w", err)
	}
	numEntities, _ := o.spaces(mapped)
	if n := maxID(mapped, triples.ColumnHead, triples.ColumnTail); n > numEntities {
		return nil, fmt.Errorf("NewSubGraphSLCWA: entity %d of %d: %w", n-1, numEntities, triples.ErrIDOutOfRange)
	}
	adj := ComputeCompressedAdjacency(mapped, numEntities)
	active := make([]int, 0, len(adj.Degrees))
	for v, d := range adj.Degrees {
		if d > 0 {
			active = append(active, v)
		}
	}

	return &SubGraphSLCWAInstances{
		slcwaBase:     base,
		adj:           adj,
		active:        active,
		maxRejections: o.maxRejections,
	}, nil
}

// Adjacency returns the compressed adjacency used for sampling.
func (s *SubGraphSLCWAInstances) Adjacency() Adjacency { return s.adj }

// Epoch yields worker's share of Len() subgraph batches.
func (s *SubGraphSLCWAInstances) Epoch(worker splitting.WorkerInfo, r *rand.Rand) iter.Seq2[SLCWABatch, error] {
	return func(yield func(SLCWABatch, error) bool) {
		start, stop := splitting.SplitWorkload(s.Len(), worker)
		for range stop - start {
			ids := s.Sample(r)
			if len(ids) == 0 {
				return
			}
			b, err := s.batch(ids, r, KindSubGraph)
			if !yield(b, err) || err != nil {
				return
			}
		}
	}
}

// Sample draws the edge indices of one subgraph. The result is shorter than
// the batch size only when every edge has been picked.
//
// Complexity: O(V + b·(log V + d)) where d bounds the random edge draws.
func (s *SubGraphSLCWAInstances) Sample(r *rand.Rand) []int {
	if len(s.active) == 0 {
		return nil
	}
	residual := slices.Clone(s.adj.Degrees)
	edgePicked := make([]bool, len(s.mapped))
	nodePicked := make([]bool, len(residual))
	fresh := slices.Clone(s.active)
	// Unvisited nodes keep weight 0, so only visited nodes are drawn.
	visited := sampleuv.NewWeighted(make([]float64, len(residual)), r)

	ids := make([]int, 0, s.batchSize)
	for len(ids) < s.batchSize {
		v, ok := visited.Take()
		if !ok {
			if v, ok = s.freshNode(&fresh, nodePicked, r); !ok {
				s.metrics.Exhausted()
				s.logger.Debug("subgraph exhausted",
					slog.Int("picked", len(ids)), slog.Int("batch_size", s.batchSize))
				break
			}
			nodePicked[v] = true
		}

		e, other, ok := s.pickEdge(v, edgePicked, r)
		if !ok {
			// Take zeroed v's weight; it stays out of the draw.
			s.metrics.Exhausted()
			continue
		}
		edgePicked[e] = true
		ids = append(ids, e)
		nodePicked[other] = true
		residual[v]--
		residual[other]--
		visited.Reweight(v, float64(residual[v]))
		visited.Reweight(other, float64(residual[other]))
	}

	return ids
}

// freshNode draws an unvisited node with at least one edge.
func (s *SubGraphSLCWAInstances) freshNode(fresh *[]int, nodePicked []bool, r *rand.Rand) (int, bool) {
	for len(*fresh) > 0 {
		pool := *fresh
		k := r.IntN(len(pool))
		v := pool[k]
		pool[k] = pool[len(pool)-1]
		*fresh = pool[:len(pool)-1]
		if !nodePicked[v] {
			return v, true
		}
	}

	return 0, false
}

// pickEdge returns an unpicked edge incident to v and its other endpoint.
// It makes at most maxRejections random draws, then enumerates.
func (s *SubGraphSLCWAInstances) pickEdge(v int, edgePicked []bool, r *rand.Rand) (int, int, bool) {
	nb := s.adj.neighbors(v)
	if len(nb) == 0 {
		return 0, 0, false
	}
	for range s.maxRejections {
		c := nb[r.IntN(len(nb))]
		if !edgePicked[c[0]] {
			return int(c[0]), int(c[1]), true
		}
	}
	left := make([][2]int64, 0, len(nb))
	for _, c := range nb {
		if !edgePicked[c[0]] {
			left = append(left, c)
		}
	}
	if len(left) == 0 {
		return 0, 0, false
	}
	c := left[r.IntN(len(left))]

	return int(c[0]), int(c[1]), true
}

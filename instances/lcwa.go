// SPDX-License-Identifier: MIT

package instances

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/katalvlaran/kgtriples/metrics"
	"github.com/katalvlaran/kgtriples/triples"
)

// KindLCWA labels LCWA batches in metrics.
const KindLCWA = "lcwa"

// LCWABatch holds len(Pairs) rows: the two known columns, their multi-hot
// targets and, when a weighter is configured, one weight per row.
type LCWABatch struct {
	Pairs   [][2]int64
	Targets [][]float32
	Weights []float32
}

// LCWAInstances are the unique non-target pairs of a triple set with their
// sparse multi-label targets.
type LCWAInstances struct {
	pairs      [][2]int64
	compressed *CSR
	target     triples.Column
	weighter   LossWeighter
	cache      *lru.Cache[int, []float32]
	logger     *slog.Logger
	metrics    *metrics.Collectors
}

// otherColumns returns the two non-target columns in ascending order.
func otherColumns(target triples.Column) [2]triples.Column {
	switch target {
	case triples.ColumnHead:
		return [2]triples.Column{triples.ColumnRelation, triples.ColumnTail}
	case triples.ColumnRelation:
		return [2]triples.Column{triples.ColumnHead, triples.ColumnTail}
	default:
		return [2]triples.Column{triples.ColumnHead, triples.ColumnRelation}
	}
}

// LCWAFromTriples groups mapped by the non-target columns. The target space
// is numRelations for relation prediction and numEntities otherwise.
//
// Complexity: O(n log n).
func LCWAFromTriples(mapped triples.MappedTriples, numEntities, numRelations int, opts ...Option) (*LCWAInstances, error) {
	o := gatherOptions(opts)
	size := numEntities
	if o.target == triples.ColumnRelation {
		size = numRelations
	}
	cols := otherColumns(o.target)

	pairs := make([][2]int64, len(mapped))
	for i, t := range mapped {
		if t[o.target] < 0 || t[o.target] >= int64(size) {
			return nil, fmt.Errorf("LCWAFromTriples: row %d %s=%d of %d: %w",
				i, o.target, t[o.target], size, triples.ErrIDOutOfRange)
		}
		pairs[i] = [2]int64{t[cols[0]], t[cols[1]]}
	}
	unique := slices.Clone(pairs)
	slices.SortFunc(unique, comparePairs)
	unique = slices.Compact(unique)

	rowIdx := make([]int, len(mapped))
	colIdx := make([]int64, len(mapped))
	for i, p := range pairs {
		rowIdx[i], _ = slices.BinarySearchFunc(unique, p, comparePairs)
		colIdx[i] = mapped[i][o.target]
	}

	inst := &LCWAInstances{
		pairs:      unique,
		compressed: newCSR(rowIdx, colIdx, len(unique), size),
		target:     o.target,
		weighter:   o.weighter,
		logger:     o.logger,
		metrics:    o.metrics,
	}
	if o.rowCache > 0 {
		cache, err := lru.New[int, []float32](o.rowCache)
		if err != nil {
			return nil, fmt.Errorf("LCWAFromTriples: row cache: %w", err)
		}
		inst.cache = cache
	}
	o.logger.Debug("lcwa instances built",
		slog.String("target", o.target.String()),
		slog.Int("pairs", len(unique)),
		slog.Int("nnz", inst.compressed.NNZ()))

	return inst, nil
}

// LCWAFromFactory builds instances from src, materialising inverse triples
// when src requests them.
func LCWAFromFactory(src triples.Factory, opts ...Option) (*LCWAInstances, error) {
	info := src.Info()
	mapped := src.AddInverseTriplesIfNecessary(src.MappedTriples())

	return LCWAFromTriples(mapped, info.NumEntities, info.NumRelations, fromFactory(src, opts)...)
}

func comparePairs(a, b [2]int64) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}

	return cmp.Compare(a[1], b[1])
}

// Len returns the number of unique pairs.
func (l *LCWAInstances) Len() int { return len(l.pairs) }

// Target returns the predicted column.
func (l *LCWAInstances) Target() triples.Column { return l.target }

// Pairs returns a copy of the unique pairs in lexicographic order.
func (l *LCWAInstances) Pairs() [][2]int64 { return slices.Clone(l.pairs) }

// Compressed returns the sparse target matrix (rows aligned with Pairs).
func (l *LCWAInstances) Compressed() *CSR { return l.compressed }

// Item returns the single-row batch of instance i.
func (l *LCWAInstances) Item(i int) (LCWABatch, error) {
	return l.Batch([]int{i})
}

// Batch gathers the given instances.
func (l *LCWAInstances) Batch(indices []int) (LCWABatch, error) {
	b := LCWABatch{
		Pairs:   make([][2]int64, len(indices)),
		Targets: make([][]float32, len(indices)),
	}
	for k, i := range indices {
		if i < 0 || i >= len(l.pairs) {
			return LCWABatch{}, fmt.Errorf("Batch: index %d of %d: %w", i, len(l.pairs), ErrIndexOutOfRange)
		}
		b.Pairs[k] = l.pairs[i]
		b.Targets[k] = l.denseRow(i)
	}
	if l.weighter != nil {
		w, err := l.weights(b.Pairs)
		if err != nil {
			return LCWABatch{}, fmt.Errorf("Batch: %w", err)
		}
		b.Weights = w
	}
	l.metrics.Batch(KindLCWA)

	return b, nil
}

func (l *LCWAInstances) denseRow(i int) []float32 {
	if l.cache == nil {
		return l.compressed.DenseRow(i)
	}
	if row, ok := l.cache.Get(i); ok {
		return slices.Clone(row)
	}
	row := l.compressed.DenseRow(i)
	l.cache.Add(i, row)

	return slices.Clone(row)
}

// weights passes the known columns and nil for the target.
func (l *LCWAInstances) weights(pairs [][2]int64) ([]float32, error) {
	x, y := make([]int64, len(pairs)), make([]int64, len(pairs))
	for i, p := range pairs {
		x[i], y[i] = p[0], p[1]
	}
	switch l.target {
	case triples.ColumnHead:
		return l.weighter.WeightColumns(nil, x, y)
	case triples.ColumnRelation:
		return l.weighter.WeightColumns(x, nil, y)
	default:
		return l.weighter.WeightColumns(x, y, nil)
	}
}

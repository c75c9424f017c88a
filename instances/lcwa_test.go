package instances_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/instances"
	"github.com/katalvlaran/kgtriples/triples"
)

var small = triples.MappedTriples{{0, 0, 1}, {0, 0, 2}, {1, 0, 2}}

func TestLCWA_TailTarget(t *testing.T) {
	inst, err := instances.LCWAFromTriples(small, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, inst.Len())
	assert.Equal(t, [][2]int64{{0, 0}, {1, 0}}, inst.Pairs())
	assert.Equal(t, triples.ColumnTail, inst.Target())

	m := inst.Compressed()
	assert.Equal(t, 2, m.Rows())
	assert.Equal(t, 3, m.Cols())
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, []int64{1, 2}, m.Row(0))
	assert.Equal(t, []float32{0, 1, 1}, m.DenseRow(0))

	item, err := inst.Item(0)
	require.NoError(t, err)
	assert.Equal(t, [][2]int64{{0, 0}}, item.Pairs)
	assert.Equal(t, [][]float32{{0, 1, 1}}, item.Targets)
	assert.Nil(t, item.Weights)
}

func TestLCWA_OtherTargets(t *testing.T) {
	heads, err := instances.LCWAFromTriples(small, 3, 1, instances.WithTarget(triples.ColumnHead))
	require.NoError(t, err)
	// (relation, tail) groups: (0,1), (0,2)
	assert.Equal(t, [][2]int64{{0, 1}, {0, 2}}, heads.Pairs())
	assert.Equal(t, []float32{1, 1, 0}, heads.Compressed().DenseRow(1))

	rels, err := instances.LCWAFromTriples(small, 3, 2, instances.WithTarget(triples.ColumnRelation))
	require.NoError(t, err)
	assert.Equal(t, 3, rels.Len())
	assert.Equal(t, 2, rels.Compressed().Cols())

	assert.Panics(t, func() { instances.WithTarget(triples.Column(7)) })
}

func TestLCWA_Errors(t *testing.T) {
	_, err := instances.LCWAFromTriples(small, 2, 1)
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)

	inst, err := instances.LCWAFromTriples(small, 3, 1)
	require.NoError(t, err)
	_, err = inst.Batch([]int{0, 5})
	assert.ErrorIs(t, err, instances.ErrIndexOutOfRange)
}

func TestLCWA_Weights(t *testing.T) {
	w := instances.NewRelationWeighter([]float32{0.5})
	inst, err := instances.LCWAFromTriples(small, 3, 1, instances.WithLossWeighter(w))
	require.NoError(t, err)
	b, err := inst.Batch([]int{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.5}, b.Weights)

	// relation prediction passes nil relations ⇒ neutral weight
	inst, err = instances.LCWAFromTriples(small, 3, 1,
		instances.WithTarget(triples.ColumnRelation), instances.WithLossWeighter(w))
	require.NoError(t, err)
	b, err = inst.Item(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, b.Weights)
}

func TestLCWA_RowCache(t *testing.T) {
	inst, err := instances.LCWAFromTriples(small, 3, 1, instances.WithRowCache(1))
	require.NoError(t, err)
	a, err := inst.Item(0)
	require.NoError(t, err)
	a.Targets[0][0] = 9

	b, err := inst.Item(0)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 1}, b.Targets[0])

	_, err = inst.Item(1)
	require.NoError(t, err)
	c, err := inst.Item(0)
	require.NoError(t, err)
	assert.Equal(t, b.Targets, c.Targets)
}

func TestLCWAFromFactory_Inverses(t *testing.T) {
	f, err := triples.NewCoreTriplesFactory(small, 3, 1, triples.WithInverseTriples(true))
	require.NoError(t, err)
	inst, err := instances.LCWAFromFactory(f)
	require.NoError(t, err)
	// forward pairs (0,0),(1,0) plus inverse pairs (1,1),(2,1)
	assert.Equal(t, 4, inst.Len())
	assert.Equal(t, 6, inst.Compressed().NNZ())
}

func TestWeighterColumns(t *testing.T) {
	w := instances.NewRelationWeighter([]float32{1, 2})
	_, err := w.WeightColumns(nil, nil, []int64{0})
	assert.ErrorIs(t, err, instances.ErrWeighterColumns)
	_, err = w.WeightColumns([]int64{0}, []int64{0, 1}, nil)
	assert.ErrorIs(t, err, instances.ErrWeighterColumns)
	_, err = w.WeightColumns([]int64{0}, []int64{4}, []int64{1})
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)

	got, err := instances.WeightTriples(w, []triples.Triple{{0, 1, 2}, {0, 0, 1}})
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 1}, got)
}

func TestComputeCompressedAdjacency(t *testing.T) {
	adj := instances.ComputeCompressedAdjacency(triples.MappedTriples{{0, 0, 1}, {1, 0, 1}, {2, 0, 0}}, 4)
	assert.Equal(t, []int{2, 3, 1, 0}, adj.Degrees)
	assert.Equal(t, []int{0, 2, 5, 6}, adj.Offsets)
	assert.Equal(t, [][2]int64{
		{0, 1}, {2, 2}, // node 0
		{0, 0}, {1, 1}, {1, 1}, // node 1, self-loop twice
		{2, 0}, // node 2
	}, adj.Neighbors)
}

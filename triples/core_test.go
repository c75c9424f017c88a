package triples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/triples"
)

func mustCore(t *testing.T, m triples.MappedTriples, ne, nr int, opts ...triples.Option) *triples.CoreTriplesFactory {
	t.Helper()
	f, err := triples.NewCoreTriplesFactory(m, ne, nr, opts...)
	require.NoError(t, err)

	return f
}

func TestNewCore_RejectsOutOfRange(t *testing.T) {
	_, err := triples.NewCoreTriplesFactory(triples.MappedTriples{{0, 0, 1}, {2, 0, 5}}, 3, 1)
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)

	_, err = triples.NewCoreTriplesFactory(triples.MappedTriples{{0, 1, 1}}, 3, 1)
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)

	_, err = triples.NewCoreTriplesFactory(triples.MappedTriples{{-1, 0, 1}}, 3, 1)
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)

	_, err = triples.NewCoreTriplesFactory(nil, -1, 1)
	assert.ErrorIs(t, err, triples.ErrInvalidArgument)
}

func TestAsMappedTriples(t *testing.T) {
	m, err := triples.AsMappedTriples([][]int{{0, 1, 2}, {3, 4, 5}})
	require.NoError(t, err)
	assert.Equal(t, triples.MappedTriples{{0, 1, 2}, {3, 4, 5}}, m)

	_, err = triples.AsMappedTriples([][]int32{{0, 1}})
	assert.ErrorIs(t, err, triples.ErrBadShape)

	_, err = triples.AsMappedTriples([][]float64{{0, 1, 2}})
	assert.ErrorIs(t, err, triples.ErrBadDType)

	_, err = triples.AsMappedTriples([][]complex128{{0, 1, 2}})
	assert.ErrorIs(t, err, triples.ErrBadDType)

	_, err = triples.AsMappedTriples("nope")
	assert.ErrorIs(t, err, triples.ErrBadDType)
}

func TestCreate_InfersCounts(t *testing.T) {
	f, err := triples.CreateCoreTriplesFactory(triples.MappedTriples{{0, 2, 4}, {1, 0, 3}})
	require.NoError(t, err)
	assert.Equal(t, 5, f.NumEntities())
	assert.Equal(t, 3, f.NumRelations())

	f, err = triples.CreateCoreTriplesFactory(triples.MappedTriples{{0, 0, 1}},
		triples.WithNumEntities(10), triples.WithNumRelations(4), triples.WithInverseTriples(true))
	require.NoError(t, err)
	assert.Equal(t, triples.KGInfo{NumEntities: 10, RealNumRelations: 4, NumRelations: 8, CreateInverseTriples: true}, f.Info())
}

func TestInverseTriples(t *testing.T) {
	m := triples.MappedTriples{{0, 0, 1}, {1, 1, 2}}

	plain := mustCore(t, m, 3, 2)
	assert.Equal(t, m, plain.AddInverseTriplesIfNecessary(m))
	_, err := plain.GetInverseRelationID(0)
	assert.ErrorIs(t, err, triples.ErrInversesNotCreated)

	inv := mustCore(t, m, 3, 2, triples.WithInverseTriples(true))
	assert.Equal(t, 4, inv.NumRelations())
	assert.Equal(t,
		triples.MappedTriples{{0, 0, 1}, {1, 2, 2}, {1, 1, 0}, {2, 3, 1}},
		inv.AddInverseTriplesIfNecessary(m))
	id, err := inv.GetInverseRelationID(1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)

	off := mustCore(t, m, 3, 2, triples.WithInverseTriples(true), triples.WithInverterName(triples.InverterOffset))
	assert.Equal(t,
		triples.MappedTriples{{0, 0, 1}, {1, 1, 2}, {1, 2, 0}, {2, 3, 1}},
		off.AddInverseTriplesIfNecessary(m))

	_, err = triples.NewCoreTriplesFactory(m, 3, 2, triples.WithInverterName("mirror"))
	assert.ErrorIs(t, err, triples.ErrUnknownInverter)
}

func TestInverters_RoundTrip(t *testing.T) {
	for _, name := range triples.InverterNames() {
		inv, err := triples.NewInverter(name, 5)
		require.NoError(t, err)
		for r := int64(0); r < 5; r++ {
			got, isInv := inv.Real(inv.Forward(r))
			assert.Equal(t, r, got)
			assert.False(t, isInv)
			got, isInv = inv.Real(inv.Inverse(r))
			assert.Equal(t, r, got)
			assert.True(t, isInv)
		}
	}
}

func TestMostFrequentRelations(t *testing.T) {
	f := mustCore(t, triples.MappedTriples{
		{0, 0, 1},
		{0, 1, 1}, {1, 1, 2}, {2, 1, 0},
		{0, 2, 2}, {2, 2, 1}, {1, 2, 0},
	}, 3, 4)
	assert.Equal(t, []int64{1, 2}, f.MostFrequentRelations(2))
	assert.Equal(t, []int64{1, 2, 0}, f.MostFrequentRelations(10))

	got, err := f.MostFrequentRelationsFraction(0.5)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got)

	_, err = f.MostFrequentRelationsFraction(1.5)
	assert.ErrorIs(t, err, triples.ErrInvalidArgument)

	// The fraction applies to all relations, inverses included: 8*0.25 = 2.
	inv := mustCore(t, f.MappedTriples(), 3, 4, triples.WithInverseTriples(true))
	require.Equal(t, 8, inv.NumRelations())
	got, err = inv.MostFrequentRelationsFraction(0.25)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, got)
}

func TestCloneAndExchange_MetadataPrecedence(t *testing.T) {
	f := mustCore(t, triples.MappedTriples{{0, 0, 1}}, 2, 1,
		triples.WithMetadata(map[string]any{"a": 1, "b": "old"}))

	yes := true
	c, err := f.CloneAndExchangeTriples(triples.MappedTriples{{1, 0, 0}}, triples.CloneOptions{
		ExtraMetadata:        map[string]any{"b": "new"},
		CreateInverseTriples: &yes,
	})
	require.NoError(t, err)
	v, _ := c.Metadata().Get("b")
	assert.Equal(t, "new", v)
	assert.True(t, c.CreateInverseTriples())
	assert.Equal(t, f.NumEntities(), c.NumEntities())

	// source untouched
	v, _ = f.Metadata().Get("b")
	assert.Equal(t, "old", v)
	assert.Equal(t, triples.MappedTriples{{0, 0, 1}}, f.MappedTriples())

	dropped, err := f.CloneAndExchangeTriples(nil, triples.CloneOptions{DropMetadata: true})
	require.NoError(t, err)
	assert.Zero(t, dropped.Metadata().Len())

	_, err = f.CloneAndExchangeTriples(triples.MappedTriples{{0, 0, 9}}, triples.CloneOptions{})
	assert.ErrorIs(t, err, triples.ErrIDOutOfRange)
}

func TestMerge(t *testing.T) {
	m := triples.MappedTriples{{0, 0, 1}, {1, 0, 2}}
	a := mustCore(t, m, 3, 2)
	b := mustCore(t, m, 3, 2)
	merged, err := a.Merge(b)
	require.NoError(t, err)
	assert.Equal(t, 4, merged.NumTriples(), "no deduplication")

	self, err := a.Merge()
	require.NoError(t, err)
	assert.Same(t, a, self)

	c := mustCore(t, m, 3, 3)
	_, err = a.Merge(b, c)
	require.ErrorIs(t, err, triples.ErrConfigMismatch)
	assert.Contains(t, err.Error(), "others[1]")

	d := mustCore(t, m, 3, 2, triples.WithInverseTriples(true))
	_, err = a.Merge(d)
	assert.ErrorIs(t, err, triples.ErrConfigMismatch)

	e := mustCore(t, m, 4, 2)
	_, err = a.Merge(e)
	assert.ErrorIs(t, err, triples.ErrConfigMismatch)
}

func TestNewWithRestriction(t *testing.T) {
	f := mustCore(t, triples.MappedTriples{{0, 0, 1}, {1, 1, 2}, {2, 0, 3}}, 4, 2)

	assert.Same(t, f, f.NewWithRestriction(triples.Restriction{}))
	assert.Same(t, f, f.NewWithRestriction(triples.Restriction{Entities: []int64{0, 1, 2, 3}}))
	assert.Same(t, f, f.NewWithRestriction(triples.Restriction{Relations: []int64{0, 1}}))

	r := f.NewWithRestriction(triples.Restriction{Entities: []int64{0, 1, 2}})
	assert.Equal(t, triples.MappedTriples{{0, 0, 1}, {1, 1, 2}}, r.MappedTriples())
	v, ok := r.Metadata().Get(triples.MetaEntityRestriction)
	require.True(t, ok)
	assert.Equal(t, []int64{0, 1, 2}, v)
	assert.Equal(t, f.NumEntities(), r.NumEntities())

	r = f.NewWithRestriction(triples.Restriction{Relations: []int64{0}, InvertRelations: true})
	assert.Equal(t, triples.MappedTriples{{1, 1, 2}}, r.MappedTriples())

	r = f.NewWithRestriction(triples.Restriction{Entities: []int64{3}, InvertEntities: true})
	assert.Equal(t, triples.MappedTriples{{0, 0, 1}, {1, 1, 2}}, r.MappedTriples())
}

func TestMaskForRelations(t *testing.T) {
	f := mustCore(t, triples.MappedTriples{{0, 0, 1}, {1, 1, 2}}, 3, 2)
	assert.Equal(t, []bool{false, true}, f.MaskForRelations([]int64{1}, false))
	assert.Equal(t, []bool{true, false}, f.MaskForRelations([]int64{1}, true))
}

func TestCondense(t *testing.T) {
	f := mustCore(t, triples.MappedTriples{{0, 3, 4}, {4, 1, 9}}, 10, 5)
	c, err := f.Condense(true, true)
	require.NoError(t, err)
	assert.Equal(t, 3, c.NumEntities())
	assert.Equal(t, 2, c.RealNumRelations())
	assert.Equal(t, triples.MappedTriples{{0, 1, 1}, {1, 0, 2}}, c.MappedTriples())

	again, err := c.Condense(true, true)
	require.NoError(t, err)
	assert.Same(t, c, again)
}

func TestSplit_Core(t *testing.T) {
	var m triples.MappedTriples
	for i := int64(0); i < 20; i++ {
		for k := int64(1); k <= 3; k++ {
			m = append(m, triples.Triple{i, k % 2, (i + k) % 20})
		}
	}
	f := mustCore(t, m, 20, 2, triples.WithInverseTriples(true))
	parts, err := f.Split([]float64{0.8, 0.1})
	require.NoError(t, err)
	require.Len(t, parts, 3)
	assert.True(t, parts[0].CreateInverseTriples())
	assert.False(t, parts[1].CreateInverseTriples())
	assert.False(t, parts[2].CreateInverseTriples())
	assert.Equal(t, m.Unique(), triples.ConcatTriples(parts...).Unique())

	steps, err := triples.SplitsSteps(parts, parts)
	require.NoError(t, err)
	assert.Zero(t, steps)
	sim, err := triples.SplitsSimilarity(parts, parts)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, sim, 1e-12)

	_, err = triples.SplitsSteps(parts, parts[:1])
	assert.ErrorIs(t, err, triples.ErrConfigMismatch)
}

func TestEqualAndString(t *testing.T) {
	a := mustCore(t, triples.MappedTriples{{0, 0, 1}}, 2, 1, triples.WithMetadata(map[string]any{"path": "x.tsv"}))
	b := mustCore(t, triples.MappedTriples{{0, 0, 1}}, 2, 1)
	assert.True(t, a.Equal(b))
	assert.Equal(t,
		`CoreTriplesFactory(num_entities=2, num_relations=1, create_inverse_triples=false, num_triples=1, path="x.tsv")`,
		a.String())
}

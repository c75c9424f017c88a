package sampling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/rng"
	"github.com/katalvlaran/kgtriples/sampling"
	"github.com/katalvlaran/kgtriples/triples"
)

var known = triples.MappedTriples{
	{0, 0, 1}, {0, 0, 2}, {0, 0, 3}, // one head, many tails
	{1, 1, 0}, {2, 1, 0}, {3, 1, 0}, // many heads, one tail
}

func TestBasicSampler_NeverReproducesOriginal(t *testing.T) {
	s, err := sampling.NewBasicSampler(sampling.Config{NumEntities: 4, NumRelations: 2, NumNegsPerPos: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, s.NumNegsPerPos())

	negs, err := s.Sample(known, rng.New(1))
	require.NoError(t, err)
	require.Len(t, negs.Triples, len(known))
	assert.Nil(t, negs.Mask)
	for i, row := range negs.Triples {
		require.Len(t, row, 5)
		for _, n := range row {
			assert.Equal(t, known[i][1], n[1], "relation untouched by default")
			diff := 0
			for c := range n {
				if n[c] != known[i][c] {
					diff++
				}
				assert.GreaterOrEqual(t, n[c], int64(0))
				assert.Less(t, n[c], int64(4))
			}
			assert.Equal(t, 1, diff)
		}
	}
}

func TestBasicSampler_RelationCorruption(t *testing.T) {
	s, err := sampling.NewBasicSampler(sampling.Config{
		NumEntities: 4, NumRelations: 3, NumNegsPerPos: 3,
		Corruption: []triples.Column{triples.ColumnRelation},
	})
	require.NoError(t, err)
	negs, err := s.Sample(known[:1], rng.New(2))
	require.NoError(t, err)
	for _, n := range negs.Triples[0] {
		assert.NotEqual(t, int64(0), n[1])
		assert.Equal(t, known[0][0], n[0])
		assert.Equal(t, known[0][2], n[2])
	}
}

func TestBasicSampler_Filtered(t *testing.T) {
	s, err := sampling.NewBasicSampler(sampling.Config{
		NumEntities: 4, NumRelations: 2, NumNegsPerPos: 20, Filtered: true, Known: known,
	})
	require.NoError(t, err)
	negs, err := s.Sample(known[:1], rng.New(3))
	require.NoError(t, err)
	require.NotNil(t, negs.Mask)

	set := map[triples.Triple]bool{}
	for _, k := range known {
		set[k] = true
	}
	for j, n := range negs.Triples[0] {
		assert.Equal(t, !set[n], negs.Mask[0][j])
	}
}

func TestBasicSampler_InvalidConfig(t *testing.T) {
	_, err := sampling.NewBasicSampler(sampling.Config{NumEntities: 1, NumRelations: 5})
	assert.ErrorIs(t, err, sampling.ErrInvalidConfig)

	_, err = sampling.NewBasicSampler(sampling.Config{NumEntities: 5, Corruption: []triples.Column{}})
	assert.ErrorIs(t, err, sampling.ErrInvalidConfig)
}

func TestBernoulliSampler_Probabilities(t *testing.T) {
	s, err := sampling.NewBernoulliSampler(sampling.Config{NumEntities: 4, NumRelations: 3, Known: known})
	require.NoError(t, err)
	// r0: tph=3, hpt=1 ⇒ 0.75; r1: tph=1, hpt=3 ⇒ 0.25; r2 unseen ⇒ 0.5
	assert.InDelta(t, 0.75, s.HeadProbability(0), 1e-12)
	assert.InDelta(t, 0.25, s.HeadProbability(1), 1e-12)
	assert.InDelta(t, 0.5, s.HeadProbability(2), 1e-12)

	negs, err := s.Sample(known, rng.New(4))
	require.NoError(t, err)
	for i, row := range negs.Triples {
		for _, n := range row {
			assert.Equal(t, known[i][1], n[1])
			assert.NotEqual(t, known[i], n)
		}
	}

	_, err = sampling.NewBernoulliSampler(sampling.Config{NumEntities: 4, NumRelations: 3})
	assert.ErrorIs(t, err, sampling.ErrInvalidConfig)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{sampling.NameBasic, sampling.NameBernoulli}, sampling.Names())

	s, err := sampling.New("", sampling.Config{NumEntities: 4, NumRelations: 2})
	require.NoError(t, err)
	assert.IsType(t, &sampling.BasicSampler{}, s)

	s, err = sampling.New(sampling.NameBernoulli, sampling.Config{NumEntities: 4, NumRelations: 2, Known: known})
	require.NoError(t, err)
	assert.IsType(t, &sampling.BernoulliSampler{}, s)

	_, err = sampling.New("typed", sampling.Config{})
	assert.ErrorIs(t, err, sampling.ErrUnknownSampler)

	s, err = sampling.New(sampling.NameBasic, sampling.Config{})
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestSample_Deterministic(t *testing.T) {
	s, err := sampling.New(sampling.NameBasic, sampling.Config{NumEntities: 50, NumRelations: 2, NumNegsPerPos: 4})
	require.NoError(t, err)
	a, err := s.Sample(known, rng.New(7))
	require.NoError(t, err)
	b, err := s.Sample(known, rng.New(7))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

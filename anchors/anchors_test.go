package anchors_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/anchors"
)

// star around 0 with a tail 3-4.
var edges = [][2]int64{{0, 1}, {0, 2}, {0, 3}, {3, 4}}

func distinct(t *testing.T, ids []int64) {
	t.Helper()
	s := slices.Clone(ids)
	slices.Sort(s)
	assert.Len(t, slices.Compact(s), len(ids))
}

func TestDegreeSelection(t *testing.T) {
	assert.Equal(t, []int64{0, 3}, anchors.DegreeSelection{Num: 2}.Select(edges, nil))
	assert.Equal(t, []int64{0, 3, 1}, anchors.DegreeSelection{Num: 2}.Select(edges, []int64{0}))
	// fewer candidates than requested
	assert.Equal(t, []int64{0, 3, 1, 2, 4}, anchors.DegreeSelection{Num: 10}.Select(edges, nil))
	assert.Empty(t, anchors.DegreeSelection{Num: 3}.Select(nil, nil))
}

func TestPageRankSelection(t *testing.T) {
	got := anchors.PageRankSelection{Num: 2}.Select(append(edges, [2]int64{2, 2}), nil)
	assert.Equal(t, []int64{0, 3}, got)
}

func TestRandomSelection(t *testing.T) {
	s := anchors.RandomSelection{Num: 3, Seed: 9}
	a := s.Select(edges, []int64{4})
	require.Len(t, a, 4)
	assert.Equal(t, int64(4), a[0])
	distinct(t, a)
	for _, id := range a {
		assert.GreaterOrEqual(t, id, int64(0))
		assert.LessOrEqual(t, id, int64(4))
	}
	assert.Equal(t, a, s.Select(edges, []int64{4}))
}

func TestMixtureSelection(t *testing.T) {
	s, err := anchors.New(anchors.NameMixture, anchors.Config{
		NumAnchors: 4,
		Mixture:    []string{anchors.NameDegree, anchors.NameRandom},
		Ratios:     []float64{0.5, 0.5},
		Seed:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, s.NumAnchors())

	got := s.Select(edges, nil)
	require.Len(t, got, 4)
	assert.Equal(t, []int64{0, 3}, got[:2])
	distinct(t, got)

	// uniform ratios, order matters
	m, err := anchors.NewMixture([]string{anchors.NameRandom, anchors.NameDegree}, nil, 2, anchors.Config{Seed: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumAnchors())
}

func TestMixtureSelection_Invalid(t *testing.T) {
	_, err := anchors.NewMixture(nil, nil, 4, anchors.Config{})
	assert.ErrorIs(t, err, anchors.ErrInvalidConfig)

	_, err = anchors.NewMixture([]string{anchors.NameDegree}, []float64{0.5, 0.6}, 4, anchors.Config{})
	assert.ErrorIs(t, err, anchors.ErrInvalidConfig)

	_, err = anchors.NewMixture([]string{anchors.NameDegree, "betweenness"}, nil, 4, anchors.Config{})
	assert.ErrorIs(t, err, anchors.ErrUnknownSelection)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"degree", "mixture", "pagerank", "random"}, anchors.Names())

	s, err := anchors.New("", anchors.Config{})
	require.NoError(t, err)
	assert.Equal(t, anchors.DegreeSelection{Num: anchors.DefaultNumAnchors}, s)

	s, err = anchors.New(anchors.NamePageRank, anchors.Config{NumAnchors: 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{0}, s.Select(edges, nil))

	_, err = anchors.New("closeness", anchors.Config{})
	assert.ErrorIs(t, err, anchors.ErrUnknownSelection)

	_, err = anchors.New(anchors.NameDegree, anchors.Config{NumAnchors: -1})
	assert.ErrorIs(t, err, anchors.ErrInvalidConfig)
}

package splitting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/splitting"
)

func TestSplitSemiInductive(t *testing.T) {
	rows := ring(40, 4)
	parts, err := splitting.SplitSemiInductive(rows, []float64{0.6, 0.2, 0.2}, splitting.WithSeed(4))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	trainE, _ := ids(parts[0])
	for i := 1; i < len(parts); i++ {
		for _, row := range parts[i] {
			assert.False(t, trainE[row[0]] && trainE[row[2]], "row %v", row)
		}
	}
}

func TestSplitFullyInductive_DisjointUniverses(t *testing.T) {
	rows := ring(60, 3)
	parts, err := splitting.SplitFullyInductive(rows, 0.5, []float64{0.8, 0.1, 0.1}, splitting.WithSeed(2), splitting.WithMethod(splitting.MethodCleanup))
	require.NoError(t, err)
	require.Len(t, parts, 4)

	trainE, _ := ids(parts[0])
	for i := 1; i < len(parts); i++ {
		for _, row := range parts[i] {
			assert.False(t, trainE[row[0]])
			assert.False(t, trainE[row[2]])
		}
	}

	inferE, _ := ids(parts[1])
	for i := 2; i < len(parts); i++ {
		e, _ := ids(parts[i])
		for id := range e {
			assert.True(t, inferE[id], "evaluation entity %d missing from inference graph", id)
		}
	}
}

func TestSplitInductive_SeededEntityShuffle(t *testing.T) {
	rows := ring(40, 4)
	a, err := splitting.SplitSemiInductive(rows, []float64{0.5, 0.5}, splitting.WithSeed(9))
	require.NoError(t, err)
	b, err := splitting.SplitSemiInductive(rows, []float64{0.5, 0.5}, splitting.WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := splitting.SplitFullyInductive(rows, 0.5, []float64{0.5, 0.5}, splitting.WithSeed(9))
	require.NoError(t, err)
	d, err := splitting.SplitFullyInductive(rows, 0.5, []float64{0.5, 0.5}, splitting.WithSeed(9))
	require.NoError(t, err)
	assert.Equal(t, c, d)
}

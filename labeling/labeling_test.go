package labeling_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/labeling"
)

func TestNew_DerivesInverseAndMaxID(t *testing.T) {
	l := labeling.New(map[string]int64{"a": 0, "b": 1, "c": 2})
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.MaxID())

	label, ok := l.LabelOf(1)
	require.True(t, ok)
	assert.Equal(t, "b", label)

	id, ok := l.ID("c")
	require.True(t, ok)
	assert.EqualValues(t, 2, id)
}

func TestNew_CopiesInput(t *testing.T) {
	src := map[string]int64{"a": 0}
	l := labeling.New(src)
	src["b"] = 1
	assert.Equal(t, 1, l.Len())

	out := l.LabelToID()
	out["z"] = 9
	_, ok := l.ID("z")
	assert.False(t, ok)
}

func TestLabel_UnknownSentinel(t *testing.T) {
	l := labeling.New(map[string]int64{"a": 0, "b": 1})
	got := l.Label([]int64{1, 7, 0, -1}, "?")
	assert.Equal(t, []string{"b", "?", "a", "?"}, got)
}

func TestIDs_MarksMissing(t *testing.T) {
	l := labeling.New(map[string]int64{"a": 0, "b": 1})
	ids, found := l.IDs([]string{"b", "x"})
	assert.Equal(t, []int64{1, -1}, ids)
	assert.Equal(t, []bool{true, false}, found)
}

func TestAllLabels_FillsHoles(t *testing.T) {
	l := labeling.New(map[string]int64{"a": 0, "c": 2})
	assert.Equal(t, []string{"a", labeling.DefaultUnknownLabel, "c"}, l.AllLabels())
}

func TestEmpty(t *testing.T) {
	l := labeling.New(nil)
	assert.Equal(t, 0, l.MaxID())
	assert.Empty(t, l.AllLabels())
}

func TestFromLabels_FirstWins(t *testing.T) {
	l := labeling.FromLabels([]string{"x", "y", "x", "z"})
	assert.Equal(t, map[string]int64{"x": 0, "y": 1, "z": 2}, l.LabelToID())
	assert.Equal(t, []string{"x", "y", "z"}, l.Labels())
}

func TestEqual(t *testing.T) {
	a := labeling.New(map[string]int64{"a": 0, "b": 1})
	b := labeling.New(map[string]int64{"b": 1, "a": 0})
	c := labeling.New(map[string]int64{"a": 1, "b": 0})
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	var n *labeling.Labeling
	assert.True(t, n.Equal(nil))
}

func TestCompact(t *testing.T) {
	compacted, translation := labeling.Compact(map[string]int64{"a": 3, "b": 10, "c": 7})
	assert.Equal(t, map[string]int64{"a": 0, "c": 1, "b": 2}, compacted)
	assert.Equal(t, map[int64]int64{3: 0, 7: 1, 10: 2}, translation)
}

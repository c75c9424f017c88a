package condense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/kgtriples/condense"
)

func TestMake_ContiguousIsIdentity(t *testing.T) {
	c := condense.Make([]int64{2, 0, 1, 1, 0}, true)
	assert.False(t, c.Active())

	in := []int64{0, 2, 1}
	out, err := c.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Equal(t, 3, c.ApplyToNum(3))
}

func TestMake_DisabledOrEmpty(t *testing.T) {
	assert.False(t, condense.Make([]int64{5, 9}, false).Active())
	assert.False(t, condense.Make(nil, true).Active())
}

func TestMake_Sparse(t *testing.T) {
	c := condense.Make([]int64{5, 1, 5, 3}, true)
	require.True(t, c.Active())
	assert.Equal(t, []int64{-1, 0, -1, 1, -1, 2}, c.Condensation())

	out, err := c.Apply([]int64{3, 5, 1})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 0}, out)
	assert.Equal(t, 3, c.ApplyToNum(6))
}

func TestApply_Idempotent(t *testing.T) {
	c := condense.Make([]int64{4, 8, 15}, true)
	out, err := c.Apply([]int64{4, 8, 15})
	require.NoError(t, err)

	again := condense.Make(out, true)
	assert.False(t, again.Active())
}

func TestApply_DroppedIDFails(t *testing.T) {
	c := condense.Make([]int64{0, 2}, true)
	_, err := c.Apply([]int64{1})
	assert.ErrorIs(t, err, condense.ErrUnmappedID)
	_, err = c.Apply([]int64{7})
	assert.ErrorIs(t, err, condense.ErrUnmappedID)
	_, err = c.Apply([]int64{-3})
	assert.ErrorIs(t, err, condense.ErrUnmappedID)
}

func TestApplyToMap(t *testing.T) {
	c := condense.Make([]int64{0, 2}, true)
	got := c.ApplyToMap(map[int64]string{0: "a", 1: "b", 2: "c"})
	assert.Equal(t, map[string]int64{"a": 0, "c": 1}, got)

	id := condense.Condenser{}
	assert.Equal(t, map[string]int64{"x": 4}, id.ApplyToMap(map[int64]string{4: "x"}))
}

func TestNewFromMapping(t *testing.T) {
	c, err := condense.NewFromMapping([]int64{1, -1, 0})
	require.NoError(t, err)
	assert.True(t, c.Active())

	tests := []struct {
		name string
		in   []int64
	}{
		{"out of range", []int64{0, 3, 1}},
		{"below -1", []int64{-2, 0}},
		{"duplicate", []int64{0, 0}},
		{"gap", []int64{0, 2, -1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := condense.NewFromMapping(tc.in)
			assert.ErrorIs(t, err, condense.ErrBadMapping)
		})
	}

	id, err := condense.NewFromMapping(nil)
	require.NoError(t, err)
	assert.False(t, id.Active())
}

func TestTripleCondenser(t *testing.T) {
	rows := [][3]int64{{0, 3, 4}, {4, 1, 9}}
	tc := condense.MakeTriple(rows, true, true)
	require.True(t, tc.Active())

	out, err := tc.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, [][3]int64{{0, 1, 1}, {1, 0, 2}}, out)

	onlyRel := condense.MakeTriple(rows, false, true)
	assert.False(t, onlyRel.Entities.Active())
	out, err = onlyRel.Apply(rows)
	require.NoError(t, err)
	assert.Equal(t, [][3]int64{{0, 1, 4}, {4, 0, 9}}, out)

	none := condense.MakeTriple(rows, false, false)
	assert.False(t, none.Active())
}

func TestMakeBounded_DropsTrailingIDs(t *testing.T) {
	assert.False(t, condense.Make([]int64{0, 1, 2}, true).Active())

	c := condense.MakeBounded([]int64{0, 1, 2}, 5, true)
	require.True(t, c.Active())
	assert.Equal(t, 3, c.ApplyToNum(5))
	assert.Equal(t, map[string]int64{"a": 0}, c.ApplyToMap(map[int64]string{0: "a", 4: "z"}))

	assert.False(t, condense.MakeBounded([]int64{0, 1, 2}, 3, true).Active())
	assert.False(t, condense.MakeBounded([]int64{0, 1, 2}, 1, true).Active())
}

// SPDX-License-Identifier: MIT

package anchors

import "github.com/katalvlaran/kgtriples/rng"

// RandomSelection ranks 0..max ID by a seeded permutation.
type RandomSelection struct {
	Num  int
	Seed uint64
}

// NumAnchors implements Selection.
func (s RandomSelection) NumAnchors() int { return s.Num }

// Select implements Selection.
func (s RandomSelection) Select(edgeIndex [][2]int64, known []int64) []int64 {
	return filterUnique(s.rank(edgeIndex), known, s.Num)
}

func (s RandomSelection) rank(edgeIndex [][2]int64) []int64 {
	ids := nodes(edgeIndex)
	if len(ids) == 0 {
		return nil
	}
	perm := rng.Perm(int(ids[len(ids)-1])+1, rng.New(s.Seed))
	out := make([]int64, len(perm))
	for i, p := range perm {
		out[i] = int64(p)
	}

	return out
}

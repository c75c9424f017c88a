// SPDX-License-Identifier: MIT

package anchors

import (
	"cmp"
	"errors"
	"slices"
)

var (
	// ErrUnknownSelection is returned by New for unregistered names.
	ErrUnknownSelection = errors.New("anchors: unknown selection")

	// ErrInvalidConfig is returned for unusable selection configurations.
	ErrInvalidConfig = errors.New("anchors: invalid config")
)

// DefaultNumAnchors is the anchor budget of a selection.
const DefaultNumAnchors = 32

// Selection picks anchors from an (m, 2) edge index.
//
// known may be nil. The result is known followed by at most NumAnchors()
// novel anchors.
type Selection interface {
	Select(edgeIndex [][2]int64, known []int64) []int64
	NumAnchors() int
}

// filterUnique appends the first num entries of ranking that are not in known.
func filterUnique(ranking, known []int64, num int) []int64 {
	seen := make(map[int64]struct{}, len(known))
	for _, a := range known {
		seen[a] = struct{}{}
	}
	out := make([]int64, len(known), len(known)+num)
	copy(out, known)
	for _, id := range ranking {
		if len(out)-len(known) >= num {
			break
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// byScore orders ids by decreasing score, then ascending ID.
func byScore(ids []int64, score func(int64) float64) []int64 {
	slices.SortFunc(ids, func(a, b int64) int {
		if c := cmp.Compare(score(b), score(a)); c != 0 {
			return c
		}

		return cmp.Compare(a, b)
	})

	return ids
}

// nodes returns the distinct IDs of the edge index in ascending order.
func nodes(edgeIndex [][2]int64) []int64 {
	ids := make([]int64, 0, 2*len(edgeIndex))
	for _, e := range edgeIndex {
		ids = append(ids, e[0], e[1])
	}
	slices.Sort(ids)

	return slices.Compact(ids)
}

// DegreeSelection ranks entities by undirected degree.
type DegreeSelection struct {
	Num int
}

// NumAnchors implements Selection.
func (s DegreeSelection) NumAnchors() int { return s.Num }

// Select implements Selection.
func (s DegreeSelection) Select(edgeIndex [][2]int64, known []int64) []int64 {
	return filterUnique(s.rank(edgeIndex), known, s.Num)
}

func (s DegreeSelection) rank(edgeIndex [][2]int64) []int64 {
	deg := make(map[int64]float64)
	for _, e := range edgeIndex {
		deg[e[0]]++
		deg[e[1]]++
	}

	return byScore(nodes(edgeIndex), func(id int64) float64 { return deg[id] })
}

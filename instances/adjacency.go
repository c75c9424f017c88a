// SPDX-License-Identifier: MIT

package instances

import "github.com/katalvlaran/kgtriples/triples"

// Adjacency is an undirected compressed adjacency list over triple edges.
// The neighbours of node v are Neighbors[Offsets[v] : Offsets[v]+Degrees[v]],
// each an (edge index, other endpoint) pair. A self-loop appears twice.
type Adjacency struct {
	Degrees   []int
	Offsets   []int
	Neighbors [][2]int64
}

// ComputeCompressedAdjacency indexes the edges of mapped by endpoint.
// numEntities ≤ 0 infers the node count from the maximum ID.
//
// Complexity: O(V + n).
func ComputeCompressedAdjacency(mapped triples.MappedTriples, numEntities int) Adjacency {
	if numEntities <= 0 {
		numEntities = maxID(mapped, triples.ColumnHead, triples.ColumnTail)
	}
	adj := Adjacency{
		Degrees:   make([]int, numEntities),
		Offsets:   make([]int, numEntities),
		Neighbors: make([][2]int64, 2*len(mapped)),
	}
	for _, t := range mapped {
		adj.Degrees[t[0]]++
		adj.Degrees[t[2]]++
	}
	for v := 1; v < numEntities; v++ {
		adj.Offsets[v] = adj.Offsets[v-1] + adj.Degrees[v-1]
	}
	fill := make([]int, numEntities)
	copy(fill, adj.Offsets)
	for i, t := range mapped {
		h, tl := t[0], t[2]
		adj.Neighbors[fill[h]] = [2]int64{int64(i), tl}
		fill[h]++
		adj.Neighbors[fill[tl]] = [2]int64{int64(i), h}
		fill[tl]++
	}

	return adj
}

// neighbors returns the adjacency entries of v.
func (a Adjacency) neighbors(v int) [][2]int64 {
	return a.Neighbors[a.Offsets[v] : a.Offsets[v]+a.Degrees[v]]
}

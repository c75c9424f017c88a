// SPDX-License-Identifier: MIT

package anchors

import (
	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"
)

const (
	// DefaultDamping is the PageRank damping factor.
	DefaultDamping = 0.85

	// DefaultTolerance is the PageRank convergence tolerance.
	DefaultTolerance = 1e-8
)

// PageRankSelection ranks entities by PageRank on the undirected graph of
// the edge index. Self-loops are ignored.
type PageRankSelection struct {
	Num       int
	Damping   float64
	Tolerance float64
}

// NumAnchors implements Selection.
func (s PageRankSelection) NumAnchors() int { return s.Num }

// Select implements Selection.
func (s PageRankSelection) Select(edgeIndex [][2]int64, known []int64) []int64 {
	return filterUnique(s.rank(edgeIndex), known, s.Num)
}

func (s PageRankSelection) rank(edgeIndex [][2]int64) []int64 {
	ids := nodes(edgeIndex)
	if len(ids) == 0 {
		return nil
	}
	g := simple.NewDirectedGraph()
	for _, id := range ids {
		g.AddNode(simple.Node(id))
	}
	for _, e := range edgeIndex {
		if e[0] == e[1] {
			continue
		}
		g.SetEdge(g.NewEdge(simple.Node(e[0]), simple.Node(e[1])))
		g.SetEdge(g.NewEdge(simple.Node(e[1]), simple.Node(e[0])))
	}
	damp, tol := s.Damping, s.Tolerance
	if damp <= 0 || damp >= 1 {
		damp = DefaultDamping
	}
	if tol <= 0 {
		tol = DefaultTolerance
	}
	scores := network.PageRank(g, damp, tol)

	return byScore(ids, func(id int64) float64 { return scores[id] })
}

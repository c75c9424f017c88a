// SPDX-License-Identifier: MIT

// Package anchors selects anchor entities: central nodes of a graph that
// other entities are described by.
//
// What:
//
//   - DegreeSelection:   undirected degree, highest first.
//   - PageRankSelection: PageRank over the symmetrised edge index.
//   - RandomSelection:   a seeded permutation of 0..max ID.
//   - MixtureSelection:  runs several selections in order, each adding its
//     share of the anchor budget on top of the anchors found so far.
//
// Invariants:
//
//   - Select never returns duplicates; known anchors come first, unchanged.
//   - fewer than NumAnchors novel anchors are returned when the graph has
//     too few candidates.
//   - ties are broken by ascending entity ID, so rankings are deterministic.
//
// Errors:
//
//   - ErrUnknownSelection: New with an unregistered name.
//   - ErrInvalidConfig:    negative budgets, bad mixture ratios.
package anchors

// SPDX-License-Identifier: MIT

// Package labeling implements the bidirectional mapping between string labels
// and dense integer IDs for one axis of a knowledge graph (entities or
// relations).
//
// What:
//
//   - Labeling: immutable label→ID map with the derived ID→label inverse.
//   - Vectorised lookups in both directions (Label, IDs).
//   - Compact: renumbering of a sparse mapping to 0..n-1.
//
// Invariants:
//
//   - IDs are assumed dense, i.e. exactly 0..MaxID()-1. A hand-built mapping
//     that violates this is not rejected; AllLabels substitutes
//     DefaultUnknownLabel for the holes.
//   - A Labeling never changes after New returns. Every accessor that exposes
//     a map returns a copy.
//
// Complexity:
//
//   - New:     O(n) time and memory
//   - Label:   O(len(ids))
//   - IDs:     O(len(labels))
//   - Compact: O(n log n)
package labeling

// SPDX-License-Identifier: MIT

// Package instances turns ID-based triples into training instances.
//
// What:
//
//   - LCWAInstances: one multi-label row per unique pair of non-target
//     columns (e.g. (head, relation) for tail prediction) stored as a CSR
//     matrix over the target ID space. Dense rows are materialised per item.
//   - BatchedSLCWAInstances: per epoch, random batches of distinct positive
//     indices paired with negatives from a sampling.Sampler.
//   - SubGraphSLCWAInstances: batches of (near-)connected edges grown from
//     the residual-degree weights of already visited nodes.
//   - Loader: drives an sLCWA source from several goroutines, each with its
//     own workload slice and RNG stream.
//
// Invariants:
//
//   - a batch never holds the same positive index twice.
//   - Epoch is restartable: every call allocates fresh sampling state, so
//     sequences are independent and safe to run concurrently when each
//     call receives its own *rand.Rand.
//   - subgraph sampling always makes progress. A visited node whose edges are
//     all picked is dropped from the weighted draw ("exhaustion"); when no
//     edge is left anywhere the batch ends short.
//
// Complexity:
//
//   - LCWAFromTriples: O(n log n) for n triples.
//   - Batched Epoch: O(n) per epoch plus the sampler's cost.
//   - Subgraph batch: O(V + b·(log V + d)) for V nodes, batch size b and
//     bounded rejection draws d.
//
// Errors:
//
//   - ErrInvalidTarget, ErrIndexOutOfRange, ErrUnknownKind, ErrWeighterColumns
//   - triples.ErrIDOutOfRange for IDs outside the declared spaces.
package instances

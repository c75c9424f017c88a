// SPDX-License-Identifier: MIT

// Package splitting partitions a triple matrix into disjoint parts under the
// training-coverage constraint, and slices per-epoch workloads across workers.
//
// What:
//
//   - Split: transductive k-way split. Part 0 (training) contains every
//     entity and relation that appears anywhere in the input.
//     MethodCoverage (default) seeds the training part with a deterministic
//     cover of all IDs, then fills the remaining sizes from a shuffle.
//     MethodCleanup shuffles first and afterwards moves every evaluation
//     triple that mentions an ID unseen in training back into training
//     (optionally one random triple at a time).
//   - SplitSemiInductive: entities are partitioned; evaluation triples link
//     one unseen entity to the training graph.
//   - SplitFullyInductive: training and inference graphs have disjoint
//     entity sets; the inference triples are split further transductively.
//   - SplitWorkload: the contiguous slice of an epoch a worker is
//     responsible for.
//
// Determinism:
//
//   - All randomness flows from a single seeded stream (WithSeed). A zero
//     seed selects rng.DefaultSeed, never a time-based source.
//
// Contract (Split):
//
//   - rows are a strict partition of the input: no duplication, no loss.
//   - sizes approximate the requested ratios; the coverage step may grow the
//     training part beyond its share.
//
// Errors:
//
//   - ErrInvalidRatios  ratios not positive, or summing above 1
//   - ErrCoverage       the ID cover does not fit into the training part
//   - ErrUnknownMethod  unregistered method name
package splitting

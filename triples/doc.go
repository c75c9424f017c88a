// SPDX-License-Identifier: MIT

// Package triples is the data model of a knowledge graph: ID-based triple
// matrices, their entity/relation counts, and the factories that validate,
// transform and persist them.
//
// What:
//
//   - MappedTriples: an (n, 3) matrix of (head, relation, tail) IDs.
//   - KGInfo: entity and relation counts plus the inverse-triple policy.
//   - CoreTriplesFactory: owns a validated matrix; split, merge, restrict,
//     condense and inverse materialisation return NEW factories.
//   - TriplesFactory: a CoreTriplesFactory with entity and relation
//     labelings; built from labeled rows or a text file.
//   - Binary persistence (numeric_triples.tsv.gz, base.pth, label files).
//
// Invariants:
//
//   - every ID is ≥ 0; heads and tails < NumEntities; relations <
//     RealNumRelations. Stored triples only use real relations; inverses
//     are materialised just in time by AddInverseTriplesIfNecessary.
//   - label→ID conversion deduplicates and sorts rows. Consumers must NOT
//     rely on row order surviving a conversion.
//   - factories are never mutated. Metadata is shared by reference between
//     clones and is itself immutable.
//
// Errors:
//
//   - shape/type:   ErrBadShape, ErrBadDType, ErrIDOutOfRange
//   - configuration: ErrConfigMismatch, ErrInversesNotCreated,
//     ErrUncoveredIDs, ErrLabelingMismatch, ErrUnknownInverter
//   - data quality: not an error. Affected rows are dropped, a Warn record
//     is logged and metrics.Collectors counts them.
//
// Concurrency:
//
//   - factories are safe for concurrent readers; nothing mutates them.
package triples

// SPDX-License-Identifier: MIT
// Package kgtriples manages knowledge-graph triples and turns them into
// training instances for link-prediction models.
//
// What is kgtriples?
//
//	A deterministic, library-first toolkit that covers:
//		• Labeling: bijective label ↔ ID mappings for entities and relations
//		• Factories: immutable triple collections with inverse relations,
//		  metadata, restriction, merging and ID condensation
//		• Persistence: numeric triples + labelings as gzip TSV, text loaders
//		• Splitting: transductive, semi-inductive and fully-inductive splits
//		• Instances: LCWA (sparse multi-label targets) and sLCWA (batched or
//		  subgraph positives with sampled negatives)
//		• Anchors: degree, PageRank, random and mixture anchor selection
//		• Early stopping: patience logic around an external evaluator
//
// Packages:
//
//	labeling/   - Labeling and ID compaction
//	condense/   - Condenser / TripleCondenser (drop unused IDs)
//	triples/    - CoreTriplesFactory, TriplesFactory, KGInfo, persistence
//	splitting/  - ratio handling, dataset splits, per-worker workloads
//	sampling/   - negative samplers (basic, bernoulli) + registry
//	instances/  - LCWA / sLCWA instances, CSR, loss weighters, parallel Loader
//	anchors/    - anchor selection strategies + registry
//	stopper/    - patience Logic and EarlyStopper
//	metrics/    - Prometheus collectors for dropped triples and batches
//	rng/        - seeded, per-worker random streams
//	config/     - YAML configuration for the kgtriples command
//	cmd/kgtriples - CLI: inspect, split, condense, lcwa, slcwa, anchors
//
// Determinism: every random choice takes an explicit seed or *rand.Rand;
// the same seed reproduces the same split, batch order and negatives.
//
// Errors are package-level sentinels (triples.ErrIDOutOfRange,
// splitting.ErrInvalidRatios, ...) wrapped with context; match them with
// errors.Is. Data-quality problems (unknown labels, dropped rows) are logged
// through log/slog and counted in metrics rather than returned.
package kgtriples

// SPDX-License-Identifier: MIT

// Package sampling provides negative samplers for stochastic local
// closed-world training.
//
// A Sampler corrupts every positive triple into NumNegsPerPos negatives by
// replacing one column with a different ID. It never reproduces the
// original ID in the corrupted column. With filtering enabled, a mask marks
// the negatives that are NOT known true triples; only those should
// contribute to the loss.
//
// Samplers are chosen by name through a closed registry (New). Unknown
// names fail immediately with ErrUnknownSampler.
//
// Concurrency:
//
//   - Samplers are read-only after construction and safe for concurrent use
//     provided each goroutine passes its own *rand.Rand.
package sampling

// SPDX-License-Identifier: MIT
// Package rng - deterministic random streams shared by splitting, sampling and
// the batch loaders.
//
// Goals:
//   - Determinism: same seed ⇒ identical results across platforms.
//   - Encapsulation: a single RNG factory; no time-based sources hidden anywhere.
//   - Independence: per-worker streams are derived, never shared.
//
// Concurrency:
//   - *rand.Rand is NOT goroutine-safe. Do not share a stream across goroutines;
//     call Derive once per worker during setup instead.
package rng

import "math/rand/v2"

// DefaultSeed is the fixed “zero” seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const DefaultSeed uint64 = 1

// New returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use DefaultSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func New(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.New(rand.NewPCG(seed, mix(seed, 0)))
}

// Derive creates an independent deterministic stream for the given stream
// identifier (typically a worker rank) from a parent seed.
//
// Usage:
//   - Call during setup (not in hot loops) to create per-worker RNGs.
//
// Complexity: O(1).
func Derive(seed uint64, stream uint64) *rand.Rand {
	if seed == 0 {
		seed = DefaultSeed
	}
	s := mix(seed, stream)
	return rand.New(rand.NewPCG(s, mix(s, stream+1)))
}

// mix folds a parent seed and a stream identifier into a new 64-bit seed
// using the canonical SplitMix64 finalizer.
func mix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Perm returns a permutation of 0..n-1 drawn from r. A nil r uses the
// DefaultSeed stream.
//
// Complexity: O(n) time, O(n) space.
func Perm(n int, r *rand.Rand) []int {
	if r == nil {
		r = New(0)
	}
	return r.Perm(n)
}

// Shuffle performs an in-place Fisher–Yates shuffle of a using r. A nil r
// uses the DefaultSeed stream.
//
// Complexity: O(n) time, O(1) extra space.
func Shuffle[T any](a []T, r *rand.Rand) {
	if len(a) <= 1 {
		return
	}
	if r == nil {
		r = New(0)
	}
	for i := len(a) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

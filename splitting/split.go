// SPDX-License-Identifier: MIT

package splitting

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/kgtriples/rng"
)

// Split partitions rows into len(NormalizeRatios(ratios)) parts.
// Part 0 covers every entity and relation of rows.
//
// Stages:
//  1. normalise ratios and derive absolute sizes;
//  2. shuffle rows with the seeded stream;
//  3. enforce coverage with the configured Method.
//
// Complexity: O(n log n) for MethodCoverage and deterministic cleanup,
// O(n·m) for randomized cleanup (m = moved triples).
func Split(rows [][3]int64, ratios []float64, opts ...Option) ([][][3]int64, error) {
	o := gatherOptions(opts...)
	r := rng.New(o.seed)

	return split(rows, ratios, o, r)
}

func split(rows [][3]int64, ratios []float64, o Options, r *rand.Rand) ([][][3]int64, error) {
	norm, err := NormalizeRatios(ratios)
	if err != nil {
		return nil, err
	}
	sizes := AbsoluteSizes(len(rows), norm)

	perm := r.Perm(len(rows))
	shuffled := make([][3]int64, len(rows))
	for i, p := range perm {
		shuffled[i] = rows[p]
	}

	switch o.method {
	case MethodCleanup:
		parts := cut(shuffled, sizes)
		return cleanup(parts, o, r), nil
	default:
		return coverageSplit(shuffled, sizes, o)
	}
}

// cut slices rows into consecutive parts of the given sizes.
func cut(rows [][3]int64, sizes []int) [][][3]int64 {
	parts := make([][][3]int64, len(sizes))
	start := 0
	for i, s := range sizes {
		parts[i] = append([][3]int64(nil), rows[start:start+s]...)
		start += s
	}

	return parts
}

// cover marks, for every column, the first row in which each value occurs.
func cover(rows [][3]int64) []bool {
	mask := make([]bool, len(rows))
	for col := 0; col < 3; col++ {
		seen := make(map[int64]struct{})
		for i, row := range rows {
			if _, ok := seen[row[col]]; ok {
				continue
			}
			seen[row[col]] = struct{}{}
			mask[i] = true
		}
	}

	return mask
}

func coverageSplit(rows [][3]int64, sizes []int, o Options) ([][][3]int64, error) {
	mask := cover(rows)
	seed := make([][3]int64, 0, sizes[0])
	rest := make([][3]int64, 0, len(rows))
	for i, row := range rows {
		if mask[i] {
			seed = append(seed, row)
		} else {
			rest = append(rest, row)
		}
	}
	if len(seed) > sizes[0] {
		return nil, fmt.Errorf("cover needs %d triples, training holds %d: %w", len(seed), sizes[0], ErrCoverage)
	}
	remaining := append([]int{sizes[0] - len(seed)}, sizes[1:]...)
	parts := cut(rest, remaining)
	parts[0] = append(seed, parts[0]...)
	o.logger.Debug("coverage split", "seed", len(seed), "sizes", sizes)

	return parts, nil
}

// idSets tracks the entities and relations present in the training part.
type idSets struct {
	entities  map[int64]struct{}
	relations map[int64]struct{}
}

func newIDSets(rows [][3]int64) idSets {
	s := idSets{entities: make(map[int64]struct{}), relations: make(map[int64]struct{})}
	for _, row := range rows {
		s.add(row)
	}

	return s
}

func (s idSets) add(row [3]int64) {
	s.entities[row[0]] = struct{}{}
	s.entities[row[2]] = struct{}{}
	s.relations[row[1]] = struct{}{}
}

func (s idSets) covers(row [3]int64) bool {
	_, h := s.entities[row[0]]
	_, t := s.entities[row[2]]
	_, rel := s.relations[row[1]]

	return h && t && rel
}

func cleanup(parts [][][3]int64, o Options, r *rand.Rand) [][][3]int64 {
	train := newIDSets(parts[0])
	moved := 0
	for i := 1; i < len(parts); i++ {
		if o.randomizedCleanup {
			moved += cleanupRandomized(parts, i, train, r)
		} else {
			moved += cleanupDeterministic(parts, i, train)
		}
	}
	if moved > 0 {
		o.logger.Info("moved triples into training to keep coverage", "moved", moved)
		o.metrics.Moved(moved)
	}

	return parts
}

func cleanupDeterministic(parts [][][3]int64, i int, train idSets) int {
	keep := parts[i][:0]
	moved := 0
	for _, row := range parts[i] {
		if train.covers(row) {
			keep = append(keep, row)
			continue
		}
		parts[0] = append(parts[0], row)
		moved++
	}
	for _, row := range parts[0][len(parts[0])-moved:] {
		train.add(row)
	}
	parts[i] = keep

	return moved
}

func cleanupRandomized(parts [][][3]int64, i int, train idSets, r *rand.Rand) int {
	moved := 0
	for {
		var offending []int
		for j, row := range parts[i] {
			if !train.covers(row) {
				offending = append(offending, j)
			}
		}
		if len(offending) == 0 {
			return moved
		}
		j := offending[r.IntN(len(offending))]
		row := parts[i][j]
		parts[i] = append(parts[i][:j], parts[i][j+1:]...)
		parts[0] = append(parts[0], row)
		train.add(row)
		moved++
	}
}

// SPDX-License-Identifier: MIT

package splitting

import (
	"math/rand/v2"
	"slices"

	"github.com/katalvlaran/kgtriples/rng"
)

// entityGroups shuffles the entities of rows and assigns them to groups of
// the given ratios. The result maps entity → group index.
func entityGroups(rows [][3]int64, ratios []float64, r *rand.Rand) map[int64]int {
	seen := make(map[int64]struct{})
	for _, row := range rows {
		seen[row[0]] = struct{}{}
		seen[row[2]] = struct{}{}
	}
	entities := make([]int64, 0, len(seen))
	for e := range seen {
		entities = append(entities, e)
	}
	slices.Sort(entities)
	rng.Shuffle(entities, r)

	group := make(map[int64]int, len(entities))
	start := 0
	for g, size := range AbsoluteSizes(len(entities), ratios) {
		for _, e := range entities[start : start+size] {
			group[e] = g
		}
		start += size
	}

	return group
}

// SplitSemiInductive partitions the entities by ratios. Part 0 holds the
// triples among training entities; part i>0 holds the triples that link one
// entity of group i to a training entity. Triples between two evaluation
// groups are discarded.
func SplitSemiInductive(rows [][3]int64, ratios []float64, opts ...Option) ([][][3]int64, error) {
	o := gatherOptions(opts...)
	norm, err := NormalizeRatios(ratios)
	if err != nil {
		return nil, err
	}
	group := entityGroups(rows, norm, rng.New(o.seed))

	parts := make([][][3]int64, len(norm))
	dropped := 0
	for _, row := range rows {
		gh, gt := group[row[0]], group[row[2]]
		switch {
		case gh == 0 && gt == 0:
			parts[0] = append(parts[0], row)
		case gh == 0:
			parts[gt] = append(parts[gt], row)
		case gt == 0:
			parts[gh] = append(parts[gh], row)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		o.logger.Info("semi-inductive split discarded triples between evaluation entities", "dropped", dropped, "total", len(rows))
	}

	return parts, nil
}

// SplitFullyInductive partitions the entities into a training and an
// inference universe with trainRatio. Part 0 holds the triples among
// training entities. The triples among inference entities are split again
// with evalRatios: part 1 is the inference graph, parts 2.. the evaluation
// triples. Triples crossing the two universes are discarded.
func SplitFullyInductive(rows [][3]int64, trainRatio float64, evalRatios []float64, opts ...Option) ([][][3]int64, error) {
	o := gatherOptions(opts...)
	norm, err := NormalizeRatios([]float64{trainRatio})
	if err != nil {
		return nil, err
	}
	r := rng.New(o.seed)
	group := entityGroups(rows, norm, r)

	var training, inference [][3]int64
	dropped := 0
	for _, row := range rows {
		gh, gt := group[row[0]], group[row[2]]
		switch {
		case gh == 0 && gt == 0:
			training = append(training, row)
		case gh == 1 && gt == 1:
			inference = append(inference, row)
		default:
			dropped++
		}
	}
	if dropped > 0 {
		o.logger.Info("fully-inductive split discarded triples crossing entity universes", "dropped", dropped, "total", len(rows))
	}

	rest, err := split(inference, evalRatios, o, r)
	if err != nil {
		return nil, err
	}

	return append([][][3]int64{training}, rest...), nil
}

// SPDX-License-Identifier: MIT

package condense

import (
	"fmt"
	"slices"
)

// Condenser renumbers IDs. The zero value is the identity.
type Condenser struct {
	condensation []int64
}

// Make builds a condenser for the IDs present in ids over the inferred ID
// space 0..max(ids).
//
// Stages:
//  1. disabled or empty input ⇒ identity.
//  2. unique sorted IDs; if they are exactly 0..k-1 ⇒ identity.
//  3. otherwise present IDs map, in ascending order, to 0..k-1 and every
//     absent ID maps to -1.
//
// Complexity: O(n log n).
func Make(ids []int64, enable bool) Condenser {
	return MakeBounded(ids, 0, enable)
}

// MakeBounded is Make over the declared ID space 0..size-1, so that unused
// IDs above max(ids) are dropped as well. A size not above max(ids) falls
// back to the inferred space.
func MakeBounded(ids []int64, size int, enable bool) Condenser {
	if !enable || len(ids) == 0 {
		return Condenser{}
	}
	unique := slices.Clone(ids)
	slices.Sort(unique)
	unique = slices.Compact(unique)

	n := max(int64(size), unique[len(unique)-1]+1)
	if unique[0] == 0 && n == int64(len(unique)) {
		return Condenser{}
	}
	c := make([]int64, n)
	for i := range c {
		c[i] = -1
	}
	for newID, oldID := range unique {
		c[oldID] = int64(newID)
	}

	return Condenser{condensation: c}
}

// NewFromMapping wraps a precomputed condensation after validating that its
// values lie in [-1, len) and that retained IDs are numbered 0..k-1.
// A nil slice yields the identity.
func NewFromMapping(condensation []int64) (Condenser, error) {
	if condensation == nil {
		return Condenser{}, nil
	}
	seen := make([]bool, len(condensation))
	k := 0
	for old, v := range condensation {
		if v < -1 || v >= int64(len(condensation)) {
			return Condenser{}, fmt.Errorf("value %d at %d: %w", v, old, ErrBadMapping)
		}
		if v < 0 {
			continue
		}
		if seen[v] {
			return Condenser{}, fmt.Errorf("duplicate target %d: %w", v, ErrBadMapping)
		}
		seen[v] = true
		k++
	}
	for i := 0; i < k; i++ {
		if !seen[i] {
			return Condenser{}, fmt.Errorf("target %d missing: %w", i, ErrBadMapping)
		}
	}

	return Condenser{condensation: slices.Clone(condensation)}, nil
}

// Active reports whether the condenser renumbers anything.
func (c Condenser) Active() bool { return c.condensation != nil }

// Condensation returns a copy of the old→new vector, nil for the identity.
func (c Condenser) Condensation() []int64 { return slices.Clone(c.condensation) }

// Apply renumbers ids. The identity returns ids unchanged (same backing
// array); an active condenser returns a fresh slice.
func (c Condenser) Apply(ids []int64) ([]int64, error) {
	if c.condensation == nil {
		return ids, nil
	}
	out := make([]int64, len(ids))
	for i, id := range ids {
		v, err := c.lookup(id)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func (c Condenser) lookup(id int64) (int64, error) {
	if id < 0 || id >= int64(len(c.condensation)) || c.condensation[id] < 0 {
		return 0, fmt.Errorf("id %d: %w", id, ErrUnmappedID)
	}

	return c.condensation[id], nil
}

// ApplyToMap re-keys an ID→label map into the condensed label→ID space.
// Entries for dropped IDs are removed.
func (c Condenser) ApplyToMap(idToLabel map[int64]string) map[string]int64 {
	out := make(map[string]int64, len(idToLabel))
	for id, label := range idToLabel {
		if c.condensation == nil {
			out[label] = id
			continue
		}
		if v, err := c.lookup(id); err == nil {
			out[label] = v
		}
	}

	return out
}

// ApplyToNum returns the size of the condensed ID space given the old size.
func (c Condenser) ApplyToNum(maxID int) int {
	if c.condensation == nil {
		return maxID
	}
	n := 0
	for _, v := range c.condensation {
		if v >= 0 {
			n++
		}
	}

	return n
}

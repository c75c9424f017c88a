// SPDX-License-Identifier: MIT

package labeling

import (
	"maps"
	"slices"
)

// DefaultUnknownLabel is substituted for IDs that have no label.
const DefaultUnknownLabel = "unknown"

// Labeling is an immutable bidirectional mapping between labels and IDs.
// The zero value is an empty labeling.
type Labeling struct {
	labelToID map[string]int64
	idToLabel map[int64]string
	maxID     int
}

// New copies labelToID and derives the inverse mapping.
//
// Complexity: O(n).
func New(labelToID map[string]int64) *Labeling {
	l := &Labeling{
		labelToID: make(map[string]int64, len(labelToID)),
		idToLabel: make(map[int64]string, len(labelToID)),
	}
	for label, id := range labelToID {
		l.labelToID[label] = id
		l.idToLabel[id] = label
		if int(id)+1 > l.maxID {
			l.maxID = int(id) + 1
		}
	}

	return l
}

// FromLabels assigns IDs 0..len(labels)-1 in the given order.
// Duplicate labels keep their first ID.
func FromLabels(labels []string) *Labeling {
	m := make(map[string]int64, len(labels))
	var next int64
	for _, label := range labels {
		if _, ok := m[label]; ok {
			continue
		}
		m[label] = next
		next++
	}

	return New(m)
}

// Len returns the number of labels.
func (l *Labeling) Len() int { return len(l.labelToID) }

// MaxID returns max(ID)+1, or 0 for an empty labeling.
func (l *Labeling) MaxID() int { return l.maxID }

// ID returns the ID of label.
func (l *Labeling) ID(label string) (int64, bool) {
	id, ok := l.labelToID[label]
	return id, ok
}

// LabelOf returns the label of id.
func (l *Labeling) LabelOf(id int64) (string, bool) {
	label, ok := l.idToLabel[id]
	return label, ok
}

// Label maps every id to its label; ids without a label yield unknown.
// It never fails.
func (l *Labeling) Label(ids []int64, unknown string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if label, ok := l.idToLabel[id]; ok {
			out[i] = label
		} else {
			out[i] = unknown
		}
	}

	return out
}

// IDs maps every label to its ID. The second result reports, per position,
// whether the label was known; unknown labels get ID -1.
func (l *Labeling) IDs(labels []string) ([]int64, []bool) {
	ids := make([]int64, len(labels))
	found := make([]bool, len(labels))
	for i, label := range labels {
		if id, ok := l.labelToID[label]; ok {
			ids[i], found[i] = id, true
		} else {
			ids[i] = -1
		}
	}

	return ids, found
}

// AllLabels returns the labels of 0..MaxID()-1 in ID order.
func (l *Labeling) AllLabels() []string {
	ids := make([]int64, l.maxID)
	for i := range ids {
		ids[i] = int64(i)
	}

	return l.Label(ids, DefaultUnknownLabel)
}

// LabelToID returns a copy of the label→ID map.
func (l *Labeling) LabelToID() map[string]int64 { return maps.Clone(l.labelToID) }

// IDToLabel returns a copy of the ID→label map.
func (l *Labeling) IDToLabel() map[int64]string { return maps.Clone(l.idToLabel) }

// Labels returns all labels sorted by ID.
func (l *Labeling) Labels() []string {
	ids := slices.Sorted(maps.Keys(l.idToLabel))
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = l.idToLabel[id]
	}

	return out
}

// Equal reports whether both labelings hold the same label→ID pairs.
// Two nil labelings are equal.
func (l *Labeling) Equal(other *Labeling) bool {
	if l == nil || other == nil {
		return l == other
	}

	return maps.Equal(l.labelToID, other.labelToID)
}

// Compact renumbers a possibly sparse mapping to 0..n-1, preserving the
// order of the old IDs. It returns the new mapping and the old→new
// translation.
//
// Complexity: O(n log n).
func Compact(labelToID map[string]int64) (map[string]int64, map[int64]int64) {
	old := slices.Sorted(maps.Values(labelToID))
	old = slices.Compact(old)
	translation := make(map[int64]int64, len(old))
	for newID, oldID := range old {
		translation[oldID] = int64(newID)
	}
	compacted := make(map[string]int64, len(labelToID))
	for label, id := range labelToID {
		compacted[label] = translation[id]
	}

	return compacted, translation
}

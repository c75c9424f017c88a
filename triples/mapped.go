// SPDX-License-Identifier: MIT

package triples

import (
	"cmp"
	"fmt"
	"slices"
)

// Column indexes one position of a triple.
type Column int

// Triple columns.
const (
	ColumnHead     Column = 0
	ColumnRelation Column = 1
	ColumnTail     Column = 2
)

// String returns the column name used in file headers.
func (c Column) String() string {
	switch c {
	case ColumnHead:
		return "head"
	case ColumnRelation:
		return "relation"
	case ColumnTail:
		return "tail"
	}

	return fmt.Sprintf("column(%d)", int(c))
}

// ParseColumn maps "head", "relation" or "tail" to its Column.
func ParseColumn(name string) (Column, error) {
	for i, l := range ColumnLabels {
		if l == name {
			return Column(i), nil
		}
	}

	return 0, fmt.Errorf("column %q: %w", name, ErrInvalidArgument)
}

// ColumnLabels are the header names of the numeric triples file.
var ColumnLabels = [3]string{"head", "relation", "tail"}

// Triple is an ID-based (head, relation, tail) fact.
type Triple = [3]int64

// LabeledTriple is a label-based (head, relation, tail) fact.
type LabeledTriple = [3]string

// MappedTriples is an (n, 3) ID matrix, one Triple per row.
type MappedTriples []Triple

// Len returns the number of rows.
func (m MappedTriples) Len() int { return len(m) }

// Column returns a copy of column c.
func (m MappedTriples) Column(c Column) []int64 {
	out := make([]int64, len(m))
	for i, t := range m {
		out[i] = t[c]
	}

	return out
}

// Entities returns the sorted unique IDs in the head and tail columns.
func (m MappedTriples) Entities() []int64 {
	ids := make([]int64, 0, 2*len(m))
	for _, t := range m {
		ids = append(ids, t[ColumnHead], t[ColumnTail])
	}
	slices.Sort(ids)

	return slices.Compact(ids)
}

// Relations returns the sorted unique IDs in the relation column.
func (m MappedTriples) Relations() []int64 {
	ids := m.Column(ColumnRelation)
	slices.Sort(ids)

	return slices.Compact(ids)
}

// Clone returns a deep copy.
func (m MappedTriples) Clone() MappedTriples { return slices.Clone(m) }

// Unique returns the sorted, deduplicated rows. The receiver is not changed.
func (m MappedTriples) Unique() MappedTriples {
	out := slices.Clone(m)
	slices.SortFunc(out, CompareTriples)

	return slices.Compact(out)
}

// CompareTriples orders triples lexicographically by (head, relation, tail).
func CompareTriples(a, b Triple) int {
	if c := cmp.Compare(a[0], b[0]); c != 0 {
		return c
	}
	if c := cmp.Compare(a[1], b[1]); c != 0 {
		return c
	}

	return cmp.Compare(a[2], b[2])
}

// Equal reports element-wise equality, order included.
func (m MappedTriples) Equal(other MappedTriples) bool { return slices.Equal(m, other) }

// Rows exposes the matrix as plain [][3]int64 without copying.
func (m MappedTriples) Rows() [][3]int64 { return [][3]int64(m) }

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32
}

func fromRows[T integer](rows [][]T) (MappedTriples, error) {
	out := make(MappedTriples, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("row %d has %d columns, want 3: %w", i, len(row), ErrBadShape)
		}
		out[i] = Triple{int64(row[0]), int64(row[1]), int64(row[2])}
	}

	return out, nil
}

// AsMappedTriples converts an ID matrix of any supported integer element
// type into MappedTriples.
//
// Accepted: MappedTriples, [][3]int64, [][]int, [][]int32, [][]int64.
// Ragged rows or rows of the wrong width yield ErrBadShape; floating-point,
// complex or any other element type yields ErrBadDType.
func AsMappedTriples(v any) (MappedTriples, error) {
	switch x := v.(type) {
	case MappedTriples:
		return x, nil
	case [][3]int64:
		return MappedTriples(x), nil
	case [][]int:
		return fromRows(x)
	case [][]int32:
		return fromRows(x)
	case [][]int64:
		return fromRows(x)
	case [][]float32, [][]float64, [][]complex64, [][]complex128, [][3]float64, [][3]float32:
		return nil, fmt.Errorf("%T: %w", v, ErrBadDType)
	case nil:
		return MappedTriples{}, nil
	}

	return nil, fmt.Errorf("unsupported type %T: %w", v, ErrBadDType)
}

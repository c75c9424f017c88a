// SPDX-License-Identifier: MIT

package instances

import (
	"fmt"
	"slices"
)

// CSR is a binary sparse matrix in compressed-sparse-row form.
// Row i holds the sorted, distinct column indices indices[indptr[i]:indptr[i+1]].
type CSR struct {
	rows, cols int
	indptr     []int
	indices    []int64
}

// newCSR builds a CSR from coordinate pairs. Duplicate entries collapse.
// Complexity: O(nnz log nnz).
func newCSR(rowIdx []int, colIdx []int64, rows, cols int) *CSR {
	counts := make([]int, rows+1)
	for _, r := range rowIdx {
		counts[r+1]++
	}
	for i := 1; i <= rows; i++ {
		counts[i] += counts[i-1]
	}
	fill := slices.Clone(counts[:rows])
	raw := make([]int64, len(colIdx))
	for k, r := range rowIdx {
		raw[fill[r]] = colIdx[k]
		fill[r]++
	}

	m := &CSR{rows: rows, cols: cols, indptr: make([]int, rows+1), indices: make([]int64, 0, len(raw))}
	for i := 0; i < rows; i++ {
		row := raw[counts[i]:counts[i+1]]
		slices.Sort(row)
		m.indices = append(m.indices, slices.Compact(row)...)
		m.indptr[i+1] = len(m.indices)
	}

	return m
}

// Rows returns the number of rows.
func (m *CSR) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *CSR) Cols() int { return m.cols }

// NNZ returns the number of non-zero entries.
func (m *CSR) NNZ() int { return len(m.indices) }

// Row returns a copy of the non-zero column indices of row i.
func (m *CSR) Row(i int) []int64 {
	return slices.Clone(m.indices[m.indptr[i]:m.indptr[i+1]])
}

// DenseRow materialises row i as a multi-hot vector of length Cols.
func (m *CSR) DenseRow(i int) []float32 {
	out := make([]float32, m.cols)
	for _, c := range m.indices[m.indptr[i]:m.indptr[i+1]] {
		out[c] = 1
	}

	return out
}

// String summarises the shape.
func (m *CSR) String() string {
	return fmt.Sprintf("CSR(%dx%d, nnz=%d)", m.rows, m.cols, m.NNZ())
}

// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"math/cmplx"
	"strings"
)

// CDense is a row-major complex128 matrix. It backs the network admittance
// matrix, where each entry is a conductance + j·susceptance pair.
type CDense struct {
	r, c int
	data []complex128
}

var _ fmt.Stringer = (*CDense)(nil)

// NewCDense creates an r×c complex zero matrix.
func NewCDense(rows, cols int) (*CDense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, matrixErrorf(opNewCDense, ErrInvalidDimensions)
	}

	return &CDense{r: rows, c: cols, data: make([]complex128, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *CDense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *CDense) Cols() int { return m.c }

func (m *CDense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the entry at (row, col).
func (m *CDense) At(row, col int) (complex128, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, fmt.Errorf("CDense.%s(%d,%d): %w", ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
func (m *CDense) Set(row, col int, v complex128) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return fmt.Errorf("CDense.%s(%d,%d): %w", ctxSet, row, col, err)
	}
	if cmplx.IsNaN(v) || cmplx.IsInf(v) {
		return fmt.Errorf("CDense.%s(%d,%d): %w", ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates delta into (row, col).
func (m *CDense) AddAt(row, col int, delta complex128) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return fmt.Errorf("CDense.%s(%d,%d): %w", ctxAddAt, row, col, err)
	}
	m.data[off] += delta

	return nil
}

// Row returns the storage of row i; writes through the slice land in m.
func (m *CDense) Row(i int) ([]complex128, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("CDense.%s(%d): %w", ctxRow, i, ErrOutOfRange)
	}

	return m.data[i*m.c : (i+1)*m.c], nil
}

// Polar returns (|z|, arg z) of the entry at (row, col) without bounds errors.
// Callers iterate within Rows()×Cols(); out-of-range indices panic like a slice.
func (m *CDense) Polar(row, col int) (float64, float64) {
	return cmplx.Polar(m.data[row*m.c+col])
}

// Imag returns a real matrix holding the imaginary part of every entry.
func (m *CDense) Imag() *Dense {
	out := &Dense{r: m.r, c: m.c, data: make([]float64, len(m.data))}
	for k, z := range m.data {
		out.data[k] = imag(z)
	}

	return out
}

// String renders rows with %g formatted complex entries.
func (m *CDense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[i*m.c+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

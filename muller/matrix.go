// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package muller

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Matrix is a dense row-major matrix of float64 values.
// Element (i, j) lives at data[i*cols+j].
type Matrix struct {
	rows, cols int
	data       []float64
}

// maxElements keeps the byte size of a matrix within int.
const maxElements = math.MaxInt / 8

// validShape reports whether rows x cols is positive and addressable.
func validShape(rows, cols int) bool {
	return rows > 0 && cols > 0 && rows <= maxElements/cols
}

// NewMatrix returns a zero-filled rows x cols matrix.
func NewMatrix(rows, cols int) (*Matrix, error) {
	if !validShape(rows, cols) {
		return nil, opError(fmt.Sprintf("NewMatrix(%d,%d)", rows, cols), ErrInvalidShape)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}, nil
}

// NewMatrixFrom wraps data as a rows x cols matrix without copying.
// len(data) must equal rows*cols.
func NewMatrixFrom(rows, cols int, data []float64) (*Matrix, error) {
	if !validShape(rows, cols) || len(data) != rows*cols {
		return nil, opError(fmt.Sprintf("NewMatrixFrom(%d,%d,len=%d)", rows, cols, len(data)), ErrInvalidShape)
	}
	return &Matrix{rows: rows, cols: cols, data: data}, nil
}

// FromRows copies a slice of equal-length rows into a new matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, opError("FromRows", ErrInvalidShape)
	}
	cols := len(rows[0])
	m := &Matrix{rows: len(rows), cols: cols, data: make([]float64, 0, len(rows)*cols)}
	for i, r := range rows {
		if len(r) != cols {
			return nil, opError(fmt.Sprintf("FromRows: row %d has %d columns, want %d", i, len(r), cols), ErrInvalidShape)
		}
		m.data = append(m.data, r...)
	}
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := NewMatrix(n, n)
	if err != nil {
		return nil, err
	}
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// RandomMatrix returns a rows x cols matrix with values drawn uniformly from
// [-1, 1) using rng.
func RandomMatrix(rows, cols int, rng *rand.Rand) (*Matrix, error) {
	m, err := NewMatrix(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = 2*rng.Float64() - 1
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Data returns the row-major backing slice. It is not a copy.
func (m *Matrix) Data() []float64 { return m.data }

// At returns element (i, j).
func (m *Matrix) At(i, j int) (float64, error) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return 0, opError(fmt.Sprintf("At(%d,%d)", i, j), ErrBounds)
	}
	return m.data[i*m.cols+j], nil
}

// Set assigns v to element (i, j).
func (m *Matrix) Set(i, j int, v float64) error {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		return opError(fmt.Sprintf("Set(%d,%d)", i, j), ErrBounds)
	}
	m.data[i*m.cols+j] = v
	return nil
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Matrix{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether m and o have the same shape and bit-identical
// elements. Use Compare for tolerance-aware checks.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m *Matrix) String() string {
	var sb strings.Builder
	for i := range m.rows {
		sb.WriteByte('[')
		for j := range m.cols {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.cols+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

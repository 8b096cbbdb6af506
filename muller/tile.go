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

import "fmt"

// Tile is a read view of a rectangular region of a product matrix C.
//
// A Tile aliases the storage of the strategy that returned it: it stays valid
// until that strategy is closed, and a later Multiply overwrites the values it
// shows. Use Copy to detach the values.
type Tile struct {
	data   []float64 // C's storage starting at the tile's top-left element
	offset int
	width  int
	height int
	stride int
}

// checkTile validates an (offset, width, height) request against a
// rows x cols matrix. offset is the row-major index of the top-left element.
func checkTile(rows, cols, offset, width, height int) error {
	if width < 1 || height < 1 || offset < 0 || offset >= rows*cols {
		return ErrBounds
	}
	row, col := offset/cols, offset%cols
	if width > cols-col || height > rows-row {
		return ErrBounds
	}
	return nil
}

// TileOf returns the (offset, width, height) view of m.
func TileOf(m *Matrix, offset, width, height int) (Tile, error) {
	if err := checkTile(m.rows, m.cols, offset, width, height); err != nil {
		return Tile{}, opError(fmt.Sprintf("Tile(%d,%d,%d) of %dx%d", offset, width, height, m.rows, m.cols), err)
	}
	end := offset + (height-1)*m.cols + width
	return Tile{
		data:   m.data[offset:end:end],
		offset: offset,
		width:  width,
		height: height,
		stride: m.cols,
	}, nil
}

// Width returns the number of columns in the tile.
func (t Tile) Width() int { return t.width }

// Height returns the number of rows in the tile.
func (t Tile) Height() int { return t.height }

// Stride returns the distance between rows in the underlying storage,
// i.e. the column count of C.
func (t Tile) Stride() int { return t.stride }

// Offset returns the row-major index in C of the tile's top-left element.
func (t Tile) Offset() int { return t.offset }

// At returns element (r, c) relative to the tile's top-left corner.
func (t Tile) At(r, c int) (float64, error) {
	if r < 0 || r >= t.height || c < 0 || c >= t.width {
		return 0, opError(fmt.Sprintf("Tile.At(%d,%d)", r, c), ErrBounds)
	}
	return t.data[r*t.stride+c], nil
}

// Row returns row r of the tile as a slice aliasing C.
func (t Tile) Row(r int) ([]float64, error) {
	if r < 0 || r >= t.height {
		return nil, opError(fmt.Sprintf("Tile.Row(%d)", r), ErrBounds)
	}
	start := r * t.stride
	return t.data[start : start+t.width : start+t.width], nil
}

// Copy returns the tile's values as a new height x width row-major slice.
func (t Tile) Copy() []float64 {
	out := make([]float64, 0, t.width*t.height)
	for r := range t.height {
		start := r * t.stride
		out = append(out, t.data[start:start+t.width]...)
	}
	return out
}

// Matrix returns a detached copy of the tile as a Matrix.
func (t Tile) Matrix() *Matrix {
	return &Matrix{rows: t.height, cols: t.width, data: t.Copy()}
}

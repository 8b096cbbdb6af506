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

// Base holds what every strategy shares: the loaded operands, the product
// buffer C with its computed state, and the options. Strategies embed it and
// route Multiply through Run and C through Tile.
type Base struct {
	name  string
	opts  Options
	a, b  *Matrix
	c     *Matrix
	state State
}

// NewBase returns a Base for the strategy called name with operands a and b.
// Operands are not validated until Multiply; either may be nil and supplied
// later with Load. No storage for C is allocated here.
func NewBase(name string, a, b *Matrix, opts ...Option) Base {
	return Base{
		name:  name,
		opts:  ApplyOptions(opts...),
		a:     a,
		b:     b,
		state: StateUncomputed,
	}
}

// Load replaces the operands. C keeps its storage for reuse but is marked
// uncomputed.
func (b *Base) Load(a, bm *Matrix) {
	b.a, b.b = a, bm
	b.state = StateUncomputed
}

// Operands returns the loaded A and B.
func (b *Base) Operands() (a, bm *Matrix) { return b.a, b.b }

// State reports whether C currently holds A x B.
func (b *Base) State() State { return b.state }

// Options returns the resolved options.
func (b *Base) Options() Options { return b.opts }

// Tolerance returns the tolerance Test compares with.
func (b *Base) Tolerance() Tolerance { return b.opts.Tolerance }

// Run validates the operands, prepares a zeroed C of shape
// A.Rows() x B.Cols() and calls k. C's storage is reused when the shape is
// unchanged, so previously returned tiles observe the new product.
func (b *Base) Run(k Kernel) error {
	op := "Multiply(" + b.name + ")"
	if b.a == nil || b.b == nil {
		return opError(op+": operands not loaded", ErrUninitializedResult)
	}
	b.state = StateUncomputed
	if b.a.cols != b.b.rows {
		return opError(fmt.Sprintf("%s: A is %dx%d, B is %dx%d", op, b.a.rows, b.a.cols, b.b.rows, b.b.cols),
			ErrDimensionMismatch)
	}

	rows, cols := b.a.rows, b.b.cols
	if !validShape(rows, cols) {
		return opError(fmt.Sprintf("%s: C would be %dx%d", op, rows, cols), ErrInvalidShape)
	}
	if b.c == nil || b.c.rows != rows || b.c.cols != cols {
		b.c = &Matrix{rows: rows, cols: cols, data: make([]float64, rows*cols)}
	} else {
		clear(b.c.data)
	}
	k(b.a, b.b, b.c)
	b.state = StateComputed
	return nil
}

// Tile returns the (offset, width, height) view of C. If C is not computed,
// multiply is called first under Lazy, and ErrUninitializedResult is returned
// under Strict.
func (b *Base) Tile(multiply func() error, offset, width, height int) (Tile, error) {
	if b.state != StateComputed {
		if b.opts.Policy == Strict {
			return Tile{}, opError("C("+b.name+")", ErrUninitializedResult)
		}
		if err := multiply(); err != nil {
			return Tile{}, err
		}
	}
	t, err := TileOf(b.c, offset, width, height)
	if err != nil {
		return Tile{}, opError("C("+b.name+")", err)
	}
	return t, nil
}

// Close drops the references to the operands and C. It is safe to call more
// than once; after Close, Multiply fails with ErrUninitializedResult until
// Load is called again.
func (b *Base) Close() error {
	b.a, b.b, b.c = nil, nil, nil
	b.state = StateUncomputed
	return nil
}

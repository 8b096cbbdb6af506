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

// Muller is one strategy of the matrix-multiplication family. It computes
// C = A x B for the operands it was loaded with.
//
// Implementations embed Base and supply Name, Multiply, C and Test; Load,
// Operands and Close normally come from Base.
type Muller interface {
	// Name identifies the strategy in reports, e.g. "fma" or "naive".
	Name() string

	// Load replaces the operands and marks C as not computed.
	Load(a, b *Matrix)

	// Operands returns the loaded A and B, nil if none.
	Operands() (a, b *Matrix)

	// Multiply computes C = A x B, overwriting any previous product.
	Multiply() error

	// C returns a view of the width x height region of C whose top-left
	// element has row-major index offset.
	C(offset, width, height int) (Tile, error)

	// Test multiplies and compares C against the reference strategy.
	Test() (Report, error)

	// Close releases working buffers. Caller-owned operands are untouched.
	Close() error
}

// Kernel writes a x b into c. Shapes are validated and c is zeroed before
// a Kernel is called.
type Kernel func(a, b, c *Matrix)

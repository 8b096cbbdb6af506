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
	"errors"
	"fmt"
)

// Sentinel errors. They are returned wrapped with the failing operation, so
// match them with errors.Is.
var (
	// ErrDimensionMismatch is returned when operand shapes are incompatible:
	// A.Cols() != B.Rows() for a product, or differing shapes in a comparison.
	ErrDimensionMismatch = errors.New("muller: dimension mismatch")

	// ErrBounds is returned when a tile or element index falls outside C.
	ErrBounds = errors.New("muller: index out of bounds")

	// ErrUninitializedResult is returned when C is read before any successful
	// Multiply under the Strict policy, or when no operands are loaded.
	ErrUninitializedResult = errors.New("muller: result not computed")

	// ErrInvalidShape is returned for non-positive dimensions or backing data
	// whose length does not match the declared shape.
	ErrInvalidShape = errors.New("muller: invalid shape")
)

func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

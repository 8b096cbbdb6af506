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

package matmul

import "github.com/ajroetker/go-muller/muller"

// NameNaive identifies the Naive strategy.
const NameNaive = "naive"

// Naive computes C = A x B with the textbook triple loop, rounding the
// product and the sum separately: sum += float64(a*b). The explicit
// conversion stops the compiler from fusing the two into an FMA.
// It is the reference the other strategies are tested against.
type Naive struct {
	muller.Base
}

// NewNaive returns a Naive strategy over a and b.
func NewNaive(a, b *muller.Matrix, opts ...muller.Option) *Naive {
	return &Naive{Base: muller.NewBase(NameNaive, a, b, opts...)}
}

// Name returns "naive".
func (s *Naive) Name() string { return NameNaive }

// Multiply computes C.
func (s *Naive) Multiply() error { return s.Run(naiveKernel) }

// C returns a view of C.
func (s *Naive) C(offset, width, height int) (muller.Tile, error) {
	return s.Tile(s.Multiply, offset, width, height)
}

// Test runs the shared protocol against a second Naive instance, which
// checks the kernel is deterministic.
func (s *Naive) Test() (muller.Report, error) {
	ref := NewNaive(nil, nil)
	defer ref.Close()
	return muller.Verify(s, ref, s.Tolerance())
}

func naiveKernel(a, b, c *muller.Matrix) {
	m, k, n := a.Rows(), a.Cols(), b.Cols()
	ad, bd, cd := a.Data(), b.Data(), c.Data()
	for i := range m {
		for j := range n {
			var sum float64
			for p := range k {
				sum += float64(ad[i*k+p] * bd[p*n+j])
			}
			cd[i*n+j] = sum
		}
	}
}

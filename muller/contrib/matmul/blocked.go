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

// NameBlocked identifies the Blocked strategy.
const NameBlocked = "blocked"

// Block size tuned for L1 cache (32KB typical).
// 3 blocks of 48x48 float64 = 3 * 48 * 48 * 8 = 54KB, which stays in a
// 48KB+ L1d and splits cleanly into L2 otherwise.
const (
	BlockSize = 48
)

// Blocked computes C = A x B tiled over (i, j, p) blocks for cache locality,
// with separate multiply and add roundings like Naive. Blocks along p are
// visited in increasing order, so each element is reduced in the same order
// as Naive.
type Blocked struct {
	muller.Base
}

// NewBlocked returns a Blocked strategy over a and b.
func NewBlocked(a, b *muller.Matrix, opts ...muller.Option) *Blocked {
	return &Blocked{Base: muller.NewBase(NameBlocked, a, b, opts...)}
}

// Name returns "blocked".
func (s *Blocked) Name() string { return NameBlocked }

// Multiply computes C.
func (s *Blocked) Multiply() error { return s.Run(blockedKernel) }

// C returns a view of C.
func (s *Blocked) C(offset, width, height int) (muller.Tile, error) {
	return s.Tile(s.Multiply, offset, width, height)
}

// Test compares against Naive.
func (s *Blocked) Test() (muller.Report, error) {
	ref := NewNaive(nil, nil)
	defer ref.Close()
	return muller.Verify(s, ref, s.Tolerance())
}

// blockedKernel accumulates into c, which Base zeroes beforehand.
func blockedKernel(a, b, c *muller.Matrix) {
	m, k, n := a.Rows(), a.Cols(), b.Cols()
	ad, bd, cd := a.Data(), b.Data(), c.Data()

	for i0 := 0; i0 < m; i0 += BlockSize {
		iEnd := min(i0+BlockSize, m)
		for j0 := 0; j0 < n; j0 += BlockSize {
			jEnd := min(j0+BlockSize, n)
			for p0 := 0; p0 < k; p0 += BlockSize {
				pEnd := min(p0+BlockSize, k)

				for i := i0; i < iEnd; i++ {
					cRow := cd[i*n+j0 : i*n+jEnd]
					for p := p0; p < pEnd; p++ {
						aip := ad[i*k+p]
						bRow := bd[p*n+j0 : p*n+jEnd]
						for j, bpj := range bRow {
							cRow[j] += float64(aip * bpj)
						}
					}
				}
			}
		}
	}
}

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

import (
	"math"

	"github.com/ajroetker/go-muller/muller"
)

// NameFMA identifies the FMA strategy.
const NameFMA = "fma"

// FMA computes C = A x B with fused multiply-add accumulation:
//
//	C[i][j] = fma(A[i][0], B[0][j], fma(A[i][1], B[1][j], ... fma(A[i][k-1], B[k-1][j], 0)))
//
// Every step is math.FMA, a single rounding, so C can differ from Naive in
// the last bits. The reduction runs from p = k-1 down to 0, the order in which
// the nested expression evaluates, and never changes.
type FMA struct {
	muller.Base

	// bt is B transposed so each output column reads k contiguous values.
	bt []float64
}

// NewFMA returns an FMA strategy over a and b. Shapes are checked by
// Multiply; either operand may be nil and supplied later with Load.
func NewFMA(a, b *muller.Matrix, opts ...muller.Option) *FMA {
	return &FMA{Base: muller.NewBase(NameFMA, a, b, opts...)}
}

// Name returns "fma".
func (f *FMA) Name() string { return NameFMA }

// Multiply computes C. It fails with muller.ErrDimensionMismatch when
// A.Cols() != B.Rows().
func (f *FMA) Multiply() error {
	return f.Run(f.kernel)
}

// C returns a view of C, computing it first if needed under the Lazy policy.
func (f *FMA) C(offset, width, height int) (muller.Tile, error) {
	return f.Tile(f.Multiply, offset, width, height)
}

// Test compares the FMA product against Naive within the configured
// tolerance.
func (f *FMA) Test() (muller.Report, error) {
	ref := NewNaive(nil, nil)
	defer ref.Close()
	return muller.Verify(f, ref, f.Tolerance())
}

// Close releases the transposed copy of B.
func (f *FMA) Close() error {
	f.bt = nil
	return f.Base.Close()
}

func (f *FMA) kernel(a, b, c *muller.Matrix) {
	f.bt = transposeInto(f.bt, b)
	fmaRows(a, f.bt, c, 0, a.Rows())
}

// fmaRows computes rows [start, end) of c = a x b given bt = Bᵀ.
func fmaRows(a *muller.Matrix, bt []float64, c *muller.Matrix, start, end int) {
	k, n := a.Cols(), c.Cols()
	ad, cd := a.Data(), c.Data()
	for i := start; i < end; i++ {
		aRow := ad[i*k : (i+1)*k]
		cRow := cd[i*n : (i+1)*n]
		for j := range cRow {
			bCol := bt[j*k : (j+1)*k]
			var acc float64
			for p := k - 1; p >= 0; p-- {
				acc = math.FMA(aRow[p], bCol[p], acc)
			}
			cRow[j] = acc
		}
	}
}

// transposeInto writes Bᵀ (cols x rows, row-major) into dst, growing it if
// needed, and returns it.
func transposeInto(dst []float64, b *muller.Matrix) []float64 {
	k, n := b.Rows(), b.Cols()
	if cap(dst) < k*n {
		dst = make([]float64, k*n)
	}
	dst = dst[:k*n]
	bd := b.Data()
	for p := range k {
		row := bd[p*n : (p+1)*n]
		for j, v := range row {
			dst[j*k+p] = v
		}
	}
	return dst
}

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
	"runtime"

	"github.com/ajroetker/go-muller/muller"
)

// Size-based dispatch thresholds.
const (
	// Below this total ops count (M*N*K), a single goroutine is faster than
	// waking the pool.
	SmallMatrixThreshold = 64 * 64 * 64 // 262144 ops
)

// Choose returns the strategy name NewAuto uses for an m x k by k x n product.
//
//   - Small (<64^3) or GOMAXPROCS=1: FMA
//   - Otherwise: ParallelFMA, unless MULLER_NO_PARALLEL is set
//
// Both produce bit-identical C, so the choice only affects speed.
func Choose(m, n, k int) string {
	if m*n*k < SmallMatrixThreshold || runtime.GOMAXPROCS(0) == 1 || muller.NoParallelEnv() {
		return NameFMA
	}
	return NameParallelFMA
}

// NewAuto returns an FMA-family strategy suited to the operand sizes.
// Without both operands it returns FMA.
func NewAuto(a, b *muller.Matrix, opts ...muller.Option) muller.Muller {
	if a == nil || b == nil {
		return NewFMA(a, b, opts...)
	}
	return registry[Choose(a.Rows(), b.Cols(), a.Cols())](a, b, opts...)
}

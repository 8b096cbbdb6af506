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
	"github.com/ajroetker/go-muller/muller"
	"github.com/ajroetker/go-muller/muller/contrib/workerpool"
)

// NameParallelFMA identifies the ParallelFMA strategy.
const NameParallelFMA = "fma-parallel"

// RowsPerStrip is how many output rows a worker takes at a time.
// Tuned for good load balancing while keeping strips large enough for cache efficiency.
const RowsPerStrip = 64

// ParallelFMA runs the FMA kernel over horizontal strips of C on a worker
// pool. Output elements are independent and each keeps the FMA reduction
// order, so C is bit-identical to FMA's.
type ParallelFMA struct {
	muller.Base

	pool     *workerpool.Pool
	ownsPool bool
	bt       []float64
}

// NewParallelFMA returns a ParallelFMA strategy. Its pool, sized by
// muller.WithWorkers, is started on the first Multiply and stopped by Close.
func NewParallelFMA(a, b *muller.Matrix, opts ...muller.Option) *ParallelFMA {
	return &ParallelFMA{
		Base:     muller.NewBase(NameParallelFMA, a, b, opts...),
		ownsPool: true,
	}
}

// NewParallelFMAWithPool returns a ParallelFMA strategy running on pool,
// which the caller keeps ownership of.
func NewParallelFMAWithPool(pool *workerpool.Pool, a, b *muller.Matrix, opts ...muller.Option) *ParallelFMA {
	return &ParallelFMA{
		Base: muller.NewBase(NameParallelFMA, a, b, opts...),
		pool: pool,
	}
}

// Name returns "fma-parallel".
func (s *ParallelFMA) Name() string { return NameParallelFMA }

// Multiply computes C.
func (s *ParallelFMA) Multiply() error { return s.Run(s.kernel) }

// C returns a view of C.
func (s *ParallelFMA) C(offset, width, height int) (muller.Tile, error) {
	return s.Tile(s.Multiply, offset, width, height)
}

// Test compares against Naive.
func (s *ParallelFMA) Test() (muller.Report, error) {
	ref := NewNaive(nil, nil)
	defer ref.Close()
	return muller.Verify(s, ref, s.Tolerance())
}

// Close stops the pool if this strategy started it and releases the
// transposed copy of B.
func (s *ParallelFMA) Close() error {
	if s.ownsPool && s.pool != nil {
		s.pool.Close()
	}
	s.pool = nil
	s.bt = nil
	return s.Base.Close()
}

func (s *ParallelFMA) kernel(a, b, c *muller.Matrix) {
	if s.pool == nil {
		s.pool = workerpool.New(s.Options().Workers)
		s.ownsPool = true
	}
	s.bt = transposeInto(s.bt, b)
	bt := s.bt

	rows := func(start, end int) { fmaRows(a, bt, c, start, end) }
	m := a.Rows()
	if m < RowsPerStrip*s.pool.NumWorkers() {
		// Too few rows for full strips: one contiguous range per worker.
		s.pool.ParallelFor(m, rows)
		return
	}
	s.pool.ParallelForStrips(m, RowsPerStrip, rows)
}

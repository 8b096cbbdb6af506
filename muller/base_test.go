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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productStrategy is a minimal Muller used to exercise Base. offset is added
// to every element so tests can build a deliberately wrong strategy.
type productStrategy struct {
	Base
	runs   int
	offset float64
}

func newProduct(a, b *Matrix, opts ...Option) *productStrategy {
	return &productStrategy{Base: NewBase("product", a, b, opts...)}
}

func (s *productStrategy) Name() string { return "product" }

func (s *productStrategy) Multiply() error {
	return s.Run(func(a, b, c *Matrix) {
		s.runs++
		for i := range a.Rows() {
			for j := range b.Cols() {
				for p := range a.Cols() {
					c.data[i*c.cols+j] += a.data[i*a.cols+p] * b.data[p*b.cols+j]
				}
				c.data[i*c.cols+j] += s.offset
			}
		}
	})
}

func (s *productStrategy) C(offset, width, height int) (Tile, error) {
	return s.Tile(s.Multiply, offset, width, height)
}

func (s *productStrategy) Test() (Report, error) {
	return Verify(s, newProduct(nil, nil), s.Tolerance())
}

var _ Muller = (*productStrategy)(nil)

func operands(t *testing.T) (*Matrix, *Matrix) {
	t.Helper()
	a, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{5, 6}, {7, 8}})
	require.NoError(t, err)
	return a, b
}

func TestLazyReadComputesOnce(t *testing.T) {
	a, b := operands(t)
	s := newProduct(a, b)
	defer s.Close()

	require.Equal(t, StateUncomputed, s.State())
	tile, err := s.C(0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{19, 22, 43, 50}, tile.Copy())
	assert.Equal(t, StateComputed, s.State())

	_, err = s.C(3, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, s.runs, "a computed C must not be recomputed by reads")
}

func TestStrictReadBeforeMultiply(t *testing.T) {
	a, b := operands(t)
	s := newProduct(a, b, WithPolicy(Strict))
	defer s.Close()

	_, err := s.C(0, 2, 2)
	require.ErrorIs(t, err, ErrUninitializedResult)
	assert.Zero(t, s.runs)

	require.NoError(t, s.Multiply())
	_, err = s.C(0, 2, 2)
	require.NoError(t, err)
}

func TestMultiplyWithoutOperands(t *testing.T) {
	s := newProduct(nil, nil)
	require.ErrorIs(t, s.Multiply(), ErrUninitializedResult)

	_, err := s.C(0, 1, 1)
	require.ErrorIs(t, err, ErrUninitializedResult, "lazy read cannot compute without operands")
}

func TestMultiplyDimensionMismatch(t *testing.T) {
	a, err := NewMatrix(2, 3)
	require.NoError(t, err)
	b, err := NewMatrix(2, 2)
	require.NoError(t, err)

	s := newProduct(a, b)
	err = s.Multiply()
	require.ErrorIs(t, err, ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "A is 2x3, B is 2x2")
	assert.Equal(t, StateUncomputed, s.State())
}

func TestMultiplyRejectsUnaddressableProduct(t *testing.T) {
	a := &Matrix{rows: 1 << 40, cols: 1}
	b := &Matrix{rows: 1, cols: 1 << 40}
	s := newProduct(a, b)
	require.ErrorIs(t, s.Multiply(), ErrInvalidShape)
	assert.Zero(t, s.runs)
	assert.Equal(t, StateUncomputed, s.State())
}

func TestLoadResetsStateAndReusesC(t *testing.T) {
	a, b := operands(t)
	s := newProduct(a, b)
	defer s.Close()

	view, err := s.C(0, 2, 2)
	require.NoError(t, err)

	id, err := Identity(2)
	require.NoError(t, err)
	s.Load(id, b)
	assert.Equal(t, StateUncomputed, s.State())

	require.NoError(t, s.Multiply())
	assert.Equal(t, []float64{5, 6, 7, 8}, view.Copy(), "same-shape product overwrites C in place")

	gotA, gotB := s.Operands()
	assert.Same(t, id, gotA)
	assert.Same(t, b, gotB)
}

func TestRepeatedMultiplyDoesNotAccumulate(t *testing.T) {
	a, b := operands(t)
	s := newProduct(a, b)
	defer s.Close()

	require.NoError(t, s.Multiply())
	first, err := s.C(0, 2, 2)
	require.NoError(t, err)
	snapshot := first.Copy()

	require.NoError(t, s.Multiply())
	second, err := s.C(0, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, snapshot, second.Copy())
}

func TestCloseDropsOperands(t *testing.T) {
	a, b := operands(t)
	s := newProduct(a, b)
	require.NoError(t, s.Multiply())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, StateUncomputed, s.State())
	require.ErrorIs(t, s.Multiply(), ErrUninitializedResult)

	v, err := a.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v, "Close must not touch caller-owned operands")
}

func TestVerify(t *testing.T) {
	a, b := operands(t)

	good := newProduct(a, b)
	r, err := good.Test()
	require.NoError(t, err)
	assert.True(t, r.Passed, r.String())
	assert.Equal(t, "product", r.Name)
	assert.Equal(t, 2, r.Rows)
	assert.Equal(t, 2, r.Cols)

	bad := newProduct(a, b)
	bad.offset = 1e-3
	r, err = bad.Test()
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.Equal(t, 4, r.Mismatches)
	assert.Equal(t, 0, r.FirstRow)
}

func TestVerifyScalesWithTerms(t *testing.T) {
	// C is exactly 0 but each term is 1e12, so differences are judged
	// against 1e-12 * k * 2e12 = 4.
	a, err := FromRows([][]float64{{1e6, -1e6}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{1e6}, {1e6}})
	require.NoError(t, err)

	within := newProduct(a, b)
	within.offset = 1e-3
	r, err := within.Test()
	require.NoError(t, err)
	assert.True(t, r.Passed, r.String())
	assert.Equal(t, 1e-3, r.MaxAbsErr)

	beyond := newProduct(a, b)
	beyond.offset = 10
	r, err = beyond.Test()
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.Equal(t, 1, r.Mismatches)
}

func TestOptions(t *testing.T) {
	o := ApplyOptions()
	assert.Equal(t, Lazy, o.Policy)
	assert.Equal(t, DefaultTolerance(), o.Tolerance)
	assert.Zero(t, o.Workers)

	o = ApplyOptions(WithPolicy(Strict), WithTolerance(ExactTolerance()), WithWorkers(3))
	assert.Equal(t, Strict, o.Policy)
	assert.Equal(t, ExactTolerance(), o.Tolerance)
	assert.Equal(t, 3, o.Workers)
}

func TestStateAndPolicyStrings(t *testing.T) {
	assert.Equal(t, "Uncomputed", StateUncomputed.String())
	assert.Equal(t, "Computed", StateComputed.String())
	assert.Equal(t, "State(7)", State(7).String())
	assert.Equal(t, "Lazy", Lazy.String())
	assert.Equal(t, "Strict", Strict.String())
}

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
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearEqual(t *testing.T) {
	nextUp := func(x float64, steps int) float64 {
		for range steps {
			x = math.Nextafter(x, math.Inf(1))
		}
		return x
	}

	tests := []struct {
		name     string
		a, b     float64
		tol      Tolerance
		expected bool
	}{
		{"Exact_Equal", 1, 1, DefaultTolerance(), true},
		{"Signed_Zero", 0, math.Copysign(0, -1), ExactTolerance(), true},
		{"Within_Abs", 1e-12, 2e-12, DefaultTolerance(), true},
		{"Outside_Abs", 1e-6, 2e-6, DefaultTolerance(), false},
		{"Within_Rel", 1e6, 1e6 + 1e-7, DefaultTolerance(), true},
		{"Within_ULP", 1, nextUp(1, 4), Tolerance{ULP: 4}, true},
		{"Outside_ULP", 1, nextUp(1, 5), Tolerance{ULP: 4}, false},
		{"Exact_Rejects_Last_Bit", 1, nextUp(1, 1), ExactTolerance(), false},
		{"Both_NaN", math.NaN(), math.NaN(), DefaultTolerance(), true},
		{"NaN_Not_Equal", math.NaN(), math.NaN(), Tolerance{}, false},
		{"NaN_Vs_Number", math.NaN(), 1, DefaultTolerance(), false},
		{"Both_PosInf", math.Inf(1), math.Inf(1), DefaultTolerance(), true},
		{"Mixed_Inf", math.Inf(1), math.Inf(-1), DefaultTolerance(), false},
		{"Inf_Vs_Max", math.Inf(1), math.MaxFloat64, RelaxedTolerance(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NearEqual(tt.a, tt.b, tt.tol)
			if result != tt.expected {
				t.Errorf("NearEqual(%v, %v) = %v, want %v", tt.a, tt.b, result, tt.expected)
			}
		})
	}
}

func TestULPDiff(t *testing.T) {
	negZero := math.Copysign(0, -1)
	smallest := math.SmallestNonzeroFloat64

	assert.Equal(t, uint64(0), ULPDiff(1, 1))
	assert.Equal(t, uint64(1), ULPDiff(1, math.Nextafter(1, 2)))
	assert.Equal(t, uint64(1), ULPDiff(math.Nextafter(1, 2), 1))
	assert.Equal(t, uint64(0), ULPDiff(0, negZero))
	assert.Equal(t, uint64(2), ULPDiff(-smallest, smallest), "measured through zero")
	assert.Equal(t, uint64(math.MaxUint64), ULPDiff(math.NaN(), 1))
	assert.Greater(t, ULPDiff(math.Inf(-1), math.Inf(1)), uint64(1)<<63)
}

func TestCompare(t *testing.T) {
	want, err := FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)

	got := want.Clone()
	r, err := Compare(want, got, ExactTolerance())
	require.NoError(t, err)
	assert.True(t, r.Passed)
	assert.Equal(t, -1, r.FirstRow)
	assert.Zero(t, r.MaxAbsErr)

	require.NoError(t, got.Set(1, 0, 3.5))
	require.NoError(t, got.Set(1, 1, 4.25))
	r, err = Compare(want, got, DefaultTolerance())
	require.NoError(t, err)
	assert.False(t, r.Passed)
	assert.Equal(t, 2, r.Mismatches)
	assert.Equal(t, 1, r.FirstRow)
	assert.Equal(t, 0, r.FirstCol)
	assert.Equal(t, 0.5, r.MaxAbsErr)
	assert.InDelta(t, 0.5/3, r.MaxRelErr, 1e-15)
	assert.True(t, strings.HasPrefix(r.String(), "FAIL"), r.String())

	wide, err := NewMatrix(2, 3)
	require.NoError(t, err)
	_, err = Compare(want, wide, DefaultTolerance())
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestCompareTracksErrorsThatPass(t *testing.T) {
	want, err := FromRows([][]float64{{1}})
	require.NoError(t, err)
	got, err := FromRows([][]float64{{math.Nextafter(1, 2)}})
	require.NoError(t, err)

	r, err := Compare(want, got, DefaultTolerance())
	require.NoError(t, err)
	assert.True(t, r.Passed)
	assert.Equal(t, uint64(1), r.MaxULP)
	assert.True(t, strings.HasPrefix(r.String(), "PASS"), r.String())
}

func TestDotErrorBounds(t *testing.T) {
	a, err := FromRows([][]float64{{1, -2}, {0, 0}})
	require.NoError(t, err)
	b, err := FromRows([][]float64{{3, -1}, {4, 0.5}})
	require.NoError(t, err)

	got, err := DotErrorBounds(a, b, 0.5)
	require.NoError(t, err)
	// rel * k * sum|a*b|: row 0 is 0.5*2*(3+8) and 0.5*2*(1+1).
	assert.Equal(t, []float64{11, 2, 0, 0}, got)

	got, err = DotErrorBounds(a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, got)

	wide, err := NewMatrix(3, 1)
	require.NoError(t, err)
	_, err = DotErrorBounds(a, wide, 0.5)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

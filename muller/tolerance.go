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
	"fmt"
	"math"
)

// Tolerance bounds the difference accepted between two float64 values.
// A pair is equal if it passes any one of the checks.
type Tolerance struct {
	// Abs is the absolute difference accepted, for values near zero.
	Abs float64

	// Rel is the difference accepted as a fraction of the larger magnitude.
	// Verify also scales it by k·Σ|A[i][p]·B[p][j]| for each element of C.
	Rel float64

	// ULP is the distance in units in the last place accepted. 0 disables it.
	ULP uint64

	// NaNEqual makes two NaNs compare equal.
	NaNEqual bool
}

// DefaultTolerance accepts the last-bit differences between FMA and naive
// accumulation on well-scaled inputs.
func DefaultTolerance() Tolerance {
	return Tolerance{
		Abs:      1e-9,
		Rel:      1e-12,
		ULP:      4,
		NaNEqual: true,
	}
}

// RelaxedTolerance is for strategies that reorder the reduction, e.g. blocked.
func RelaxedTolerance() Tolerance {
	return Tolerance{
		Abs:      1e-6,
		Rel:      1e-9,
		ULP:      64,
		NaNEqual: true,
	}
}

// ExactTolerance accepts only bit-identical values (NaNs included).
func ExactTolerance() Tolerance {
	return Tolerance{NaNEqual: true}
}

// NearEqual reports whether a and b are equal within tol.
func NearEqual(a, b float64, tol Tolerance) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return tol.NaNEqual && math.IsNaN(a) && math.IsNaN(b)
	}
	if a == b {
		return true
	}
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return false
	}
	diff := math.Abs(a - b)
	if diff <= tol.Abs {
		return true
	}
	if diff <= tol.Rel*math.Max(math.Abs(a), math.Abs(b)) {
		return true
	}
	return tol.ULP > 0 && ULPDiff(a, b) <= tol.ULP
}

// ULPDiff returns the number of representable float64 values between a and
// b. +0 and -0 are 0 apart, and values of opposite sign are measured through
// zero. NaN inputs give math.MaxUint64.
func ULPDiff(a, b float64) uint64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.MaxUint64
	}
	oa, ob := orderedBits(a), orderedBits(b)
	if oa > ob {
		return uint64(oa) - uint64(ob)
	}
	return uint64(ob) - uint64(oa)
}

// orderedBits maps a float64 to an int64 that sorts like the float.
func orderedBits(f float64) int64 {
	bits := int64(math.Float64bits(f))
	if bits < 0 {
		return -(bits & math.MaxInt64)
	}
	return bits
}

// Report is the outcome of comparing a strategy's product with a reference.
type Report struct {
	Name      string // strategy under test
	Reference string // strategy that produced the expected values
	Rows      int
	Cols      int

	Passed     bool
	Mismatches int

	// Largest errors over all elements, whether or not they passed.
	MaxAbsErr float64
	MaxRelErr float64
	MaxULP    uint64

	// Position of the first mismatch, -1 when there is none.
	FirstRow int
	FirstCol int
}

// String formats the report on one line for PASS, several for FAIL.
func (r Report) String() string {
	if r.Passed {
		return fmt.Sprintf("PASS %s vs %s (%dx%d): max abs %.3g, max rel %.3g, max ulp %d",
			r.Name, r.Reference, r.Rows, r.Cols, r.MaxAbsErr, r.MaxRelErr, r.MaxULP)
	}
	return fmt.Sprintf("FAIL %s vs %s (%dx%d): %d/%d values differ\n"+
		"  max abs error: %e\n"+
		"  max rel error: %e\n"+
		"  max ulp error: %d\n"+
		"  first mismatch: (%d,%d)",
		r.Name, r.Reference, r.Rows, r.Cols, r.Mismatches, r.Rows*r.Cols,
		r.MaxAbsErr, r.MaxRelErr, r.MaxULP, r.FirstRow, r.FirstCol)
}

// Compare checks actual against expected element by element.
func Compare(expected, actual *Matrix, tol Tolerance) (Report, error) {
	if expected.rows != actual.rows || expected.cols != actual.cols {
		return Report{}, opError(fmt.Sprintf("Compare: %dx%d vs %dx%d",
			expected.rows, expected.cols, actual.rows, actual.cols), ErrDimensionMismatch)
	}
	return compare(expected.data, actual.data, nil, expected.rows, expected.cols, tol), nil
}

// compare checks actual against expected. A non-nil bound gives a further
// absolute difference accepted per element.
func compare(expected, actual, bound []float64, rows, cols int, tol Tolerance) Report {
	r := Report{Rows: rows, Cols: cols, FirstRow: -1, FirstCol: -1}
	for i, want := range expected {
		got := actual[i]
		if math.IsNaN(want) || math.IsNaN(got) {
			if !NearEqual(want, got, tol) {
				r.noteMismatch(i, cols)
			}
			continue
		}
		if want != got {
			absErr := math.Abs(want - got)
			r.MaxAbsErr = max(r.MaxAbsErr, absErr)
			if want != 0 {
				r.MaxRelErr = max(r.MaxRelErr, absErr/math.Abs(want))
			}
			r.MaxULP = max(r.MaxULP, ULPDiff(want, got))
		}
		if NearEqual(want, got, tol) {
			continue
		}
		if bound != nil && !math.IsInf(want, 0) && !math.IsInf(got, 0) && math.Abs(want-got) <= bound[i] {
			continue
		}
		r.noteMismatch(i, cols)
	}
	r.Passed = r.Mismatches == 0
	return r
}

func (r *Report) noteMismatch(i, cols int) {
	if r.Mismatches == 0 {
		r.FirstRow, r.FirstCol = i/cols, i%cols
	}
	r.Mismatches++
}

// DotErrorBounds returns, for each element of C = A x B, the difference two
// accumulation orders may show: rel·k·Σp |A[i][p]·B[p][j]|. Results that
// cancel to near zero are judged against the magnitude of their terms, not
// their own.
func DotErrorBounds(a, b *Matrix, rel float64) ([]float64, error) {
	if a.cols != b.rows {
		return nil, opError(fmt.Sprintf("DotErrorBounds: A is %dx%d, B is %dx%d", a.rows, a.cols, b.rows, b.cols),
			ErrDimensionMismatch)
	}
	m, k, n := a.rows, a.cols, b.cols
	bound := make([]float64, m*n)
	if rel == 0 {
		return bound, nil
	}
	scale := rel * float64(k)
	for i := range m {
		aRow := a.data[i*k : (i+1)*k]
		out := bound[i*n : (i+1)*n]
		for p, av := range aRow {
			av = math.Abs(av)
			for j, bv := range b.data[p*n : (p+1)*n] {
				out[j] += av * math.Abs(bv)
			}
		}
		for j := range out {
			out[j] *= scale
		}
	}
	return bound, nil
}

// Verify is the test protocol shared by all strategies: it multiplies with m,
// multiplies the same operands with ref, and compares the two products with
// tol. ref is loaded with m's operands. An element that fails tol still
// passes when it is within DotErrorBounds(A, B, tol.Rel) of the reference.
func Verify(m, ref Muller, tol Tolerance) (Report, error) {
	if err := m.Multiply(); err != nil {
		return Report{}, err
	}
	a, b := m.Operands()
	rows, cols := a.Rows(), b.Cols()
	got, err := m.C(0, cols, rows)
	if err != nil {
		return Report{}, err
	}

	ref.Load(a, b)
	if err := ref.Multiply(); err != nil {
		return Report{}, err
	}
	want, err := ref.C(0, cols, rows)
	if err != nil {
		return Report{}, err
	}

	bound, err := DotErrorBounds(a, b, tol.Rel)
	if err != nil {
		return Report{}, err
	}
	r := compare(want.Copy(), got.Copy(), bound, rows, cols, tol)
	r.Name, r.Reference = m.Name(), ref.Name()
	return r, nil
}

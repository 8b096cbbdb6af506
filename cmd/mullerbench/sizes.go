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

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// problemSize is one C(m x n) = A(m x k) x B(k x n) benchmark.
type problemSize struct {
	M, N, K int
}

func (s problemSize) String() string {
	return fmt.Sprintf("%dx%dx%d", s.M, s.N, s.K)
}

// flops counts a multiply and an add per inner-product step.
func (s problemSize) flops() float64 {
	return 2 * float64(s.M) * float64(s.N) * float64(s.K)
}

// parseSize accepts "n" (square) or "MxNxK".
func parseSize(arg string) (problemSize, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(arg)), "x")
	if len(parts) != 1 && len(parts) != 3 {
		return problemSize{}, fmt.Errorf("invalid size %q: want N or MxNxK", arg)
	}
	dims := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v <= 0 {
			return problemSize{}, fmt.Errorf("invalid size %q: dimensions must be positive integers", arg)
		}
		dims[i] = v
	}
	if len(dims) == 1 {
		return problemSize{dims[0], dims[0], dims[0]}, nil
	}
	return problemSize{dims[0], dims[1], dims[2]}, nil
}

func parseSizes(args []string) ([]problemSize, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no sizes given")
	}
	sizes := make([]problemSize, 0, len(args))
	for _, arg := range args {
		s, err := parseSize(arg)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, s)
	}
	return lo.Uniq(sizes), nil
}

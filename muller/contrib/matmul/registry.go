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
	"errors"
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/ajroetker/go-muller/muller"
)

// ErrUnknownStrategy is returned by New for a name not in Strategies.
var ErrUnknownStrategy = errors.New("matmul: unknown strategy")

// Constructor builds a strategy over a and b.
type Constructor func(a, b *muller.Matrix, opts ...muller.Option) muller.Muller

var registry = map[string]Constructor{
	NameNaive: func(a, b *muller.Matrix, opts ...muller.Option) muller.Muller {
		return NewNaive(a, b, opts...)
	},
	NameBlocked: func(a, b *muller.Matrix, opts ...muller.Option) muller.Muller {
		return NewBlocked(a, b, opts...)
	},
	NameFMA: func(a, b *muller.Matrix, opts ...muller.Option) muller.Muller {
		return NewFMA(a, b, opts...)
	},
	NameParallelFMA: func(a, b *muller.Matrix, opts ...muller.Option) muller.Muller {
		return NewParallelFMA(a, b, opts...)
	},
}

// Strategies returns the registered strategy names, sorted.
func Strategies() []string {
	names := lo.Keys(registry)
	slices.Sort(names)
	return names
}

// New builds the strategy called name.
func New(name string, a, b *muller.Matrix, opts ...muller.Option) (muller.Muller, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownStrategy, name, Strategies())
	}
	return ctor(a, b, opts...), nil
}

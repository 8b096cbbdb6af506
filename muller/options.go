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

//go:generate go tool stringer -type=State,Policy -trimprefix=State -output=state_string.go

// State tags whether C holds the product of the loaded operands.
type State int

const (
	// StateUncomputed means C is absent or stale.
	StateUncomputed State = iota

	// StateComputed means C holds A x B for the loaded operands.
	StateComputed
)

// Policy selects what reading C before Multiply does.
type Policy int

const (
	// Lazy computes C on first read.
	Lazy Policy = iota

	// Strict fails the read with ErrUninitializedResult.
	Strict
)

// Options configures a Base. The zero value is not valid; use
// ApplyOptions, which starts from the defaults.
type Options struct {
	Policy    Policy
	Tolerance Tolerance

	// Workers is the pool size for parallel strategies; <= 0 means
	// GOMAXPROCS. Sequential strategies ignore it.
	Workers int
}

// Option mutates Options.
type Option func(*Options)

// WithPolicy sets the read-before-Multiply policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithTolerance sets the tolerance used by Test.
func WithTolerance(t Tolerance) Option {
	return func(o *Options) { o.Tolerance = t }
}

// WithWorkers sets the worker count of parallel strategies.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// ApplyOptions returns the defaults (Lazy, DefaultTolerance, GOMAXPROCS
// workers) with opts applied in order.
func ApplyOptions(opts ...Option) Options {
	o := Options{
		Policy:    Lazy,
		Tolerance: DefaultTolerance(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

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

// Package muller defines the shared contract of the matrix-multiplication
// strategy family: the Muller interface, row-major Matrix storage, Tile views
// into a computed product, and the tolerance-aware verification protocol every
// strategy runs from its Test method.
//
// A strategy embeds Base, which owns the operands, the product buffer C and
// its computed state. The concrete strategy only supplies the kernel:
//
//	f := matmul.NewFMA(a, b)
//	defer f.Close()
//
//	if err := f.Multiply(); err != nil {
//	    return err
//	}
//	tile, err := f.C(0, b.Cols(), a.Rows())
//
// Reading C before Multiply either computes it on demand (Lazy, the default)
// or fails with ErrUninitializedResult (Strict), see WithPolicy.
//
// Concrete strategies live in package
// github.com/ajroetker/go-muller/muller/contrib/matmul.
package muller

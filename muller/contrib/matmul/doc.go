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

// Package matmul provides the strategies of the go-muller multiplication
// family. Every strategy implements muller.Muller over row-major float64
// matrices:
//
//   - FMA ("fma"): fused multiply-add accumulation, one rounding per step.
//   - ParallelFMA ("fma-parallel"): the FMA kernel over row strips on a
//     worker pool; bit-identical to FMA.
//   - Naive ("naive"): multiply then add, two roundings per step. It is the
//     reference every Test compares against.
//   - Blocked ("blocked"): cache-tiled multiply then add.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	f := matmul.NewFMA(a, b)
//	defer f.Close()
//
//	report, err := f.Test()
//
// New builds a strategy by name and NewAuto picks one from the operand size.
package matmul

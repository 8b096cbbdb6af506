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

//go:build amd64

package muller

import "golang.org/x/sys/cpu"

func init() {
	// The Go runtime lowers math.FMA to VFMADD231SD when the CPU reports
	// FMA3 (Haswell+, Piledriver+) and to software otherwise.
	hasHardwareFMA = cpu.X86.HasFMA
	if hasHardwareFMA {
		platformName = "amd64/fma3"
	} else {
		platformName = "amd64/soft-fma"
	}
}

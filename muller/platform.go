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
	"os"
	"strconv"
)

// hasHardwareFMA is set by init() in platform_*.go files.
var hasHardwareFMA bool

// platformName is set by init() in platform_*.go files.
var platformName string

// HasHardwareFMA reports whether math.FMA executes as a single fused
// instruction on this CPU. When false, math.FMA falls back to a correctly
// rounded software routine: results are identical, only slower.
func HasHardwareFMA() bool {
	return hasHardwareFMA
}

// Platform returns a short description of the FMA path, e.g. "amd64/fma3".
func Platform() string {
	return platformName
}

// NoParallelEnv checks if the MULLER_NO_PARALLEL environment variable is set.
// When set, automatic dispatch never picks a parallel strategy.
func NoParallelEnv() bool {
	val := os.Getenv("MULLER_NO_PARALLEL")
	if val == "" {
		return false
	}
	// Any non-empty value is considered true, but also parse as bool
	if b, err := strconv.ParseBool(val); err == nil {
		return b
	}
	return true
}

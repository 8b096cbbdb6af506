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
	"runtime"
	"strings"
	"testing"
)

func TestPlatform(t *testing.T) {
	t.Logf("Platform: %s, hardware FMA: %v", Platform(), HasHardwareFMA())

	if !strings.HasPrefix(Platform(), runtime.GOARCH+"/") {
		t.Errorf("Platform() = %q, want prefix %q", Platform(), runtime.GOARCH+"/")
	}
	if runtime.GOARCH == "arm64" && !HasHardwareFMA() {
		t.Error("arm64 always has FMADD")
	}
}

// math.FMA must round once whatever HasHardwareFMA reports.
func TestFMASingleRounding(t *testing.T) {
	x := 1 + 0x1p-30
	y := 1 - 0x1p-30

	if got := math.FMA(x, y, -1); got != -0x1p-60 {
		t.Errorf("math.FMA(x, y, -1) = %g, want %g", got, -0x1p-60)
	}
	if got := float64(x*y) - 1; got != 0 {
		t.Errorf("float64(x*y) - 1 = %g, want 0", got)
	}
}

func TestNoParallelEnv(t *testing.T) {
	for _, tc := range []struct {
		val  string
		want bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"1", true},
		{"true", true},
		{"yes", true},
	} {
		t.Setenv("MULLER_NO_PARALLEL", tc.val)
		if got := NoParallelEnv(); got != tc.want {
			t.Errorf("MULLER_NO_PARALLEL=%q: NoParallelEnv() = %v, want %v", tc.val, got, tc.want)
		}
	}
}

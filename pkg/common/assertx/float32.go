// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package assertx

import "math"

// float32EqualityThreshold is coarser than the float64 one; float32
// carries roughly 7 decimal digits.
const float32EqualityThreshold = 1.0e-6

// InEpsilonF32 reports whether want and got differ by less than the
// float32 threshold. The comparison runs in float64 to avoid a second
// rounding step.
func InEpsilonF32(want, got float32) bool {
	return math.Abs(float64(want)-float64(got)) < float32EqualityThreshold
}

// InEpsilonF32Slice reports element-wise InEpsilonF32 over slices of
// equal length.
func InEpsilonF32Slice(want, got []float32) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if !InEpsilonF32(want[i], got[i]) {
			return false
		}
	}
	return true
}

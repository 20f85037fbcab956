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

// Package assertx provides epsilon based float comparisons for tests
// and for element equality of float sequences, where == is too strict
// after arithmetic.
package assertx

import "math"

// float64EqualityThreshold is fine enough for values produced by a
// handful of float64 operations.
const float64EqualityThreshold = 1.0e-9

// InEpsilonF64 reports whether want and got differ by less than the
// float64 threshold.
func InEpsilonF64(want, got float64) bool {
	return math.Abs(want-got) < float64EqualityThreshold
}

// InEpsilonF64Slice reports element-wise InEpsilonF64 over slices of
// equal length.
func InEpsilonF64Slice(want, got []float64) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if !InEpsilonF64(want[i], got[i]) {
			return false
		}
	}
	return true
}

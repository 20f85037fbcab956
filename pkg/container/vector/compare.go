// Copyright 2021 - 2023 Matrix Origin
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

package vector

import (
	"golang.org/x/exp/constraints"
)

// Equal reports element-wise equality: same length and equal elements
// in order.
func Equal[T comparable](a, b *Vector[T]) bool {
	if a.length != b.length {
		return false
	}
	as, bs := a.RawSlice(), b.RawSlice()
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// EqualFunc is Equal for element types without built-in equality.
func EqualFunc[T any](a, b *Vector[T], eq func(T, T) bool) bool {
	if a.length != b.length {
		return false
	}
	as, bs := a.RawSlice(), b.RawSlice()
	for i := range as {
		if !eq(as[i], bs[i]) {
			return false
		}
	}
	return true
}

// Compare orders two vectors lexicographically over the element
// type's own ordering: -1, 0 or +1.  A prefix orders before its
// extension.
func Compare[T constraints.Ordered](a, b *Vector[T]) int {
	as, bs := a.RawSlice(), b.RawSlice()
	n := len(as)
	if len(bs) < n {
		n = len(bs)
	}
	for i := 0; i < n; i++ {
		switch {
		case as[i] < bs[i]:
			return -1
		case as[i] > bs[i]:
			return 1
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

// The remaining relations all derive from Compare; there is no
// independent algorithm.

func Less[T constraints.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) < 0
}

func LessEqual[T constraints.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) <= 0
}

func Greater[T constraints.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) > 0
}

func GreaterEqual[T constraints.Ordered](a, b *Vector[T]) bool {
	return Compare(a, b) >= 0
}

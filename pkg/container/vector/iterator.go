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

// Iterator is a position cursor into a vector, not a pointer into its
// buffer.  A reallocation therefore never leaves it dangling: it
// keeps denoting position pos and re-reads through the owning vector.
//
// Invalidation rules: Insert and Erase shift which element a cursor
// at or after the position denotes; a cursor past the new length
// reports !Valid().  Callers must not assume a cursor still denotes
// the same element across any mutating call.
type Iterator[T any] struct {
	vec *Vector[T]
	pos int
}

// Begin returns a cursor at position 0.
func (v *Vector[T]) Begin() Iterator[T] {
	return Iterator[T]{vec: v, pos: 0}
}

// End returns the cursor one past the last element.
func (v *Vector[T]) End() Iterator[T] {
	return Iterator[T]{vec: v, pos: v.length}
}

// Valid reports whether the cursor denotes a live element.
func (it Iterator[T]) Valid() bool {
	return it.vec != nil && it.pos >= 0 && it.pos < it.vec.length
}

func (it Iterator[T]) Pos() int {
	return it.pos
}

func (it *Iterator[T]) Next() {
	it.pos++
}

func (it *Iterator[T]) Prev() {
	it.pos--
}

func (it Iterator[T]) Value() T {
	return *it.vec.data.Get(it.pos)
}

// Ptr returns a pointer to the denoted element.  Unlike the cursor
// itself, the pointer does dangle after a reallocation.
func (it Iterator[T]) Ptr() *T {
	return it.vec.data.Get(it.pos)
}

func (it Iterator[T]) Set(val T) {
	*it.vec.data.Get(it.pos) = val
}

// Eq reports whether two cursors denote the same position of the same
// vector.  End() == End() holds, as in the usual begin/end idiom.
func (it Iterator[T]) Eq(other Iterator[T]) bool {
	return it.vec == other.vec && it.pos == other.pos
}

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

// Package vector implements a generic, resizable sequence container
// over a single owned buffer.  A vector tracks a logical length apart
// from its capacity; slots past the length are allocated but not part
// of the sequence.
//
// Vectors are not goroutine safe.  The backing mpool is, so many
// vectors may share one pool.
package vector

import (
	"fmt"

	"github.com/matrixorigin/simplevec/pkg/common/moerr"
	"github.com/matrixorigin/simplevec/pkg/common/mpool"
	"github.com/matrixorigin/simplevec/pkg/container/buffer"
)

// Vector is a dynamic array of T.  It owns exactly one buffer; growth
// allocates a larger buffer, transfers the live window and swaps it
// in.  The zero length/capacity state holds no storage.
type Vector[T any] struct {
	length   int
	capacity int

	data *buffer.Buffer[T]
	mp   *mpool.MPool
}

// ReserveHint asks a constructor for pre-allocated capacity with zero
// length.  It is a dedicated type, not a plain int, so "n elements"
// and "n slots" cannot be confused at a call site.
type ReserveHint struct {
	capacity int
}

// Reserve builds the hint consumed by NewWithReserve.
func Reserve(capacity int) ReserveHint {
	return ReserveHint{capacity: capacity}
}

func (h ReserveHint) Capacity() int {
	return h.capacity
}

// New returns an empty vector with no storage.
func New[T any](mp *mpool.MPool) *Vector[T] {
	return &Vector[T]{data: &buffer.Buffer[T]{}, mp: mp}
}

// NewWithReserve returns an empty vector with capacity pre-allocated
// per the hint.
func NewWithReserve[T any](hint ReserveHint, mp *mpool.MPool) (*Vector[T], error) {
	buf, err := buffer.New[T](hint.capacity, mp)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{capacity: hint.capacity, data: buf, mp: mp}, nil
}

// NewWithLength returns a vector of n zero-valued elements, with
// length == capacity == n.
func NewWithLength[T any](n int, mp *mpool.MPool) (*Vector[T], error) {
	v, err := NewWithReserve[T](Reserve(n), mp)
	if err != nil {
		return nil, err
	}
	v.length = n
	return v, nil
}

// NewWithValue returns a vector of n copies of val.
func NewWithValue[T any](n int, val T, mp *mpool.MPool) (*Vector[T], error) {
	v, err := NewWithLength[T](n, mp)
	if err != nil {
		return nil, err
	}
	s := v.data.Slice()
	for i := 0; i < n; i++ {
		s[i] = val
	}
	return v, nil
}

// NewFromValues returns a vector holding vals in order, with
// length == capacity == len(vals).
func NewFromValues[T any](mp *mpool.MPool, vals ...T) (*Vector[T], error) {
	v, err := NewWithLength[T](len(vals), mp)
	if err != nil {
		return nil, err
	}
	copy(v.data.Slice(), vals)
	return v, nil
}

func (v *Vector[T]) Length() int {
	return v.length
}

func (v *Vector[T]) Capacity() int {
	return v.capacity
}

func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// RawSlice exposes the live window of the backing buffer.  The slice
// is invalidated by the same operations that invalidate iterators.
func (v *Vector[T]) RawSlice() []T {
	return v.data.Slice()[:v.length]
}

func (v *Vector[T]) String() string {
	return fmt.Sprintf("%v", v.RawSlice())
}

// Get is the unchecked fast path.  i must be below the length; an
// index into the dead zone reads an undefined value and an index past
// the capacity hits the runtime bounds check.
func (v *Vector[T]) Get(i int) T {
	return *v.data.Get(i)
}

// GetPtr returns a pointer into the buffer.  The pointer dangles
// after any reallocating operation.
func (v *Vector[T]) GetPtr(i int) *T {
	return v.data.Get(i)
}

// Set is the unchecked store counterpart of Get.
func (v *Vector[T]) Set(i int, val T) {
	*v.data.Get(i) = val
}

// At is the checked accessor.  It fails with ErrIndexOutOfRange iff
// i is outside [0, length).
func (v *Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, moerr.NewIndexOutOfRange(i, v.length)
	}
	return *v.data.Get(i), nil
}

// SetAt is the checked store.
func (v *Vector[T]) SetAt(i int, val T) error {
	if i < 0 || i >= v.length {
		return moerr.NewIndexOutOfRange(i, v.length)
	}
	*v.data.Get(i) = val
	return nil
}

// nextCapacity doubles, with the 0 -> 1 base case on first insertion.
func (v *Vector[T]) nextCapacity() int {
	if v.capacity == 0 {
		return 1
	}
	return v.capacity * 2
}

// grow replaces the buffer with one of newCapacity slots, moving the
// live window.  Length is unchanged.  On failure the vector is
// untouched.
func (v *Vector[T]) grow(newCapacity int) error {
	newBuf, err := buffer.New[T](newCapacity, v.mp)
	if err != nil {
		return err
	}
	copy(newBuf.Slice(), v.data.Slice()[:v.length])
	v.data.Swap(newBuf)
	newBuf.Free()
	v.capacity = newCapacity
	return nil
}

// Reserve ensures capacity of at least newCapacity.  It never shrinks
// and allocates exactly newCapacity on growth.
func (v *Vector[T]) Reserve(newCapacity int) error {
	if newCapacity <= v.capacity {
		return nil
	}
	return v.grow(newCapacity)
}

// Resize sets the length to newLength.  Shrinking only lowers the
// length; the excluded slots keep their storage and contents.
// Growing exposes zero-valued elements, reallocating with the
// doubling policy when newLength exceeds the capacity.
func (v *Vector[T]) Resize(newLength int) error {
	if newLength < 0 {
		return moerr.NewInvalidInput("resize to length %d", newLength)
	}
	switch {
	case newLength <= v.length:
		v.length = newLength
	case newLength <= v.capacity:
		// slots may hold stale values from a previous shrink
		var zero T
		s := v.data.Slice()
		for i := v.length; i < newLength; i++ {
			s[i] = zero
		}
		v.length = newLength
	default:
		newCap := newLength
		if c := v.capacity * 2; c > newCap {
			newCap = c
		}
		if err := v.grow(newCap); err != nil {
			return err
		}
		// the fresh buffer is zeroed past the live window
		v.length = newLength
	}
	return nil
}

// PushBack appends val, doubling the capacity when full.
func (v *Vector[T]) PushBack(val T) error {
	if v.length == v.capacity {
		if err := v.grow(v.nextCapacity()); err != nil {
			return err
		}
	}
	*v.data.Get(v.length) = val
	v.length++
	return nil
}

// Append appends all vals with at most one growth step.
func (v *Vector[T]) Append(vals ...T) error {
	if need := v.length + len(vals); need > v.capacity {
		newCap := need
		if c := v.capacity * 2; c > newCap {
			newCap = c
		}
		if err := v.grow(newCap); err != nil {
			return err
		}
	}
	copy(v.data.Slice()[v.length:], vals)
	v.length += len(vals)
	return nil
}

// PopBack drops the last element.  The vacated slot keeps its
// contents.  Popping an empty vector is a caller bug.
func (v *Vector[T]) PopBack() {
	if v.length == 0 {
		panic(moerr.NewInternalError("pop back on empty vector"))
	}
	v.length--
}

// Insert places val at pos, shifting the suffix right.  pos must be
// in [0, length]; pos == length is equivalent to PushBack.  When the
// vector is full the prefix, the value and the suffix are relocated
// into the doubled buffer in one pass.  Returns an iterator at the
// inserted element.
func (v *Vector[T]) Insert(pos int, val T) (Iterator[T], error) {
	if pos < 0 || pos > v.length {
		panic(moerr.NewInternalError("insert position %d out of range [0, %d]", pos, v.length))
	}
	if v.length == v.capacity {
		newCap := v.nextCapacity()
		newBuf, err := buffer.New[T](newCap, v.mp)
		if err != nil {
			return Iterator[T]{}, err
		}
		src, dst := v.data.Slice(), newBuf.Slice()
		copy(dst, src[:pos])
		dst[pos] = val
		copy(dst[pos+1:], src[pos:v.length])
		v.data.Swap(newBuf)
		newBuf.Free()
		v.capacity = newCap
	} else {
		s := v.data.Slice()
		// copy is overlap safe, the suffix moves backward intact
		copy(s[pos+1:v.length+1], s[pos:v.length])
		s[pos] = val
	}
	v.length++
	return Iterator[T]{vec: v, pos: pos}, nil
}

// Erase removes the element at pos, shifting the suffix left.  pos
// must be in [0, length).  Returns an iterator at the element that
// replaced the erased one, or End() when the last element was erased.
func (v *Vector[T]) Erase(pos int) Iterator[T] {
	if pos < 0 || pos >= v.length {
		panic(moerr.NewInternalError("erase position %d out of range [0, %d)", pos, v.length))
	}
	s := v.data.Slice()
	copy(s[pos:], s[pos+1:v.length])
	v.length--
	// zero the vacated slot so pointer-bearing elements are not
	// pinned past erasure
	var zero T
	s[v.length] = zero
	return Iterator[T]{vec: v, pos: pos}
}

// Clear drops all elements.  Capacity and storage are retained for
// reuse.
func (v *Vector[T]) Clear() {
	v.length = 0
}

// Swap exchanges contents with other in constant time.  No element is
// touched.
func (v *Vector[T]) Swap(other *Vector[T]) {
	v.length, other.length = other.length, v.length
	v.capacity, other.capacity = other.capacity, v.capacity
	v.data, other.data = other.data, v.data
	v.mp, other.mp = other.mp, v.mp
}

// Dup deep-copies the live elements into a fresh vector of matching
// capacity.  A nil mp duplicates into the source's pool.  Failure
// leaves the source untouched.
func (v *Vector[T]) Dup(mp *mpool.MPool) (*Vector[T], error) {
	if mp == nil {
		mp = v.mp
	}
	w, err := NewWithReserve[T](Reserve(v.capacity), mp)
	if err != nil {
		return nil, err
	}
	copy(w.data.Slice(), v.data.Slice()[:v.length])
	w.length = v.length
	return w, nil
}

// CopyFrom is copy assignment: it builds a duplicate of other and
// swaps it in, so any allocation failure leaves the receiver
// unchanged.  Self assignment is a no-op.
func (v *Vector[T]) CopyFrom(other *Vector[T]) error {
	if v == other {
		return nil
	}
	tmp, err := other.Dup(v.mp)
	if err != nil {
		return err
	}
	v.Swap(tmp)
	tmp.Free()
	return nil
}

// MoveFrom is move assignment: it steals other's buffer and leaves
// other empty.  It cannot fail.
func (v *Vector[T]) MoveFrom(other *Vector[T]) {
	if v == other {
		return
	}
	v.Free()
	v.Swap(other)
}

// Free returns the storage to the pool.  The vector reverts to the
// empty state and stays usable.
func (v *Vector[T]) Free() {
	v.data.Free()
	v.length = 0
	v.capacity = 0
}

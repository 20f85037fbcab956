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

// Package buffer provides the raw owned slab under a container.  A
// Buffer has a fixed capacity and no notion of logical length; all
// size bookkeeping and bounds safety live in the owner.
package buffer

import (
	"github.com/matrixorigin/simplevec/pkg/common/moerr"
	"github.com/matrixorigin/simplevec/pkg/common/mpool"
)

// noCopy triggers go vet's copylocks check.  A Buffer uniquely owns
// its slab; ownership moves via Swap, never by struct copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Buffer owns one typed slab obtained from an mpool.  Capacity is
// fixed for the buffer's lifetime; a zero Buffer is valid and holds no
// storage.
type Buffer[T any] struct {
	noCopy noCopy

	data []T
	mp   *mpool.MPool
}

// New allocates a buffer of exactly capacity zero-valued slots.
// Capacity 0 holds no storage.
func New[T any](capacity int, mp *mpool.MPool) (*Buffer[T], error) {
	if capacity < 0 {
		return nil, moerr.NewInvalidInput("buffer capacity %d", capacity)
	}
	data, err := mpool.MakeSlice[T](mp, capacity)
	if err != nil {
		return nil, err
	}
	return &Buffer[T]{data: data, mp: mp}, nil
}

func (b *Buffer[T]) Capacity() int {
	return len(b.data)
}

// Get returns the slot at i.  This is the only access primitive and
// it is unchecked against any logical size; i past the capacity hits
// the runtime bounds check.
func (b *Buffer[T]) Get(i int) *T {
	return &b.data[i]
}

// Slice exposes the whole slab.
func (b *Buffer[T]) Slice() []T {
	return b.data
}

// Swap exchanges the owned slab between two buffers in constant time.
// No element is touched and no failure is possible.
func (b *Buffer[T]) Swap(other *Buffer[T]) {
	b.data, other.data = other.data, b.data
	b.mp, other.mp = other.mp, b.mp
}

// Free releases the slab accounting.  The buffer reverts to the empty
// state; calling Free again is a no-op.
func (b *Buffer[T]) Free() {
	if b.data == nil {
		return
	}
	mpool.FreeSlice(b.mp, b.data)
	b.data = nil
}

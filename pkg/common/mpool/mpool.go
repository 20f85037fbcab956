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

package mpool

import (
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"go.uber.org/zap"

	"github.com/matrixorigin/simplevec/pkg/common/moerr"
	"github.com/matrixorigin/simplevec/pkg/logutil"
)

const (
	MB = 1 << 20
	GB = 1 << 30
	TB = 1 << 40
	PB = 1 << 50
)

// Stats are accounting counters of a pool.  All fields are atomics, the
// pool can be shared by many containers.
type Stats struct {
	NumAlloc      atomic.Int64 // number of allocations
	NumFree       atomic.Int64 // number of frees
	NumCurrBytes  atomic.Int64 // bytes alloc'ed and not freed
	HighWaterMark atomic.Int64 // max value of NumCurrBytes
}

func (s *Stats) Report(tab string) string {
	if s.HighWaterMark.Load() == 0 {
		// empty, reduce noise
		return ""
	}

	ret := ""
	ret += fmt.Sprintf("%s allocations : %d\n", tab, s.NumAlloc.Load())
	ret += fmt.Sprintf("%s frees : %d\n", tab, s.NumFree.Load())
	ret += fmt.Sprintf("%s current bytes: %d\n", tab, s.NumCurrBytes.Load())
	ret += fmt.Sprintf("%s high water mark: %d\n", tab, s.HighWaterMark.Load())
	return ret
}

func (s *Stats) RecordAlloc(sz int64) int64 {
	s.NumAlloc.Add(1)
	curr := s.NumCurrBytes.Add(sz)
	for {
		hwm := s.HighWaterMark.Load()
		if curr <= hwm {
			break
		}
		if s.HighWaterMark.CompareAndSwap(hwm, curr) {
			break
		}
	}
	return curr
}

func (s *Stats) RecordFree(sz int64) int64 {
	s.NumFree.Add(1)
	curr := s.NumCurrBytes.Add(-sz)
	if curr < 0 {
		logutil.Error("mpool freed more bytes than allocated",
			zap.Int64("current bytes", curr))
	}
	return curr
}

// MPool is an accounting memory pool.  It hands out zeroed storage,
// enforces a byte cap, and keeps allocation statistics.  The pool
// itself is goroutine safe; containers built on top of it are not.
type MPool struct {
	id  int64
	tag string
	cap int64

	stats Stats

	// optional per-size allocation detail, enabled by
	// EnableDetailRecording
	details *detailInfo
}

type detailInfo struct {
	sync.Mutex
	enabled   bool
	allocCnts map[int64]int64
}

var (
	globalStats Stats
	pools       sync.Map // id -> *MPool
	nextPoolID  atomic.Int64
)

// NewMPool creates a pool with the given tag.  cap <= 0 means no
// limit.  The tag must be unique among live pools.
func NewMPool(tag string, cap int64) (*MPool, error) {
	if cap <= 0 {
		cap = PB
	}

	var dup bool
	pools.Range(func(_, v any) bool {
		if v.(*MPool).tag == tag {
			dup = true
			return false
		}
		return true
	})
	if dup {
		return nil, moerr.NewInvalidInput("mpool %s already exists", tag)
	}

	mp := &MPool{
		id:      nextPoolID.Add(1),
		tag:     tag,
		cap:     cap,
		details: &detailInfo{allocCnts: make(map[int64]int64)},
	}
	pools.Store(mp.id, mp)
	return mp, nil
}

// MustNew is like NewMPool but panics on failure.
func MustNew(tag string) *MPool {
	mp, err := NewMPool(tag, 0)
	if err != nil {
		panic(err)
	}
	return mp
}

// MustNewZero creates an anonymous unlimited pool, for tests.
func MustNewZero() *MPool {
	return MustNew(fmt.Sprintf("must-new-zero-%d", nextPoolID.Load()+1))
}

// DeleteMPool unregisters the pool.  An unbalanced pool is a leak and
// is reported, not fixed.
func DeleteMPool(mp *MPool) {
	if mp == nil {
		return
	}
	if nb := mp.CurrNB(); nb != 0 {
		logutil.Warn("mpool deleted with outstanding allocations",
			zap.String("pool", mp.tag),
			zap.Int64("bytes", nb))
	}
	pools.Delete(mp.id)
}

func (mp *MPool) Tag() string {
	return mp.tag
}

func (mp *MPool) Cap() int64 {
	return mp.cap
}

func (mp *MPool) CurrNB() int64 {
	return mp.stats.NumCurrBytes.Load()
}

func (mp *MPool) Stats() *Stats {
	return &mp.stats
}

func (mp *MPool) EnableDetailRecording() {
	mp.details.Lock()
	defer mp.details.Unlock()
	mp.details.enabled = true
}

// charge books sz bytes against the pool cap.  ErrOOM when the cap
// would be exceeded; the booking is rolled back in that case.
func (mp *MPool) charge(sz int64) error {
	if curr := mp.stats.RecordAlloc(sz); curr > mp.cap {
		mp.stats.RecordFree(sz)
		return moerr.NewOOM()
	}
	globalStats.RecordAlloc(sz)

	mp.details.Lock()
	if mp.details.enabled {
		mp.details.allocCnts[sz]++
	}
	mp.details.Unlock()
	return nil
}

func (mp *MPool) credit(sz int64) {
	mp.stats.RecordFree(sz)
	globalStats.RecordFree(sz)
}

// Alloc returns sz zeroed bytes.
func (mp *MPool) Alloc(sz int) ([]byte, error) {
	if sz < 0 {
		return nil, moerr.NewInvalidInput("mpool alloc size %d", sz)
	}
	if sz == 0 {
		return nil, nil
	}
	if err := mp.charge(int64(sz)); err != nil {
		return nil, err
	}
	return make([]byte, sz), nil
}

// Free returns the bytes to the pool.  bs must be the slice handed out
// by Alloc/Realloc; nil or empty is a no-op.
func (mp *MPool) Free(bs []byte) {
	if cap(bs) == 0 {
		return
	}
	mp.credit(int64(cap(bs)))
}

// Realloc grows bs to sz bytes.  Content is copied, the tail is
// zeroed, and the old storage is freed.
func (mp *MPool) Realloc(old []byte, sz int) ([]byte, error) {
	if sz < 0 {
		return nil, moerr.NewInvalidInput("mpool realloc size %d", sz)
	}
	if sz <= cap(old) {
		return old[:sz], nil
	}
	bs, err := mp.Alloc(sz)
	if err != nil {
		return nil, err
	}
	copy(bs, old)
	mp.Free(old)
	return bs, nil
}

// MakeSlice allocates a zeroed []T of length n, charging
// n * sizeof(T) against the pool.
func MakeSlice[T any](mp *MPool, n int) ([]T, error) {
	var v T
	if n < 0 {
		return nil, moerr.NewInvalidInput("mpool make slice length %d", n)
	}
	if n == 0 {
		return nil, nil
	}
	if err := mp.charge(int64(n) * int64(unsafe.Sizeof(v))); err != nil {
		return nil, err
	}
	return make([]T, n), nil
}

// FreeSlice returns a slice obtained from MakeSlice to the pool.
func FreeSlice[T any](mp *MPool, vs []T) {
	var v T
	if cap(vs) == 0 {
		return
	}
	mp.credit(int64(cap(vs)) * int64(unsafe.Sizeof(v)))
}

type poolUsage struct {
	Tag           string `json:"tag"`
	Cap           int64  `json:"cap"`
	CurrBytes     int64  `json:"curr_bytes"`
	NumAlloc      int64  `json:"num_alloc"`
	NumFree       int64  `json:"num_free"`
	HighWaterMark int64  `json:"high_water_mark"`

	AllocCnts map[int64]int64 `json:"alloc_cnts,omitempty"`
}

func (mp *MPool) usage() poolUsage {
	u := poolUsage{
		Tag:           mp.tag,
		Cap:           mp.cap,
		CurrBytes:     mp.stats.NumCurrBytes.Load(),
		NumAlloc:      mp.stats.NumAlloc.Load(),
		NumFree:       mp.stats.NumFree.Load(),
		HighWaterMark: mp.stats.HighWaterMark.Load(),
	}
	mp.details.Lock()
	if mp.details.enabled && len(mp.details.allocCnts) > 0 {
		u.AllocCnts = make(map[int64]int64, len(mp.details.allocCnts))
		for sz, cnt := range mp.details.allocCnts {
			u.AllocCnts[sz] = cnt
		}
	}
	mp.details.Unlock()
	return u
}

// ReportMemUsage returns a json report of pool usage.  Empty tag
// reports every live pool, "global" reports the process wide totals.
func ReportMemUsage(tag string) string {
	if tag == "global" {
		u := poolUsage{
			Tag:           "global",
			CurrBytes:     globalStats.NumCurrBytes.Load(),
			NumAlloc:      globalStats.NumAlloc.Load(),
			NumFree:       globalStats.NumFree.Load(),
			HighWaterMark: globalStats.HighWaterMark.Load(),
		}
		bs, _ := json.Marshal(u)
		return string(bs)
	}

	var usages []poolUsage
	pools.Range(func(_, v any) bool {
		mp := v.(*MPool)
		if tag == "" || mp.tag == tag {
			usages = append(usages, mp.usage())
		}
		return true
	})
	bs, _ := json.Marshal(usages)
	return string(bs)
}

func GlobalStats() *Stats {
	return &globalStats
}

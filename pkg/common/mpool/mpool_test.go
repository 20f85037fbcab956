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
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/simplevec/pkg/common/moerr"
)

func TestMPool(t *testing.T) {
	m, err := NewMPool("test-mpool-small", 0)
	require.True(t, err == nil, "new mpool failed %v", err)

	nb0 := m.CurrNB()
	hw0 := m.Stats().HighWaterMark.Load()
	nalloc0 := m.Stats().NumAlloc.Load()
	nfree0 := m.Stats().NumFree.Load()

	require.True(t, nalloc0 == 0, "bad nalloc")
	require.True(t, nfree0 == 0, "bad nfree")

	for i := 1; i <= 1000; i++ {
		a, err := m.Alloc(i * 10)
		require.True(t, err == nil, "alloc failure, %v", err)
		require.True(t, len(a) == i*10, "allocation i size error")
		a[0] = 0xF0
		require.True(t, a[1] == 0, "allocation result not zeroed.")
		a[i*10-1] = 0xBA
		a, err = m.Realloc(a, i*20)
		require.True(t, err == nil, "realloc failure %v", err)
		require.True(t, len(a) == i*20, "allocation i size error")
		require.True(t, a[0] == 0xF0, "reallocation not copied")
		require.True(t, a[i*10-1] == 0xBA, "reallocation not copied")
		require.True(t, a[i*10] == 0, "reallocation not zeroed")
		require.True(t, a[i*20-1] == 0, "reallocation not zeroed")
		m.Free(a)
	}

	require.True(t, nb0 == m.CurrNB(), "leak")
	// 30 -- realloc books 10 + 20, alloc first, then copy.
	require.True(t, hw0+1000*30 == m.Stats().HighWaterMark.Load(), "hw")
	require.True(t, nalloc0+1000*2 == m.Stats().NumAlloc.Load(), "alloc")
	require.True(t, nalloc0-nfree0 == m.Stats().NumAlloc.Load()-m.Stats().NumFree.Load(), "free")

	DeleteMPool(m)
}

func TestAllocBadSize(t *testing.T) {
	m := MustNewZero()
	defer DeleteMPool(m)

	_, err := m.Alloc(-1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	// Realloc rejects a negative size the same way, for any old slice
	_, err = m.Realloc(nil, -1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	a, err := m.Alloc(10)
	require.NoError(t, err)
	_, err = m.Realloc(a, -1)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
	m.Free(a)
	require.Equal(t, int64(0), m.CurrNB())
}

func TestMPoolCap(t *testing.T) {
	m, err := NewMPool("test-mpool-cap", 1024)
	require.NoError(t, err)
	defer DeleteMPool(m)

	a, err := m.Alloc(1000)
	require.NoError(t, err)

	// over the cap, and the failed booking must roll back
	_, err = m.Alloc(100)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrOOM))
	require.Equal(t, int64(1000), m.CurrNB())

	m.Free(a)
	require.Equal(t, int64(0), m.CurrNB())
}

func TestMPoolDupTag(t *testing.T) {
	m, err := NewMPool("test-mpool-dup", 0)
	require.NoError(t, err)
	defer DeleteMPool(m)

	_, err = NewMPool("test-mpool-dup", 0)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))
}

func TestMakeSlice(t *testing.T) {
	m := MustNewZero()
	defer DeleteMPool(m)

	vs, err := MakeSlice[int64](m, 100)
	require.NoError(t, err)
	require.Equal(t, 100, len(vs))
	require.Equal(t, int64(800), m.CurrNB())
	for _, v := range vs {
		require.Equal(t, int64(0), v)
	}

	FreeSlice(m, vs)
	require.Equal(t, int64(0), m.CurrNB())

	// zero length slice holds no storage
	vs, err = MakeSlice[int64](m, 0)
	require.NoError(t, err)
	require.Nil(t, vs)
	FreeSlice(m, vs)
	require.Equal(t, int64(0), m.CurrNB())
}

func TestReportMemUsage(t *testing.T) {
	m, err := NewMPool("testjson", 0)
	require.True(t, err == nil, "new mpool failed %v", err)
	m.EnableDetailRecording()

	mem, err := m.Alloc(1000000)
	require.True(t, err == nil, "mpool alloc failed %v", err)

	j1 := ReportMemUsage("")
	j2 := ReportMemUsage("global")
	j3 := ReportMemUsage("testjson")
	t.Logf("mem usage: %s", j1)
	t.Logf("global mem usage: %s", j2)
	t.Logf("testjson mem usage: %s", j3)
	require.True(t, strings.Contains(j3, "testjson"))
	require.True(t, strings.Contains(j3, "1000000"))

	m.Free(mem)
	j3 = ReportMemUsage("testjson")
	require.True(t, strings.Contains(j3, `"curr_bytes":0`))

	DeleteMPool(m)
	j3 = ReportMemUsage("testjson")
	require.False(t, strings.Contains(j3, "testjson"))
}

// test race
func TestMP(t *testing.T) {
	pool, err := NewMPool("default", 0)
	if err != nil {
		panic(err)
	}
	defer DeleteMPool(pool)
	var wg sync.WaitGroup
	run := func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			buf, err := pool.Alloc(10)
			if err != nil {
				panic(err)
			}
			pool.Free(buf)
		}
	}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go run()
	}
	wg.Wait()

	require.Equal(t, int64(0), pool.CurrNB())
}

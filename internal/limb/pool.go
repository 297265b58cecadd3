// Scratch buffer pooling for Karatsuba accumulators and division work areas.

package limb

import (
	"math/bits"
	"sync"
	"sync/atomic"
)

// scratchSizes are the pool size classes: powers of 4 from 4^3 = 64 limbs to
// 4^11 = 4M limbs. Larger requests bypass the pools.
var scratchSizes = [...]int{64, 256, 1024, 4096, 16384, 65536, 262144, 1048576, 4194304}

var scratchPools [len(scratchSizes)]sync.Pool

func init() {
	for i := range scratchPools {
		size := scratchSizes[i]
		scratchPools[i].New = func() any { return make([]Word, size) }
	}
}

// poolIndex returns the size class holding size limbs, or -1 if size is too
// large for pooling. Index i holds 4^(i+3) limbs, so the class follows from
// bits.Len(size-1).
func poolIndex(size int) int {
	if size <= 0 {
		return 0
	}
	if size > scratchSizes[len(scratchSizes)-1] {
		return -1
	}
	idx := (bits.Len(uint(size-1)) - 5) / 2
	if idx < 0 {
		idx = 0
	}
	return idx
}

// Acquire returns a zeroed scratch vector of exactly size limbs.
//
// Release it when done, preferably with defer:
//
//	buf := limb.Acquire(n)
//	defer limb.Release(buf)
//
// The vector must not escape to callers: copy results out before release.
func Acquire(size int) []Word {
	idx := poolIndex(size)
	if idx < 0 {
		return make([]Word, size)
	}
	buf := scratchPools[idx].Get().([]Word)
	clear(buf[:size])
	return buf[:size]
}

// Release returns a vector obtained from Acquire to its pool. Safe to call
// with nil or with vectors that were not pooled.
func Release(buf []Word) {
	if buf == nil {
		return
	}
	c := cap(buf)
	idx := poolIndex(c)
	if idx >= 0 && scratchSizes[idx] == c {
		scratchPools[idx].Put(buf[:c])
	}
}

// WarmPools pre-allocates count buffers in the size class serving maxLimbs.
func WarmPools(maxLimbs, count int) {
	idx := poolIndex(maxLimbs)
	if idx < 0 {
		return
	}
	for range count {
		scratchPools[idx].Put(make([]Word, scratchSizes[idx]))
	}
}

var poolsWarmed atomic.Bool

// EnsurePoolsWarmed warms the pools once per process. Later calls return
// immediately. The buffer count grows with the expected operand size.
func EnsurePoolsWarmed(maxLimbs int) {
	if !poolsWarmed.CompareAndSwap(false, true) {
		return
	}
	count := 2
	switch {
	case maxLimbs >= 1<<20:
		count = 6
	case maxLimbs >= 1<<16:
		count = 4
	}
	WarmPools(maxLimbs, count)
}

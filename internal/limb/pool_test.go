package limb

import (
	"fmt"
	"testing"
)

func TestAcquireRelease(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		size    int
		wantCap int
	}{
		{"empty", 0, 64},
		{"small", 10, 64},
		{"medium", 100, 256},
		{"large", 1000, 1024},
		{"xlarge", 5000, 16384},
		{"too_large", 5_000_000, 5_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			buf := Acquire(tt.size)
			if len(buf) != tt.size {
				t.Errorf("Acquire(%d) length %d", tt.size, len(buf))
			}
			if cap(buf) != tt.wantCap {
				t.Errorf("Acquire(%d) capacity %d, want %d", tt.size, cap(buf), tt.wantCap)
			}
			for i := range buf {
				if buf[i] != 0 {
					t.Fatalf("Acquire(%d) not zeroed at %d", tt.size, i)
				}
			}
			for i := range buf {
				buf[i] = 1
			}
			Release(buf)
		})
	}
}

func TestAcquireClearsRecycledBuffer(t *testing.T) {
	// Not parallel: relies on the pool handing back the buffer it just got.
	buf := Acquire(50)
	for i := range buf {
		buf[i] = ^Word(0)
	}
	Release(buf)
	again := Acquire(60)
	defer Release(again)
	for i, w := range again {
		if w != 0 {
			t.Fatalf("recycled buffer not cleared at %d", i)
		}
	}
}

func TestReleaseNil(t *testing.T) {
	t.Parallel()
	Release(nil)
	Release(make([]Word, 3)) // not a pool size class
}

func TestPoolIndexMatchesLinearSearch(t *testing.T) {
	t.Parallel()
	linear := func(size int) int {
		for i, s := range scratchSizes {
			if size <= s {
				return i
			}
		}
		return -1
	}
	for size := 1; size <= scratchSizes[len(scratchSizes)-1]+1; size = size*3/2 + 1 {
		if got, want := poolIndex(size), linear(size); got != want {
			t.Errorf("poolIndex(%d) = %d, want %d", size, got, want)
		}
	}
}

func TestEnsurePoolsWarmed(t *testing.T) {
	t.Parallel()
	EnsurePoolsWarmed(1000)
	EnsurePoolsWarmed(1000)
	if !poolsWarmed.Load() {
		t.Error("pools not marked warm")
	}
	WarmPools(1<<30, 1) // beyond the largest class, ignored
}

func BenchmarkAcquire(b *testing.B) {
	for _, size := range []int{64, 4096, 65536} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				Release(Acquire(size))
			}
		})
	}
}

package limb

import (
	"math/rand"
	"slices"
	"testing"
)

// generateRandomWords creates a slice of random words for testing.
func generateRandomWords(n int, seed int64) []Word {
	r := rand.New(rand.NewSource(seed))
	words := make([]Word, n)
	for i := range words {
		words[i] = Word(r.Uint64())
	}
	return words
}

// The dispatched vector routines must agree with the portable ones whatever
// backs them on this platform.
func TestVectorRoutinesMatchPortable(t *testing.T) {
	t.Parallel()
	sizes := []int{0, 1, 4, 16, 64, 257}
	for _, n := range sizes {
		x := generateRandomWords(n, int64(n)+1)
		y := generateRandomWords(n, int64(n)+2)
		w := Word(0xdeadbeef)

		z1, z2 := make([]Word, n), make([]Word, n)
		if c1, c2 := vecAdd(z1, x, y), addVV_g(z2, x, y); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecAdd disagrees with addVV_g", n)
		}
		if c1, c2 := vecSub(z1, x, y), subVV_g(z2, x, y); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecSub disagrees with subVV_g", n)
		}
		if c1, c2 := vecAddW(z1, x, w), addVW_g(z2, x, w); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecAddW disagrees with addVW_g", n)
		}
		if c1, c2 := vecSubW(z1, x, w), subVW_g(z2, x, w); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecSubW disagrees with subVW_g", n)
		}
		if c1, c2 := vecMulAddW(z1, x, w, 3), mulAddVWW_g(z2, x, w, 3); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecMulAddW disagrees with mulAddVWW_g", n)
		}
		copy(z1, y)
		copy(z2, y)
		if c1, c2 := vecAddMul(z1, x, w), addMulVVW_g(z2, x, w); c1 != c2 || !slices.Equal(z1, z2) {
			t.Errorf("n=%d: vecAddMul disagrees with addMulVVW_g", n)
		}
	}
}

func TestWordKernelMatchesRadixKernelOnPowerOfTwo(t *testing.T) {
	t.Parallel()
	// Limbs below 2^16 are valid in both bases, but the kernels differ in
	// where carries land, so only operations without carries are compared.
	b := MustBase(1 << 16)
	rk, wk := New(b), New(Native())
	x := []Word{1, 2, 3}
	y := []Word{4, 5}
	d1, d2 := make([]Word, 3), make([]Word, 3)
	if rk.Add(d1, x, y) != wk.Add(d2, x, y) || !slices.Equal(d1, d2) {
		t.Errorf("Add differs: %v vs %v", d1, d2)
	}
}

func BenchmarkVecAddMul(b *testing.B) {
	x := generateRandomWords(1024, 1)
	z := generateRandomWords(1024, 2)
	b.Run("dispatch", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			vecAddMul(z, x, 12345)
		}
	})
	b.Run("portable", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			addMulVVW_g(z, x, 12345)
		}
	})
}

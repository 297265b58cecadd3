package limb

import (
	"math/big"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// ─────────────────────────────────────────────────────────────────────────────
// Test Utilities
// ─────────────────────────────────────────────────────────────────────────────

// testBases covers the native base, small radices, a power of two below the
// word size and the largest explicit radix.
var testBases = []struct {
	name string
	base Base
}{
	{"native", Native()},
	{"base2", MustBase(2)},
	{"base3", MustBase(3)},
	{"base10", MustBase(10)},
	{"base1e9", MustBase(1_000_000_000)},
	{"base2^31", MustBase(1 << 31)},
	{"baseMax", MustBase(^Word(0))},
}

// toBig evaluates a least-significant-first vector in base b.
func toBig(b Base, x []Word) *big.Int {
	radix := new(big.Int).Lsh(big.NewInt(1), WordBits)
	if !b.IsNative() {
		radix.SetUint64(uint64(b.Radix()))
	}
	v := new(big.Int)
	for i := len(x) - 1; i >= 0; i-- {
		v.Mul(v, radix)
		v.Add(v, new(big.Int).SetUint64(uint64(x[i])))
	}
	return v
}

// limbsGen generates vectors of valid limbs for base b.
func limbsGen(b Base) gopter.Gen {
	return gen.SliceOf(gen.UInt64Range(0, uint64(b.Max()))).Map(func(v []uint64) []Word {
		out := make([]Word, len(v))
		for i, x := range v {
			out[i] = Word(x)
		}
		return out
	})
}

func order(a, b []Word) ([]Word, []Word) {
	if len(a) < len(b) {
		return b, a
	}
	return a, b
}

func ws(v ...Word) []Word { return v }

// ─────────────────────────────────────────────────────────────────────────────
// Concrete vectors
// ─────────────────────────────────────────────────────────────────────────────

func TestKernelAddDecimal(t *testing.T) {
	t.Parallel()
	k := New(MustBase(10))
	tests := []struct {
		name      string
		a, b      []Word
		want      []Word
		wantCarry Word
	}{
		{"carry_out", ws(9, 9, 2, 8, 9), ws(1, 2, 2, 8, 9), ws(0, 2, 5, 6, 9), 1},
		{"ripple", ws(1, 9, 9, 9, 9), ws(9), ws(0, 0, 0, 0, 0), 1},
		{"no_carry", ws(1, 2, 3), ws(4, 5), ws(5, 7, 3), 0},
		{"empty_b", ws(7, 7), nil, ws(7, 7), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dst := make([]Word, len(tt.a))
			c := k.Add(dst, tt.a, tt.b)
			if !slices.Equal(dst, tt.want) || c != tt.wantCarry {
				t.Errorf("Add(%v, %v) = %v carry %d, want %v carry %d", tt.a, tt.b, dst, c, tt.want, tt.wantCarry)
			}
		})
	}
}

func TestKernelSubDecimal(t *testing.T) {
	t.Parallel()
	k := New(MustBase(10))
	tests := []struct {
		name       string
		a, b       []Word
		want       []Word
		wantBorrow Word
	}{
		{"simple", ws(9, 8), ws(1, 1), ws(8, 7), 0},
		{"ripple", ws(0, 0, 0, 1), ws(1), ws(9, 9, 9, 0), 0},
		{"violated", ws(1), ws(2), ws(9), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			dst := make([]Word, len(tt.a))
			b := k.Sub(dst, tt.a, tt.b)
			if !slices.Equal(dst, tt.want) || b != tt.wantBorrow {
				t.Errorf("Sub(%v, %v) = %v borrow %d, want %v borrow %d", tt.a, tt.b, dst, b, tt.want, tt.wantBorrow)
			}
		})
	}
}

func TestKernelMulVectors(t *testing.T) {
	t.Parallel()
	b32, err := ParseBase("2^32") // native on 32-bit platforms
	if err != nil {
		t.Fatal(err)
	}
	m := b32.Max()
	tests := []struct {
		name string
		base Base
		a, b []Word
		want []Word
	}{
		{"decimal", MustBase(10), ws(1, 2, 3, 4, 6), ws(1, 2, 3, 4, 5), ws(1, 4, 0, 1, 8, 9, 3, 9, 4, 3)},
		{"decimal_nines", MustBase(10), ws(9, 9, 9, 9, 9), ws(9, 9, 9, 9, 9), ws(1, 0, 0, 0, 0, 8, 9, 9, 9, 9)},
		{"decimal_scalar", MustBase(10), ws(2, 2, 2, 4, 5, 6), ws(3), ws(6, 6, 6, 2, 6, 9, 1)},
		{"base2^32_all_max", b32, ws(m, m, m, m), ws(m, m, m, m), ws(1, 0, 0, 0, m-1, m, m, m)},
		{"native_all_max", Native(), ws(^Word(0), ^Word(0)), ws(^Word(0), ^Word(0)), ws(1, 0, ^Word(0)-1, ^Word(0))},
		{"zero_operand", MustBase(10), ws(5, 5), nil, ws(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			k := New(tt.base)
			dst := make([]Word, len(tt.a)+len(tt.b))
			for i := range dst {
				dst[i] = 7 // Mul must overwrite
			}
			k.Mul(dst, tt.a, tt.b)
			if !slices.Equal(dst, tt.want) {
				t.Errorf("Mul(%v, %v) = %v, want %v", tt.a, tt.b, dst, tt.want)
			}
		})
	}
}

func TestKernelConstOps(t *testing.T) {
	t.Parallel()
	k := New(MustBase(10))

	x := ws(9, 9, 9)
	if c := k.AddConst(x, 1); c != 1 || !slices.Equal(x, ws(0, 0, 0)) {
		t.Errorf("AddConst = %v carry %d, want [0 0 0] carry 1", x, c)
	}
	x = ws(0, 0, 1)
	if b := k.SubConst(x, 1); b != 0 || !slices.Equal(x, ws(9, 9, 0)) {
		t.Errorf("SubConst = %v borrow %d, want [9 9 0] borrow 0", x, b)
	}
	x = ws(5, 5)
	if c := k.MulConst(x, 3); c != 1 || !slices.Equal(x, ws(5, 6)) {
		t.Errorf("MulConst = %v carry %d, want [5 6] carry 1", x, c)
	}
	// 987 / 4 = 246 r 3, most significant limb first.
	x = ws(9, 8, 7)
	if r := k.DivConst(x, 4); r != 3 || !slices.Equal(x, ws(2, 4, 6)) {
		t.Errorf("DivConst = %v rem %d, want [2 4 6] rem 3", x, r)
	}
}

func TestKernelCmp(t *testing.T) {
	t.Parallel()
	for _, tb := range testBases {
		k := New(tb.base)
		if got := k.Cmp(ws(1, 2), ws(2, 1)); got != 1 {
			t.Errorf("%s: Cmp([1 2],[2 1]) = %d, want 1", tb.name, got)
		}
		if got := k.Cmp(ws(1, 1), ws(1, 1)); got != 0 {
			t.Errorf("%s: Cmp equal = %d, want 0", tb.name, got)
		}
		if got := k.Cmp(nil, nil); got != 0 {
			t.Errorf("%s: Cmp empty = %d, want 0", tb.name, got)
		}
	}
}

func TestKernelAddAliasing(t *testing.T) {
	t.Parallel()
	for _, tb := range testBases {
		k := New(tb.base)
		m := tb.base.Max()
		a := ws(m, m, 1)
		c := k.Add(a, a, ws(1))
		if c != 0 || !slices.Equal(a, ws(0, 0, 2)) {
			t.Errorf("%s: in-place Add = %v carry %d", tb.name, a, c)
		}
	}
}

func TestKernelPanicsOnContractViolation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		fn   func(Kernel)
	}{
		{"add_short_a", func(k Kernel) { k.Add(make([]Word, 2), ws(1), ws(1, 2)) }},
		{"add_short_dst", func(k Kernel) { k.Add(make([]Word, 1), ws(1, 2), ws(1)) }},
		{"mul_short_dst", func(k Kernel) { k.Mul(make([]Word, 2), ws(1, 2), ws(1)) }},
		{"div_by_zero", func(k Kernel) { k.DivConst(ws(1), 0) }},
		{"cmp_length", func(k Kernel) { k.Cmp(ws(1), ws(1, 2)) }},
	}
	for _, tt := range tests {
		for _, tb := range []Base{Native(), MustBase(10)} {
			t.Run(tt.name+"/"+tb.String(), func(t *testing.T) {
				t.Parallel()
				defer func() {
					if recover() == nil {
						t.Errorf("%s did not panic", tt.name)
					}
				}()
				tt.fn(New(tb))
			})
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Property-Based Tests
// ─────────────────────────────────────────────────────────────────────────────

func TestKernelProperties(t *testing.T) {
	t.Parallel()
	for _, tb := range testBases {
		t.Run(tb.name, func(t *testing.T) {
			t.Parallel()
			b := tb.base
			k := New(b)
			parameters := gopter.DefaultTestParameters()
			parameters.MinSuccessfulTests = 100
			parameters.MaxSize = 24
			properties := gopter.NewProperties(parameters)

			properties.Property("Add matches math/big", prop.ForAll(
				func(x, y []Word) bool {
					x, y = order(x, y)
					dst := make([]Word, len(x)+1)
					dst[len(x)] = k.Add(dst, x, y)
					want := new(big.Int).Add(toBig(b, x), toBig(b, y))
					return toBig(b, dst).Cmp(want) == 0 && allValid(b, dst)
				},
				limbsGen(b), limbsGen(b),
			))

			properties.Property("Sub matches math/big when a >= b", prop.ForAll(
				func(x, y []Word) bool {
					x, y = order(x, y)
					if toBig(b, x).Cmp(toBig(b, y)) < 0 {
						return true
					}
					dst := make([]Word, len(x))
					if k.Sub(dst, x, y) != 0 {
						return false
					}
					want := new(big.Int).Sub(toBig(b, x), toBig(b, y))
					return toBig(b, dst).Cmp(want) == 0 && allValid(b, dst)
				},
				limbsGen(b), limbsGen(b),
			))

			properties.Property("Mul matches math/big", prop.ForAll(
				func(x, y []Word) bool {
					dst := make([]Word, len(x)+len(y))
					k.Mul(dst, x, y)
					want := new(big.Int).Mul(toBig(b, x), toBig(b, y))
					return toBig(b, dst).Cmp(want) == 0 && allValid(b, dst)
				},
				limbsGen(b), limbsGen(b),
			))

			properties.Property("MulConst then DivConst round-trips", prop.ForAll(
				func(x []Word, c uint64) bool {
					if c == 0 {
						c = 1
					}
					c2 := Word(c)
					v := slices.Clone(x)
					carry := k.MulConst(v, c2)
					v = append(v, carry)
					slices.Reverse(v)
					r := k.DivConst(v, c2)
					slices.Reverse(v)
					return r == 0 && slices.Equal(v[:len(x)], x) && v[len(x)] == 0
				},
				limbsGen(b), gen.UInt64Range(0, uint64(b.Max())),
			))

			properties.TestingRun(t)
		})
	}
}

func allValid(b Base, x []Word) bool {
	for _, w := range x {
		if !b.Valid(w) {
			return false
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// Benchmarks
// ─────────────────────────────────────────────────────────────────────────────

func BenchmarkKernelMul(b *testing.B) {
	for _, tb := range []Base{Native(), MustBase(1_000_000_000)} {
		k := New(tb)
		x := make([]Word, 64)
		for i := range x {
			x[i] = tb.Max() - Word(i)
		}
		dst := make([]Word, 128)
		b.Run(tb.String(), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				k.Mul(dst, x, x)
			}
		})
	}
}

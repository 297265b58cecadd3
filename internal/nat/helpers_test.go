package nat

import (
	"math/big"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"

	"github.com/agbru/limbcalc/internal/limb"
)

var testBases = []struct {
	name string
	base limb.Base
}{
	{"native", limb.Native()},
	{"base2", limb.MustBase(2)},
	{"base10", limb.MustBase(10)},
	{"base7919", limb.MustBase(7919)},
	{"base1e9", limb.MustBase(1_000_000_000)},
	{"base2^16", limb.MustBase(1 << 16)},
	{"baseMax", limb.MustBase(^Word(0))},
}

func n(v ...Word) Nat { return v }

// toBig evaluates x in the engine's base.
func toBig(e *Engine, x Nat) *big.Int {
	return new(big.Int).SetBits(e.Words(x))
}

// fromBig converts a non-negative big.Int into the engine's base.
func fromBig(e *Engine, v *big.Int) Nat {
	return e.FromWords(v.Bits())
}

// natGen generates canonical magnitudes in base b.
func natGen(b limb.Base) gopter.Gen {
	return gen.SliceOf(gen.UInt64Range(0, uint64(b.Max()))).Map(func(v []uint64) Nat {
		out := make(Nat, len(v))
		for i, x := range v {
			out[i] = Word(x)
		}
		return Trim(out)
	})
}

func equal(a, b Nat) bool {
	a, b = Trim(a), Trim(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sameBacking reports whether two non-empty vectors share their first limb.
func sameBacking(a, b Nat) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

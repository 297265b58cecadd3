package limb

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"
	"strconv"
	"strings"
)

// Word is an alias for big.Word, the unsigned machine word holding one limb.
type Word = big.Word

// WordBits is the width W of a limb in bits.
const WordBits = bits.UintSize

// ErrInvalidBase is returned when a radix below 2 is requested.
var ErrInvalidBase = errors.New("limb: radix must be at least 2")

// Base is the radix B in which limbs are expressed.
//
// The zero value is the native base 2^W.
type Base struct {
	radix Word // 0 means 2^W
}

// Native returns the native base 2^W.
func Native() Base { return Base{} }

// NewBase returns the explicit base with the given radix.
//
// Parameters:
//   - radix: The radix, at least 2.
//
// Returns:
//   - Base: The base.
//   - error: ErrInvalidBase if radix < 2.
func NewBase(radix Word) (Base, error) {
	if radix < 2 {
		return Base{}, fmt.Errorf("%w: got %d", ErrInvalidBase, radix)
	}
	return Base{radix: radix}, nil
}

// MustBase is like NewBase but panics on an invalid radix.
func MustBase(radix Word) Base {
	b, err := NewBase(radix)
	if err != nil {
		panic(err)
	}
	return b
}

// ParseBase parses a base written as "native", "2^k" (k < W, or k == W for
// native), or a decimal radix.
func ParseBase(s string) (Base, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "native" {
		return Native(), nil
	}
	if exp, ok := strings.CutPrefix(s, "2^"); ok {
		k, err := strconv.Atoi(exp)
		if err != nil || k < 1 || k > WordBits {
			return Base{}, fmt.Errorf("%w: invalid power of two %q", ErrInvalidBase, s)
		}
		if k == WordBits {
			return Native(), nil
		}
		return NewBase(Word(1) << uint(k))
	}
	v, err := strconv.ParseUint(s, 10, WordBits)
	if err != nil {
		return Base{}, fmt.Errorf("%w: %q", ErrInvalidBase, s)
	}
	return NewBase(Word(v))
}

// IsNative reports whether b is the native base 2^W.
func (b Base) IsNative() bool { return b.radix == 0 }

// Radix returns the explicit radix, or 0 for the native base.
func (b Base) Radix() Word { return b.radix }

// Max returns B-1, the largest limb value.
func (b Base) Max() Word {
	if b.radix == 0 {
		return ^Word(0)
	}
	return b.radix - 1
}

// Valid reports whether x is a limb of this base.
func (b Base) Valid(x Word) bool { return b.radix == 0 || x < b.radix }

// String returns "2^W" for the native base and the decimal radix otherwise.
func (b Base) String() string {
	if b.radix == 0 {
		return "2^" + strconv.Itoa(WordBits)
	}
	return strconv.FormatUint(uint64(b.radix), 10)
}

// AddWW returns x + y + c as a limb and a carry, with x, y < B and c ≤ 1.
func (b Base) AddWW(x, y, c Word) (sum, carry Word) {
	s, cc := bits.Add(uint(x), uint(y), uint(c))
	if b.radix == 0 {
		return Word(s), Word(cc)
	}
	// x+y+c < 2B, so at most one subtraction of B is needed. When the
	// machine add overflowed the wrapped subtraction still yields the limb.
	if cc != 0 || Word(s) >= b.radix {
		return Word(s) - b.radix, 1
	}
	return Word(s), 0
}

// SubWW returns x - y - c as a limb and a borrow, with x, y < B and c ≤ 1.
func (b Base) SubWW(x, y, c Word) (diff, borrow Word) {
	d, bb := bits.Sub(uint(x), uint(y), uint(c))
	if bb != 0 && b.radix != 0 {
		return Word(d) + b.radix, 1
	}
	return Word(d), Word(bb)
}

// MulWW returns the two-limb product x*y = hi*B + lo.
func (b Base) MulWW(x, y Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	if b.radix == 0 {
		return Word(h), Word(l)
	}
	q, r := bits.Div(h, l, uint(b.radix))
	return Word(q), Word(r)
}

// mulAddWWW returns x*y + c + d as two limbs. The result is below B^2 for
// all limbs x, y, c, d.
func (b Base) mulAddWWW(x, y, c, d Word) (hi, lo Word) {
	h, l := bits.Mul(uint(x), uint(y))
	var cc uint
	l, cc = bits.Add(l, uint(c), 0)
	h += cc
	l, cc = bits.Add(l, uint(d), 0)
	h += cc
	if b.radix == 0 {
		return Word(h), Word(l)
	}
	q, r := bits.Div(h, l, uint(b.radix))
	return Word(q), Word(r)
}

// DivWW divides the two-limb value hi*B + lo by d. It requires hi < d.
func (b Base) DivWW(hi, lo, d Word) (q, r Word) {
	if b.radix == 0 {
		qq, rr := bits.Div(uint(hi), uint(lo), uint(d))
		return Word(qq), Word(rr)
	}
	h, l := bits.Mul(uint(hi), uint(b.radix))
	var cc uint
	l, cc = bits.Add(l, uint(lo), 0)
	h += cc
	qq, rr := bits.Div(h, l, uint(d))
	return Word(qq), Word(rr)
}

// AddOverflow returns x + y and whether the sum is not representable as a
// single limb (x + y ≥ B).
func (b Base) AddOverflow(x, y Word) (Word, bool) {
	s, cc := bits.Add(uint(x), uint(y), 0)
	if b.radix == 0 {
		return Word(s), cc != 0
	}
	return Word(s), cc != 0 || Word(s) >= b.radix
}

// Normalizer returns the factor d that scales a divisor with most
// significant limb top so that its new top limb is at least ⌊B/2⌋ without
// growing its length. top must be nonzero.
//
// In the native base d is the power of two 2^(W - bitlen(top)); otherwise it
// is ⌊B/(top+1)⌋.
func (b Base) Normalizer(top Word) Word {
	if top == 0 {
		panic("limb: normalizer of a zero limb")
	}
	if b.radix == 0 {
		return Word(1) << uint(WordBits-bits.Len(uint(top)))
	}
	return b.radix / (top + 1)
}

// BitLen returns the number of bits needed to represent x; 0 for x == 0.
func BitLen(x Word) int { return bits.Len(uint(x)) }

package nat

import (
	"math/bits"

	"github.com/agbru/limbcalc/internal/limb"
)

// Add returns a + b.
func (e *Engine) Add(a, b Nat) Nat {
	a, b = Trim(a), Trim(b)
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(a) == 0 {
		return nil
	}
	z := make(Nat, len(a)+1)
	z[len(a)] = e.k.Add(z, a, b)
	return Trim(z)
}

// Sub returns the sign and magnitude of a - b.
//
// The sign is decided by length first; for equal lengths the operands are
// restricted to the prefix below their highest differing limb, and equal
// operands give (Zero, empty).
func (e *Engine) Sub(a, b Nat) (Sign, Nat) {
	a, b = Trim(a), Trim(b)
	switch {
	case len(a) > len(b):
		return Positive, e.sub(a, b)
	case len(a) < len(b):
		return Negative, e.sub(b, a)
	}
	i := len(a) - 1
	for i >= 0 && a[i] == b[i] {
		i--
	}
	if i < 0 {
		return Zero, nil
	}
	a, b = a[:i+1], b[:i+1]
	if a[i] > b[i] {
		return Positive, e.sub(a, b)
	}
	return Negative, e.sub(b, a)
}

// sub returns x - y for x ≥ y as a fresh canonical vector.
func (e *Engine) sub(x, y Nat) Nat {
	z := make(Nat, len(x))
	if e.k.Sub(z, x, y) != 0 {
		panic("nat: subtraction underflow")
	}
	return Trim(z)
}

// subAssign sets x to x - y in place for an owned x ≥ y and returns it
// trimmed.
func (e *Engine) subAssign(x, y Nat) Nat {
	if len(y) > len(x) || e.k.Sub(x, x, y) != 0 {
		panic("nat: subtraction underflow")
	}
	return Trim(x)
}

// Cmp compares a and b and returns -1, 0 or +1.
func (e *Engine) Cmp(a, b Nat) int {
	a, b = Trim(a), Trim(b)
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return e.k.Cmp(a, b)
}

// FromWord converts the machine integer x into the engine's base.
func (e *Engine) FromWord(x Word) Nat {
	if x == 0 {
		return nil
	}
	if e.base.Valid(x) {
		return Nat{x}
	}
	radix := e.base.Radix()
	var z Nat
	for x != 0 {
		z = append(z, x%radix)
		x /= radix
	}
	return z
}

// BitLen returns the number of bits of the value of x; 0 for zero.
//
// In the native base and in bases 2^k this is exact arithmetic on the top
// limb. Other bases convert to base 2^(W-1) first.
func (e *Engine) BitLen(x Nat) int {
	x = Trim(x)
	if len(x) == 0 {
		return 0
	}
	top := limb.BitLen(x[len(x)-1])
	if e.base.IsNative() {
		return (len(x)-1)*limb.WordBits + top
	}
	if r := e.base.Radix(); r&(r-1) == 0 {
		return (len(x)-1)*bits.TrailingZeros(uint(r)) + top
	}
	const shift = limb.WordBits - 1
	digits := e.ConvertFromInternal(Word(1)<<shift, x)
	return (len(digits)-1)*shift + limb.BitLen(digits[len(digits)-1])
}

// Words returns the value of x as native machine words, least significant
// first.
func (e *Engine) Words(x Nat) []Word {
	x = Trim(x)
	if e.base.IsNative() {
		return clone(x)
	}
	return e.toNative(x)
}

// Package bigint provides signed integers on top of the nat magnitude engine.
//
// An Int is immutable: every operation returns a new value. Operands of one
// operation must come from the same engine.
package bigint

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"fortio.org/safecast"

	"github.com/agbru/limbcalc/internal/nat"
)

// ErrEngineMismatch is the panic value when operands belong to engines with
// different bases.
var ErrEngineMismatch = errors.New("bigint: operands use different limb bases")

// ErrInvalidLimb reports a limb that is not below the engine's base.
var ErrInvalidLimb = errors.New("bigint: limb out of range for base")

// Int is a signed integer: a sign and a canonical magnitude.
type Int struct {
	eng *nat.Engine
	neg bool
	abs nat.Nat
}

func newInt(e *nat.Engine, neg bool, abs nat.Nat) *Int {
	abs = nat.Trim(abs)
	return &Int{eng: e, neg: neg && len(abs) > 0, abs: abs}
}

// FromInt64 returns x in engine e.
func FromInt64(e *nat.Engine, x int64) *Int {
	neg := x < 0
	u := uint64(x)
	if neg {
		u = -u
	}
	return newInt(e, neg, fromUint64(e, u))
}

func fromUint64(e *nat.Engine, u uint64) nat.Nat {
	if w, err := safecast.Conv[nat.Word](u); err == nil {
		return e.FromWord(w)
	}
	return e.FromWords([]nat.Word{nat.Word(u & 0xffffffff), nat.Word(u >> 32)})
}

// FromBig returns the value of x in engine e.
func FromBig(e *nat.Engine, x *big.Int) *Int {
	return newInt(e, x.Sign() < 0, e.FromWords(x.Bits()))
}

// Parse reads s in the given radix (2 to 36). s may start with '+' or '-';
// the remaining characters must all be digits.
func Parse(e *nat.Engine, s string, radix int) (*Int, error) {
	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg, s = true, s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	abs, err := e.ConvertFromString(radix, s)
	if err != nil {
		return nil, err
	}
	return newInt(e, neg, abs), nil
}

// MustParse is like Parse but panics on error. For tests and constants.
func MustParse(e *nat.Engine, s string, radix int) *Int {
	x, err := Parse(e, s, radix)
	if err != nil {
		panic(err)
	}
	return x
}

// FromLimbs returns the integer with the given sign and magnitude limbs,
// least significant first. Trailing zero limbs are dropped.
func FromLimbs(e *nat.Engine, neg bool, limbs []nat.Word) (*Int, error) {
	b := e.Base()
	for i, w := range limbs {
		if !b.Valid(w) {
			return nil, fmt.Errorf("%w: limb %d is %d, base %s", ErrInvalidLimb, i, w, b)
		}
	}
	return newInt(e, neg, append(nat.Nat(nil), limbs...)), nil
}

// Engine returns the engine x belongs to.
func (x *Int) Engine() *nat.Engine { return x.eng }

// Sign returns -1, 0 or +1.
func (x *Int) Sign() int {
	switch {
	case len(x.abs) == 0:
		return 0
	case x.neg:
		return -1
	}
	return 1
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool { return len(x.abs) == 0 }

// Limbs returns a copy of the magnitude of x.
func (x *Int) Limbs() nat.Nat { return append(nat.Nat(nil), x.abs...) }

// Neg returns -x.
func (x *Int) Neg() *Int { return newInt(x.eng, !x.neg, x.abs) }

// Abs returns |x|.
func (x *Int) Abs() *Int { return newInt(x.eng, false, x.abs) }

func (x *Int) check(y *Int) {
	if x.eng != y.eng && x.eng.Base() != y.eng.Base() {
		panic(ErrEngineMismatch)
	}
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	x.check(y)
	if x.neg == y.neg {
		return newInt(x.eng, x.neg, x.eng.Add(x.abs, y.abs))
	}
	sign, d := x.eng.Sub(x.abs, y.abs)
	// |x| - |y| carries the sign of x when positive.
	return newInt(x.eng, x.neg == (sign == nat.Positive), d)
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int { return x.Add(y.Neg()) }

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	x.check(y)
	return newInt(x.eng, x.neg != y.neg, x.eng.Mul(x.abs, y.abs))
}

// QuoRem returns the quotient truncated toward zero and the remainder, which
// takes the sign of x, so that x == q*y + r and |r| < |y|.
func (x *Int) QuoRem(y *Int) (q, r *Int, err error) {
	x.check(y)
	qa, ra, err := x.eng.Div(x.abs, y.abs)
	if err != nil {
		return nil, nil, err
	}
	return newInt(x.eng, x.neg != y.neg, qa), newInt(x.eng, x.neg, ra), nil
}

// Quo returns x / y truncated toward zero.
func (x *Int) Quo(y *Int) (*Int, error) {
	q, _, err := x.QuoRem(y)
	return q, err
}

// Rem returns the remainder of x / y with the sign of x.
func (x *Int) Rem(y *Int) (*Int, error) {
	_, r, err := x.QuoRem(y)
	return r, err
}

// Cmp returns -1, 0 or +1 as x is less than, equal to or greater than y.
func (x *Int) Cmp(y *Int) int {
	x.check(y)
	switch {
	case x.Sign() < y.Sign():
		return -1
	case x.Sign() > y.Sign():
		return 1
	}
	c := x.eng.Cmp(x.abs, y.abs)
	if x.neg {
		return -c
	}
	return c
}

// Text returns x in radix 2 to 36 with a leading '-' when negative.
func (x *Int) Text(radix int) (string, error) {
	s, err := x.eng.Text(x.abs, radix)
	if err != nil {
		return "", err
	}
	if x.neg {
		return "-" + s, nil
	}
	return s, nil
}

// String returns x in decimal.
func (x *Int) String() string {
	s, _ := x.Text(10)
	return s
}

// Format implements fmt.Formatter for the verbs %d, %x, %X, %o, %b, %s and %v.
func (x *Int) Format(s fmt.State, verb rune) {
	radix := 10
	switch verb {
	case 'x', 'X':
		radix = 16
	case 'o':
		radix = 8
	case 'b':
		radix = 2
	case 'd', 's', 'v':
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", verb, x.String())
		return
	}
	txt, _ := x.Text(radix)
	if verb == 'X' {
		txt = strings.ToUpper(txt)
	}
	fmt.Fprint(s, txt)
}

// Big returns x as a math/big integer.
func (x *Int) Big() *big.Int {
	v := new(big.Int).SetBits(x.eng.Words(x.abs))
	if x.neg {
		v.Neg(v)
	}
	return v
}

// Factorial returns n! in engine e.
func Factorial(e *nat.Engine, n uint64) *Int {
	acc := e.FromWord(1)
	for i := uint64(2); i <= n; i++ {
		acc = e.Mul(acc, fromUint64(e, i))
	}
	return newInt(e, false, acc)
}

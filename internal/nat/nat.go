package nat

import (
	"errors"

	"github.com/agbru/limbcalc/internal/limb"
)

// Word is one limb.
type Word = limb.Word

// Nat is a magnitude: limbs least significant first, each below the base.
type Nat []Word

// Sign is the sign of a subtraction result.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
)

// ErrDividedByZero is returned by Div, Quo and Rem for an empty divisor.
var ErrDividedByZero = errors.New("divided by zero")

// Trim returns x without its most-significant zero limbs. It reslices x and
// does not copy.
func Trim(x Nat) Nat {
	i := len(x)
	for i > 0 && x[i-1] == 0 {
		i--
	}
	return x[:i]
}

// IsCanonical reports whether x has no most-significant zero limb and every
// limb is valid in base b.
func IsCanonical(b limb.Base, x Nat) bool {
	if len(x) > 0 && x[len(x)-1] == 0 {
		return false
	}
	for _, w := range x {
		if !b.Valid(w) {
			return false
		}
	}
	return true
}

// IsZero reports whether x is zero.
func (x Nat) IsZero() bool { return len(Trim(x)) == 0 }

// clone returns a fresh copy of x, nil for an empty x.
func clone(x Nat) Nat {
	if len(x) == 0 {
		return nil
	}
	z := make(Nat, len(x))
	copy(z, x)
	return z
}

// reverse reverses x in place, converting between the two limb orders.
func reverse(x []Word) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

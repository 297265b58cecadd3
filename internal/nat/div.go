package nat

import (
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
)

// Div returns the quotient and remainder of a / b, with 0 ≤ r < b.
//
// It returns ErrDividedByZero for an empty divisor. Divisors of one limb use
// the scalar kernel; longer ones use Knuth's Algorithm D.
func (e *Engine) Div(a, b Nat) (q, r Nat, err error) {
	a, b = Trim(a), Trim(b)
	switch {
	case len(b) == 0:
		return nil, nil, ErrDividedByZero
	case len(b) == 1 && b[0] == 1:
		e.rec.RecordPath("div", "identity")
		return clone(a), nil, nil
	case len(b) == 1:
		e.rec.RecordPath("div", "scalar")
		q, rem := e.divScalar(a, b[0])
		return q, e.FromWord(rem), nil
	case len(b) > len(a):
		e.rec.RecordPath("div", "short")
		return nil, clone(a), nil
	}
	e.rec.RecordPath("div", "knuth")
	q, r = e.divKnuth(a, b)
	return q, r, nil
}

// Quo returns a / b.
func (e *Engine) Quo(a, b Nat) (Nat, error) {
	q, _, err := e.Div(a, b)
	return q, err
}

// Rem returns a mod b.
func (e *Engine) Rem(a, b Nat) (Nat, error) {
	_, r, err := e.Div(a, b)
	return r, err
}

// divScalar divides a by the single limb d.
func (e *Engine) divScalar(a Nat, d Word) (Nat, Word) {
	q := clone(a)
	reverse(q)
	r := e.k.DivConst(q, d)
	reverse(q)
	return Trim(q), r
}

// divKnuth implements Algorithm D (TAOCP vol. 2, 4.3.1) for len(a) ≥ len(b) ≥ 2.
func (e *Engine) divKnuth(a, b Nat) (Nat, Nat) {
	n := len(b)
	m := len(a) - n
	base := e.base

	// D1: scale both operands so the divisor's top limb is at least B/2.
	d := base.Normalizer(b[n-1])
	e.log.Debug("long division",
		logging.Int("dividend_limbs", len(a)),
		logging.Int("divisor_limbs", n),
		logging.Uint64("normalizer", uint64(d)))

	v := limb.Acquire(n)
	defer limb.Release(v)
	copy(v, b)
	if e.k.MulConst(v, d) != 0 {
		panic("nat: normalized divisor grew")
	}

	u := limb.Acquire(len(a) + 1)
	defer limb.Release(u)
	copy(u, a)
	u[len(a)] = e.k.MulConst(u[:len(a)], d)

	qv := limb.Acquire(n + 1)
	defer limb.Release(qv)

	q := make(Nat, m+1)
	vn1, vn2 := v[n-1], v[n-2]

	for j := m; j >= 0; j-- {
		// D3: trial digit from the top two limbs, refined with the third.
		ujn, ujn1, ujn2 := u[j+n], u[j+n-1], u[j+n-2]
		var qhat, rhat Word
		var overflow bool
		if ujn >= vn1 {
			qhat = base.Max()
			rhat, overflow = base.AddOverflow(ujn1, vn1)
		} else {
			qhat, rhat = base.DivWW(ujn, ujn1, vn1)
		}
		for !overflow {
			hi, lo := base.MulWW(qhat, vn2)
			if hi < rhat || (hi == rhat && lo <= ujn2) {
				break
			}
			qhat--
			rhat, overflow = base.AddOverflow(rhat, vn1)
		}

		// D4-D6: multiply and subtract, correcting an estimate one too large.
		copy(qv, v)
		qv[n] = e.k.MulConst(qv[:n], qhat)
		w := window(u, j, n+1)
		if e.k.Cmp(qv, w) > 0 {
			qhat--
			if e.k.Sub(qv, qv, v) != 0 {
				panic("nat: trial product underflow")
			}
		}
		if e.k.Sub(w, w, qv) != 0 {
			panic("nat: quotient digit too large")
		}
		q[j] = qhat
	}

	// D8: unscale the remainder.
	r := clone(Trim(u[:n]))
	reverse(r)
	if e.k.DivConst(r, d) != 0 {
		panic("nat: remainder not divisible by normalizer")
	}
	reverse(r)
	return Trim(q), Trim(r)
}

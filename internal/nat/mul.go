package nat

import (
	"golang.org/x/sync/errgroup"

	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
)

// MulFunc multiplies two magnitudes. It is the base case of Karatsuba.
type MulFunc func(a, b Nat) Nat

// BaseMul returns a * b using the schoolbook kernel.
func (e *Engine) BaseMul(a, b Nat) Nat {
	a, b = Trim(a), Trim(b)
	switch {
	case len(a) == 0 || len(b) == 0:
		return nil
	case len(a) == 1 && a[0] == 1:
		return clone(b)
	case len(b) == 1 && b[0] == 1:
		return clone(a)
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	z := make(Nat, len(a)+len(b))
	e.k.Mul(z, a, b)
	return Trim(z)
}

// Mul returns a * b with the engine's Karatsuba threshold.
func (e *Engine) Mul(a, b Nat) Nat {
	a, b = Trim(a), Trim(b)
	if len(a) <= e.opts.KaratsubaThreshold || len(b) <= e.opts.KaratsubaThreshold {
		e.rec.RecordPath("mul", "schoolbook")
		return e.BaseMul(a, b)
	}
	e.rec.RecordPath("mul", "karatsuba")
	e.log.Debug("karatsuba multiply",
		logging.Int("a_limbs", len(a)),
		logging.Int("b_limbs", len(b)),
		logging.Int("threshold", e.opts.KaratsubaThreshold))
	return e.karatsuba(a, b, e.opts.KaratsubaThreshold, e.BaseMul, 0)
}

// Karatsuba returns a * b, splitting recursively while both operands are
// longer than threshold limbs and multiplying smaller operands with base.
// A threshold below 1 acts as 1.
func (e *Engine) Karatsuba(a, b Nat, threshold int, base MulFunc) Nat {
	if threshold < 1 {
		threshold = 1
	}
	return e.karatsuba(Trim(a), Trim(b), threshold, base, 0)
}

func (e *Engine) karatsuba(a, b Nat, threshold int, base MulFunc, depth int) Nat {
	if len(a) <= threshold || len(b) <= threshold {
		return base(a, b)
	}

	l := max(len(a), len(b)) / 2
	a0, a1 := split(a, l)
	b0, b1 := split(b, l)

	var z0, z1, z2 Nat
	middle := func() Nat {
		return e.karatsuba(e.Add(b0, b1), e.Add(a0, a1), threshold, base, depth+1)
	}
	if e.parallel(a, b, depth) {
		var g errgroup.Group
		g.Go(func() error { z0 = e.karatsuba(a0, b0, threshold, base, depth+1); return nil })
		g.Go(func() error { z2 = e.karatsuba(a1, b1, threshold, base, depth+1); return nil })
		g.Go(func() error { z1 = middle(); return nil })
		_ = g.Wait()
	} else {
		z0 = e.karatsuba(a0, b0, threshold, base, depth+1)
		z2 = e.karatsuba(a1, b1, threshold, base, depth+1)
		z1 = middle()
	}
	z1 = e.subAssign(z1, z2)
	z1 = e.subAssign(z1, z0)

	// The product has at most 4l+2 limbs; 6l+1 covers every window with
	// room for the carries.
	acc := limb.Acquire(6*l + 1)
	defer limb.Release(acc)
	e.addAt(acc, z0, 0)
	e.addAt(acc, z1, l)
	e.addAt(acc, z2, 2*l)
	return clone(Trim(acc))
}

func (e *Engine) parallel(a, b Nat, depth int) bool {
	pt := e.opts.ParallelThreshold
	return pt > 0 && depth < parallelDepth && len(a) >= pt && len(b) >= pt
}

// split returns the low l limbs of x and the rest, both trimmed. The low half
// is capped so it cannot grow into the high half.
func split(x Nat, l int) (lo, hi Nat) {
	if l >= len(x) {
		return x, nil
	}
	return Trim(x[:l:l]), Trim(x[l:])
}

// addAt adds x into acc starting at limb offset off and propagates the carry
// through the rest of acc.
func (e *Engine) addAt(acc []Word, x Nat, off int) {
	if len(x) == 0 {
		return
	}
	w := window(acc, off, len(x))
	if c := e.k.Add(w, w, x); c != 0 {
		if e.k.AddConst(acc[off+len(x):], c) != 0 {
			panic("nat: accumulator overflow")
		}
	}
}

// window returns the bounds-checked view acc[off : off+n].
func window(acc []Word, off, n int) []Word {
	if off < 0 || n < 0 || off+n > len(acc) {
		panic("nat: window out of range")
	}
	return acc[off : off+n : off+n]
}

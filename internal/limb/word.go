package limb

import "math/bits"

// wordKernel implements Kernel for the native base 2^W. Carries are the
// machine overflow flags, so the vector loops are those of math/big.
type wordKernel struct{}

func (wordKernel) Base() Base { return Native() }

func (wordKernel) Add(dst, a, b []Word) Word {
	checkBinary("Add", dst, a, b)
	n := len(b)
	c := vecAdd(dst[:n], a[:n], b)
	return vecAddW(dst[n:len(a)], a[n:], c)
}

func (wordKernel) Sub(dst, a, b []Word) Word {
	checkBinary("Sub", dst, a, b)
	n := len(b)
	c := vecSub(dst[:n], a[:n], b)
	return vecSubW(dst[n:len(a)], a[n:], c)
}

func (wordKernel) Mul(dst, a, b []Word) {
	n := len(a) + len(b)
	if len(dst) < n {
		panic("limb: Mul destination too short")
	}
	dst = dst[:n]
	clear(dst)
	if len(a) == 0 {
		return
	}
	for j, bj := range b {
		if bj == 0 {
			continue
		}
		dst[len(a)+j] = vecAddMul(dst[j:j+len(a)], a, bj)
	}
}

func (wordKernel) AddConst(dst []Word, c Word) Word { return vecAddW(dst, dst, c) }

func (wordKernel) SubConst(dst []Word, c Word) Word { return vecSubW(dst, dst, c) }

func (wordKernel) MulConst(dst []Word, c Word) Word { return vecMulAddW(dst, dst, c, 0) }

func (wordKernel) DivConst(dst []Word, c Word) Word {
	if c == 0 {
		panic("limb: DivConst by zero")
	}
	var r uint
	for i, x := range dst {
		var q uint
		q, r = bits.Div(r, uint(x), uint(c))
		dst[i] = Word(q)
	}
	return Word(r)
}

func (wordKernel) Cmp(a, b []Word) int { return cmpVV(a, b) }

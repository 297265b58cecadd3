package limb

// radixKernel implements Kernel for an explicit radix. Every limb operation
// goes through the scalar helpers of Base, which keep limbs below B.
type radixKernel struct {
	base Base
}

func (k radixKernel) Base() Base { return k.base }

func (k radixKernel) Add(dst, a, b []Word) Word {
	checkBinary("Add", dst, a, b)
	var c Word
	for i := range b {
		dst[i], c = k.base.AddWW(a[i], b[i], c)
	}
	for i := len(b); i < len(a); i++ {
		dst[i], c = k.base.AddWW(a[i], 0, c)
	}
	return c
}

func (k radixKernel) Sub(dst, a, b []Word) Word {
	checkBinary("Sub", dst, a, b)
	var c Word
	for i := range b {
		dst[i], c = k.base.SubWW(a[i], b[i], c)
	}
	for i := len(b); i < len(a); i++ {
		dst[i], c = k.base.SubWW(a[i], 0, c)
	}
	return c
}

func (k radixKernel) Mul(dst, a, b []Word) {
	n := len(a) + len(b)
	if len(dst) < n {
		panic("limb: Mul destination too short")
	}
	dst = dst[:n]
	clear(dst)
	for j, bj := range b {
		if bj == 0 {
			continue
		}
		var c Word
		for i, ai := range a {
			c, dst[i+j] = k.base.mulAddWWW(ai, bj, dst[i+j], c)
		}
		dst[len(a)+j] = c
	}
}

func (k radixKernel) AddConst(dst []Word, c Word) Word {
	for i := 0; i < len(dst) && c != 0; i++ {
		dst[i], c = k.base.AddWW(dst[i], c, 0)
	}
	return c
}

func (k radixKernel) SubConst(dst []Word, c Word) Word {
	for i := 0; i < len(dst) && c != 0; i++ {
		dst[i], c = k.base.SubWW(dst[i], c, 0)
	}
	return c
}

func (k radixKernel) MulConst(dst []Word, c Word) Word {
	var carry Word
	for i, x := range dst {
		carry, dst[i] = k.base.mulAddWWW(x, c, carry, 0)
	}
	return carry
}

func (k radixKernel) DivConst(dst []Word, c Word) Word {
	if c == 0 {
		panic("limb: DivConst by zero")
	}
	var r Word
	for i, x := range dst {
		dst[i], r = k.base.DivWW(r, x, c)
	}
	return r
}

func (k radixKernel) Cmp(a, b []Word) int { return cmpVV(a, b) }

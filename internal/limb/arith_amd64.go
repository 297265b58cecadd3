//go:build amd64

package limb

// vecAdd computes z = x + y and returns the carry.
// Delegates to math/big's addVV (declared in arith_decl.go).
func vecAdd(z, x, y []Word) Word {
	if len(z) == 0 {
		return 0
	}
	return addVV(z, x, y)
}

// vecSub computes z = x - y and returns the borrow.
func vecSub(z, x, y []Word) Word {
	if len(z) == 0 {
		return 0
	}
	return subVV(z, x, y)
}

// vecAddW computes z = x + y for a single word y and returns the carry.
func vecAddW(z, x []Word, y Word) Word {
	if len(z) == 0 {
		return y
	}
	return addVW(z, x, y)
}

// vecSubW computes z = x - y for a single word y and returns the borrow.
func vecSubW(z, x []Word, y Word) Word {
	if len(z) == 0 {
		return y
	}
	return subVW(z, x, y)
}

// vecMulAddW computes z = x*y + r and returns the carry.
func vecMulAddW(z, x []Word, y, r Word) Word {
	if len(z) == 0 {
		return r
	}
	return mulAddVWW(z, x, y, r)
}

// vecAddMul computes z += x*y and returns the carry.
func vecAddMul(z, x []Word, y Word) Word {
	if len(z) == 0 {
		return 0
	}
	return addMulVVW(z, x, y)
}

// accelerated reports whether the vector routines run on math/big assembly.
const accelerated = true

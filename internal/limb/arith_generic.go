//go:build !amd64

// Portable dispatch for architectures where the math/big assembly is not
// wired. On amd64 these functions live in arith_amd64.go.

package limb

func vecAdd(z, x, y []Word) Word { return addVV_g(z, x, y) }

func vecSub(z, x, y []Word) Word { return subVV_g(z, x, y) }

func vecAddW(z, x []Word, y Word) Word { return addVW_g(z, x, y) }

func vecSubW(z, x []Word, y Word) Word { return subVW_g(z, x, y) }

func vecMulAddW(z, x []Word, y, r Word) Word { return mulAddVWW_g(z, x, y, r) }

func vecAddMul(z, x []Word, y Word) Word { return addMulVVW_g(z, x, y) }

// accelerated reports whether the vector routines run on math/big assembly.
const accelerated = false

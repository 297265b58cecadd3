package limb

//go:generate mockgen -destination=mocks/mock_kernel.go -package=mocks github.com/agbru/limbcalc/internal/limb Kernel

// Kernel is the vector contract the magnitude arithmetic is written against.
//
// Slices are least-significant limb first unless stated otherwise. For the
// binary operations len(a) ≥ len(b). Add and Sub allow dst to be exactly a;
// every other overlap between a destination and an input is a contract
// violation. Undersized destinations panic.
type Kernel interface {
	// Base returns the radix every operation works in.
	Base() Base

	// Add stores a + b into dst[:len(a)] and returns the final carry.
	Add(dst, a, b []Word) Word

	// Sub stores a - b into dst[:len(a)] and returns the final borrow.
	// A nonzero borrow means the a ≥ b precondition was violated.
	Sub(dst, a, b []Word) Word

	// Mul stores the schoolbook product a * b into dst[:len(a)+len(b)].
	Mul(dst, a, b []Word)

	// AddConst adds c to dst in place and returns the carry out.
	AddConst(dst []Word, c Word) Word

	// SubConst subtracts c from dst in place and returns the borrow out.
	SubConst(dst []Word, c Word) Word

	// MulConst multiplies dst by c in place and returns the carry limb.
	MulConst(dst []Word, c Word) Word

	// DivConst divides dst, most significant limb first, by c in place and
	// returns the remainder. c must be nonzero.
	DivConst(dst []Word, c Word) Word

	// Cmp compares two vectors of equal length from the most significant
	// limb and returns -1, 0 or +1.
	Cmp(a, b []Word) int
}

// New returns the kernel for base b.
func New(b Base) Kernel {
	if b.IsNative() {
		return wordKernel{}
	}
	return radixKernel{base: b}
}

// cmpVV is shared by both kernels.
func cmpVV(a, b []Word) int {
	if len(a) != len(b) {
		panic("limb: Cmp of vectors with different lengths")
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// checkBinary panics when the length preconditions of Add and Sub fail.
func checkBinary(op string, dst, a, b []Word) {
	if len(a) < len(b) {
		panic("limb: " + op + " requires len(a) >= len(b)")
	}
	if len(dst) < len(a) {
		panic("limb: " + op + " destination too short")
	}
}

// Package limb provides the low-level limb kernel used by the magnitude
// arithmetic in package nat.
//
// A limb is one digit of a multi-limb integer in radix B. The radix is either
// an explicit value 2 ≤ B < 2^W or the native base 2^W, where W is the machine
// word size. All vectors are least-significant limb first, except the
// dividend of Kernel.DivConst, which is most-significant limb first.
//
// Two kernels implement the same contract:
//
//   - the radix kernel, portable and built on math/bits, for explicit bases;
//   - the word kernel, for the native base, which delegates its vector loops
//     to math/big's assembly on amd64.
//
// Use New to obtain the kernel for a base.
package limb

// Package nat implements magnitude arithmetic on limb vectors: addition,
// signed-result subtraction, schoolbook and Karatsuba multiplication, Knuth
// Algorithm D long division and radix conversion.
//
// A Nat is least-significant limb first and canonical when it has no
// most-significant zero limb; zero is the empty vector. Every exported
// operation of an Engine accepts operands with superfluous high zero limbs,
// returns canonical results, and never returns a vector that aliases an
// input.
//
// An Engine is safe for concurrent use.
package nat

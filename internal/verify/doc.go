// Package verify evaluates an operation on several independent engines
// concurrently and checks that they agree.
//
// The engines are the configured limb engine, a schoolbook-only engine in
// the same base, a limb engine in a different base, math/big and, when built
// with the gmp tag, GMP. A disagreement is reported as an
// apperrors.MismatchError.
package verify

package vectors

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/big"
	"math/rand/v2"

	"github.com/agbru/limbcalc/internal/verify"
)

// GenerateOptions controls Generate.
type GenerateOptions struct {
	// Count is the number of vectors.
	Count int
	// Digits bounds operand magnitudes to 10^Digits.
	Digits int
	// Seed makes the output reproducible.
	Seed uint64
}

// Generate writes Count random vectors for op, computing expected values
// with math/big. Operands are uniform in [-10^Digits, 10^Digits]; divisors
// are never zero.
func Generate(w io.Writer, op verify.Op, opts GenerateOptions) error {
	if opts.Count < 0 || opts.Digits < 1 {
		return fmt.Errorf("vectors: invalid generate options %+v", opts)
	}
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	bound := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(opts.Digits)), nil)

	cw := csv.NewWriter(w)
	for range opts.Count {
		a := randomSigned(r, bound)
		b := randomSigned(r, bound)
		for (op == verify.OpDiv || op == verify.OpRem) && b.Sign() == 0 {
			b = randomSigned(r, bound)
		}
		want, err := verify.BigEngine{}.Eval(context.Background(), op, a, b)
		if err != nil {
			return err
		}
		if err := cw.Write([]string{a.String(), b.String(), want.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// randomSigned returns a uniform integer in [-bound, bound].
func randomSigned(r *rand.Rand, bound *big.Int) *big.Int {
	span := new(big.Int).Lsh(bound, 1)
	span.Add(span, big.NewInt(1))
	v := randBelow(r, span)
	return v.Sub(v, bound)
}

// randBelow returns a uniform integer in [0, n) by rejection sampling.
func randBelow(r *rand.Rand, n *big.Int) *big.Int {
	bitLen := n.BitLen()
	buf := make([]byte, (bitLen+7)/8)
	excess := uint(len(buf)*8 - bitLen)
	v := new(big.Int)
	for {
		for i := range buf {
			buf[i] = byte(r.Uint32())
		}
		buf[0] &= byte(0xff >> excess)
		v.SetBytes(buf)
		if v.Cmp(n) < 0 {
			return v
		}
	}
}

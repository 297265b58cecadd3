//go:build gmp

package verify

import (
	"context"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/limbcalc/internal/nat"
)

func init() {
	extraEngines = append(extraEngines, GMPEngine{})
}

// GMPEngine evaluates with the GMP library through cgo.
type GMPEngine struct{}

// Name implements Engine.
func (GMPEngine) Name() string { return "gmp" }

// Eval implements Engine. Operands cross the cgo boundary as decimal text.
func (GMPEngine) Eval(ctx context.Context, op Op, a, b *big.Int) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	x, _ := new(gmp.Int).SetString(a.String(), 10)
	y, _ := new(gmp.Int).SetString(b.String(), 10)
	z := new(gmp.Int)
	switch op {
	case OpAdd:
		z.Add(x, y)
	case OpSub:
		z.Sub(x, y)
	case OpMul:
		z.Mul(x, y)
	case OpDiv, OpRem:
		if y.Sign() == 0 {
			return nil, nat.ErrDividedByZero
		}
		if op == OpDiv {
			z.Quo(x, y)
		} else {
			z.Rem(x, y)
		}
	default:
		return nil, unknownOp(op)
	}
	out, _ := new(big.Int).SetString(z.String(), 10)
	return out, nil
}

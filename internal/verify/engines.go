package verify

import (
	"context"
	"math"
	"math/big"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

// Engine evaluates an operation on math/big operands. Implementations must be
// safe for concurrent use.
type Engine interface {
	Name() string
	Eval(ctx context.Context, op Op, a, b *big.Int) (*big.Int, error)
}

// LimbEngine evaluates through a limb engine.
type LimbEngine struct {
	name string
	eng  *nat.Engine
}

// NewLimbEngine wraps e under the given name.
func NewLimbEngine(name string, e *nat.Engine) *LimbEngine {
	return &LimbEngine{name: name, eng: e}
}

// Name implements Engine.
func (l *LimbEngine) Name() string { return l.name }

// Eval implements Engine.
func (l *LimbEngine) Eval(ctx context.Context, op Op, a, b *big.Int) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	z, err := Apply(op, bigint.FromBig(l.eng, a), bigint.FromBig(l.eng, b))
	if err != nil {
		return nil, err
	}
	return z.Big(), ctx.Err()
}

// BigEngine evaluates with math/big.
type BigEngine struct{}

// Name implements Engine.
func (BigEngine) Name() string { return bigEngineName }

const bigEngineName = "math/big"

// Eval implements Engine.
func (BigEngine) Eval(ctx context.Context, op Op, a, b *big.Int) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	z := new(big.Int)
	switch op {
	case OpAdd:
		z.Add(a, b)
	case OpSub:
		z.Sub(a, b)
	case OpMul:
		z.Mul(a, b)
	case OpDiv, OpRem:
		if b.Sign() == 0 {
			return nil, nat.ErrDividedByZero
		}
		if op == OpDiv {
			z.Quo(a, b)
		} else {
			z.Rem(a, b)
		}
	default:
		return nil, unknownOp(op)
	}
	return z, nil
}

// extraEngines are registered by optional build-tagged files.
var extraEngines []Engine

// DefaultEngines returns the cross-check set for primary: primary itself,
// a schoolbook-only engine in the same base, a limb engine in an unrelated
// base, math/big and any optional engines compiled in.
func DefaultEngines(primary *nat.Engine) []Engine {
	other := limb.MustBase(1_000_000_000)
	if !primary.Base().IsNative() && primary.Base().Radix() == other.Radix() {
		other = limb.Native()
	}
	engines := []Engine{
		NewLimbEngine("karatsuba", primary),
		NewLimbEngine("schoolbook", nat.NewWithKernel(primary.Kernel(), nat.WithThreshold(math.MaxInt))),
		NewLimbEngine("base "+other.String(), nat.New(other)),
		BigEngine{},
	}
	return append(engines, extraEngines...)
}

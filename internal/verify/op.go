package verify

import (
	"fmt"
	"strings"

	"github.com/agbru/limbcalc/internal/bigint"
)

// Op is a binary integer operation.
type Op string

// Supported operations. Division truncates toward zero and the remainder
// takes the sign of the dividend.
const (
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpMul Op = "mul"
	OpDiv Op = "div"
	OpRem Op = "rem"
)

// Ops lists every operation in a stable order.
var Ops = []Op{OpAdd, OpSub, OpMul, OpDiv, OpRem}

var symbols = map[string]Op{
	"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv, "%": OpRem,
}

// ParseOp accepts an operation name or its symbol (+ - * / %).
func ParseOp(s string) (Op, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if op, ok := symbols[s]; ok {
		return op, nil
	}
	for _, op := range Ops {
		if string(op) == s {
			return op, nil
		}
	}
	return "", fmt.Errorf("unknown operation %q", s)
}

// Symbol returns the infix symbol of op.
func (op Op) Symbol() string {
	for sym, o := range symbols {
		if o == op {
			return sym
		}
	}
	return string(op)
}

// Apply evaluates x op y.
func Apply(op Op, x, y *bigint.Int) (*bigint.Int, error) {
	switch op {
	case OpAdd:
		return x.Add(y), nil
	case OpSub:
		return x.Sub(y), nil
	case OpMul:
		return x.Mul(y), nil
	case OpDiv:
		return x.Quo(y)
	case OpRem:
		return x.Rem(y)
	default:
		return nil, fmt.Errorf("unknown operation %q", op)
	}
}

package cli

import (
	"fmt"
	"strings"

	"github.com/agbru/limbcalc/internal/verify"
)

// ParseExpression splits "a op b" into its operands and operation. Spaces
// are optional and the operator may also be spelled out ("7 div 2"). A sign
// directly in front of an operand belongs to the operand.
func ParseExpression(s string) (a string, op verify.Op, b string, err error) {
	fields := strings.Fields(s)
	if len(fields) == 3 {
		if op, err := verify.ParseOp(fields[1]); err == nil {
			return fields[0], op, fields[2], nil
		}
	}

	compact := strings.Join(fields, "")
	for i := 1; i < len(compact); i++ {
		if !strings.ContainsRune("+-*/%", rune(compact[i])) {
			continue
		}
		op, _ := verify.ParseOp(compact[i : i+1])
		a, b = compact[:i], compact[i+1:]
		if b == "" {
			break
		}
		return a, op, b, nil
	}
	return "", "", "", fmt.Errorf("cannot parse expression %q: want <a> <op> <b>", s)
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

func runREPL(t *testing.T, b limb.Base, input string) string {
	t.Helper()
	r := NewREPL(NewEvaluator(nat.New(b), nil, nil), REPLConfig{Timeout: time.Minute})
	var out bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&out)
	r.Start(context.Background())
	return out.String()
}

func TestREPLSession(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"Arithmetic", "2 * 21\nexit\n", []string{"= 42", "Goodbye!"}},
		{"Previous result", "6*7\nans + 1\n", []string{"= 42", "= 43"}},
		{"Radix switch", "in 16\nout 2\nff + 1\n", []string{"Operand radix: 16", "Result radix: 2", "= 100000000"}},
		{"Factorial", "fact 20\n", []string{"= 2432902008176640000"}},
		{"Limbs", "18446744073709551616 + 0\nlimbs\n", []string{"base 2^64, sign 1, 2 limbs", "[0 1]"}},
		{"Verify toggle", "verify\n10 / 3\n", []string{"Cross-checking: on", "= 3", "Cross-check", "math/big"}},
		{"Division by zero", "1 / 0\n", []string{"Error:", "divided by zero"}},
		{"Unknown command", "frobnicate\n", []string{"Unknown command or expression: frobnicate"}},
		{"Missing previous result", "ans + 1\n", []string{"no previous result"}},
		{"Invalid radix", "in 99\n", []string{"Invalid radix: 99"}},
		{"Status", "status\n", []string{"Limb base:", "2^64", "Karatsuba:"}},
		{"Help", "help\n", []string{"Available commands:", "fact <n>"}},
		{"EOF", "", []string{"Goodbye!"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out := runREPL(t, limb.Native(), tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPLLimbsInDecimalBase(t *testing.T) {
	t.Parallel()
	out := runREPL(t, limb.MustBase(10), "-123 + 0\nlimbs\n")
	if !strings.Contains(out, "base 10, sign -1, 3 limbs") || !strings.Contains(out, "[3 2 1]") {
		t.Errorf("unexpected limbs output:\n%s", out)
	}
}

func TestREPLStopsOnCanceledContext(t *testing.T) {
	t.Parallel()
	r := NewREPL(NewEvaluator(nat.New(limb.Native()), nil, nil), REPLConfig{})
	var out bytes.Buffer
	r.SetInput(strings.NewReader("1 + 1\n"))
	r.SetOutput(&out)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Start(ctx)
	if strings.Contains(out.String(), "= 2") {
		t.Errorf("evaluated after cancellation:\n%s", out.String())
	}
}

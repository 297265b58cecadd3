package cli

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/nat"
	"github.com/agbru/limbcalc/internal/verify"
)

func newTestEvaluator(t *testing.T, b limb.Base) *Evaluator {
	t.Helper()
	return NewEvaluator(nat.New(b, nat.WithThreshold(2)), nil, nil)
}

func bigFrom(t *testing.T, s string, radix int) *big.Int {
	t.Helper()
	v, ok := new(big.Int).SetString(s, radix)
	if !ok {
		t.Fatalf("bad literal %q", s)
	}
	return v
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	const (
		a = "123456789012345678901234567890123456789"
		b = "-98765432109876543210987"
	)
	x, y := bigFrom(t, a, 10), bigFrom(t, b, 10)

	tests := []struct {
		op   verify.Op
		want *big.Int
	}{
		{verify.OpAdd, new(big.Int).Add(x, y)},
		{verify.OpSub, new(big.Int).Sub(x, y)},
		{verify.OpMul, new(big.Int).Mul(x, y)},
		{verify.OpDiv, new(big.Int).Quo(x, y)},
		{verify.OpRem, new(big.Int).Rem(x, y)},
	}
	for _, base := range []limb.Base{limb.Native(), limb.MustBase(10), limb.MustBase(1_000_000_000)} {
		ev := newTestEvaluator(t, base)
		for _, tt := range tests {
			t.Run(base.String()+"/"+string(tt.op), func(t *testing.T) {
				t.Parallel()
				got, err := ev.Evaluate(context.Background(), Request{A: a, B: b, Op: tt.op, InBase: 10})
				if err != nil {
					t.Fatalf("Evaluate() error = %v", err)
				}
				if got.Result.Big().Cmp(tt.want) != 0 {
					t.Errorf("Evaluate() = %s, want %s", got.Result, tt.want)
				}
				if got.X == nil || got.Y == nil {
					t.Error("operands were not kept")
				}
			})
		}
	}
}

func TestEvaluateHexOperands(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t, limb.Native())
	got, err := ev.Evaluate(context.Background(), Request{A: "ffffffffffffffff", B: "1", Op: verify.OpAdd, InBase: 16})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if s, _ := got.Result.Text(16); s != "10000000000000000" {
		t.Errorf("sum = %s, want 10000000000000000", s)
	}
	if n := len(got.Result.Limbs()); n != 2 {
		t.Errorf("limbs = %d, want 2", n)
	}
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t, limb.Native())

	tests := []struct {
		name     string
		req      Request
		exitCode int
		is       error
	}{
		{"invalid operand", Request{A: "12x", B: "1", Op: verify.OpAdd, InBase: 10}, apperrors.ExitErrorConfig, nat.ErrInvalidDigit},
		{"empty operand", Request{A: "", B: "1", Op: verify.OpAdd, InBase: 10}, apperrors.ExitErrorConfig, nil},
		{"division by zero", Request{A: "7", B: "0", Op: verify.OpDiv, InBase: 10}, apperrors.ExitErrorGeneric, nat.ErrDividedByZero},
		{"remainder by zero", Request{A: "7", B: "-0", Op: verify.OpRem, InBase: 10}, apperrors.ExitErrorGeneric, nat.ErrDividedByZero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ev.Evaluate(context.Background(), tt.req)
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := apperrors.ExitCode(err); code != tt.exitCode {
				t.Errorf("ExitCode(%v) = %d, want %d", err, code, tt.exitCode)
			}
			if tt.is != nil && !errors.Is(err, tt.is) && !strings.Contains(err.Error(), tt.is.Error()) {
				t.Errorf("error %v does not match %v", err, tt.is)
			}
		})
	}
}

func TestEvaluateVerify(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t, limb.MustBase(10))
	x := strings.Repeat("987654321", 12)
	y := "-" + strings.Repeat("123456789", 7)

	for _, op := range verify.Ops {
		t.Run(string(op), func(t *testing.T) {
			t.Parallel()
			got, err := ev.Evaluate(context.Background(), Request{A: x, B: y, Op: op, InBase: 10, Verify: true})
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if len(got.Checks) < 4 {
				t.Fatalf("got %d checks, want at least 4", len(got.Checks))
			}
			for _, r := range got.Checks {
				if r.Err != nil {
					t.Errorf("engine %s failed: %v", r.Engine, r.Err)
				} else if r.Value.Cmp(got.Result.Big()) != 0 {
					t.Errorf("engine %s = %s, want %s", r.Engine, r.Value, got.Result)
				}
			}
		})
	}
}

func TestEvaluateRecordsMetrics(t *testing.T) {
	t.Parallel()
	m := metrics.New()
	ev := NewEvaluator(nat.New(limb.Native(), nat.WithRecorder(m)), m, nil)

	if _, err := ev.Evaluate(context.Background(), Request{A: "6", B: "7", Op: verify.OpMul, InBase: 10}); err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	n, err := testutil.GatherAndCount(m.Registry(), "limbcalc_operation_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount() error = %v", err)
	}
	if n != 1 {
		t.Errorf("operation duration series = %d, want 1", n)
	}
}

func TestEvaluateIntsCanceled(t *testing.T) {
	t.Parallel()
	ev := newTestEvaluator(t, limb.Native())
	x := bigint.FromInt64(ev.Engine, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The computation races the canceled context; either outcome is valid
	// but an error must be the context's.
	_, err := ev.EvaluateInts(ctx, verify.OpAdd, x, x, false)
	if err != nil && !errors.Is(err, context.Canceled) {
		t.Errorf("EvaluateInts() error = %v, want context.Canceled", err)
	}
}

func TestParseExpression(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in      string
		a       string
		op      verify.Op
		b       string
		wantErr bool
	}{
		{"1 + 2", "1", verify.OpAdd, "2", false},
		{"1+2", "1", verify.OpAdd, "2", false},
		{"-5 - -3", "-5", verify.OpSub, "-3", false},
		{"5*-3", "5", verify.OpMul, "-3", false},
		{"7 div 2", "7", verify.OpDiv, "2", false},
		{"ff % 7", "ff", verify.OpRem, "7", false},
		{"ans * 2", "ans", verify.OpMul, "2", false},
		{"12 -", "", "", "", true},
		{"-5", "", "", "", true},
		{"hello", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			a, op, b, err := ParseExpression(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseExpression(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if a != tt.a || op != tt.op || b != tt.b {
				t.Errorf("ParseExpression(%q) = (%q, %q, %q), want (%q, %q, %q)", tt.in, a, op, b, tt.a, tt.op, tt.b)
			}
		})
	}
}

func TestPrintExecutionConfig(t *testing.T) {
	t.Parallel()
	e := nat.New(limb.MustBase(1000), nat.WithThreshold(20), nat.WithParallelThreshold(-1))
	var buf bytes.Buffer
	PrintExecutionConfig(config.Default(), e, &buf)
	out := buf.String()
	for _, want := range []string{"Limb base 1000", "Karatsuba=20", "parallel=off"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

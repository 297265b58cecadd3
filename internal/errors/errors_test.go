package apperrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

var errDivZero = errors.New("divided by zero")

func TestConfigError(t *testing.T) {
	t.Parallel()
	err := NewConfigError("invalid radix %d for flag %s", 1, "--in-base")
	if got, want := err.Error(), "invalid radix 1 for flag --in-base"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	var cfg ConfigError
	if !errors.As(err, &cfg) {
		t.Error("expected ConfigError")
	}
}

func TestCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		err     CalculationError
		wantMsg string
	}{
		{"with op", CalculationError{Op: "div", Cause: errDivZero}, "div: divided by zero"},
		{"without op", CalculationError{Cause: errDivZero}, "divided by zero"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if tt.err.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.wantMsg)
			}
			if !errors.Is(tt.err, errDivZero) {
				t.Error("errors.Is does not reach the cause")
			}
		})
	}
}

func TestTimeoutAndValidationErrors(t *testing.T) {
	t.Parallel()
	te := TimeoutError{Operation: "mul", Limit: 2 * time.Second}
	if got := te.Error(); got != `operation "mul" timed out after 2s` {
		t.Errorf("TimeoutError.Error() = %q", got)
	}
	ve := ValidationError{Field: "threshold", Message: "must be positive"}
	if got := ve.Error(); got != `validation error for "threshold": must be positive` {
		t.Errorf("ValidationError.Error() = %q", got)
	}
}

func TestMismatchErrorAbbreviates(t *testing.T) {
	t.Parallel()
	long := strings.Repeat("7", 100)
	e := MismatchError{Op: "mul", Engine: "schoolbook", Expected: long, Got: "12"}
	msg := e.Error()
	if !strings.Contains(msg, `engine "schoolbook"`) || !strings.Contains(msg, "...") {
		t.Errorf("unexpected message %q", msg)
	}
	if strings.Contains(msg, long) {
		t.Error("long operand not abbreviated")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()
	if WrapError(nil, "ctx") != nil {
		t.Error("WrapError(nil) should be nil")
	}
	err := WrapError(errDivZero, "evaluating %s", "a / b")
	if err.Error() != "evaluating a / b: divided by zero" || !errors.Is(err, errDivZero) {
		t.Errorf("WrapError = %v", err)
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{context.Canceled, true},
		{fmt.Errorf("wrapped: %w", context.DeadlineExceeded), true},
		{errDivZero, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsContextError(tt.err); got != tt.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"generic", errors.New("x"), ExitErrorGeneric},
		{"calculation", CalculationError{Op: "div", Cause: errDivZero}, ExitErrorGeneric},
		{"config", NewConfigError("bad"), ExitErrorConfig},
		{"validation", WrapError(ValidationError{Field: "f", Message: "m"}, "ctx"), ExitErrorConfig},
		{"mismatch", MismatchError{Op: "add"}, ExitErrorMismatch},
		{"timeout", TimeoutError{Operation: "mul"}, ExitErrorTimeout},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"canceled", fmt.Errorf("eval: %w", context.Canceled), ExitErrorCanceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

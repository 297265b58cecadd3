package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic failure, including arithmetic errors.
	ExitErrorTimeout  = 2   // The operation exceeded its time budget.
	ExitErrorMismatch = 3   // Cross-checked engines disagreed.
	ExitErrorConfig   = 4   // Invalid flags, environment or input text.
	ExitErrorCanceled = 130 // Interrupted (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as an invalid flag
// value or an unparsable operand.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// CalculationError wraps a failure raised while evaluating an operation,
// keeping the operation name and the original cause.
type CalculationError struct {
	// Op is the operation being evaluated ("div", "rem", ...). May be empty.
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns the cause's message, prefixed by the operation when known.
func (e CalculationError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return e.Op + ": " + e.Cause.Error()
}

// Unwrap returns the original cause for errors.Is and errors.As.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError represents an evaluation that exceeded its time budget.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was abandoned.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MismatchError reports that two engines produced different results for the
// same operation.
type MismatchError struct {
	Op       string
	Engine   string
	Expected string
	Got      string
}

// Error returns a formatted message naming the disagreeing engine.
func (e MismatchError) Error() string {
	return fmt.Sprintf("%s: engine %q disagrees with the reference (want %s, got %s)",
		e.Op, e.Engine, abbreviate(e.Expected), abbreviate(e.Got))
}

func abbreviate(s string) string {
	const edge = 20
	if len(s) <= 2*edge+3 {
		return s
	}
	return s[:edge] + "..." + s[len(s)-edge:]
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ExitCode maps an error to the process exit status.
//
// Parameters:
//   - err: The error returned by a command, possibly nil.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		cfg      ConfigError
		val      ValidationError
		mismatch MismatchError
		timeout  TimeoutError
	)
	switch {
	case errors.As(err, &mismatch):
		return ExitErrorMismatch
	case errors.As(err, &timeout), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfg), errors.As(err, &val):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

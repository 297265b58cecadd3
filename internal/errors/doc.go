// Package apperrors defines the application error types of limbcalc and
// maps them to process exit codes. Arithmetic failures from the engine are
// carried as the Cause of a CalculationError so errors.Is still reaches the
// engine's sentinel errors.
package apperrors

// Package config holds the application configuration and its resolution
// from command-line flags, LIMBCALC_ environment variables and hardware
// heuristics.
package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/pflag"

	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

// EnvPrefix prefixes every environment variable read by the application.
const EnvPrefix = "LIMBCALC_"

// Emit formats accepted by --emit.
const (
	EmitText    = "text"
	EmitJSON    = "json"
	EmitMsgpack = "msgpack"
)

// Log levels accepted by --log-level.
var logLevels = []string{"debug", "info", "warn", "error", "disabled"}

// AppConfig aggregates the settings of one limbcalc invocation.
type AppConfig struct {
	// LimbBase selects the internal radix: "native", "2^k" or a decimal value.
	LimbBase string
	// InBase is the radix of operand text.
	InBase int
	// OutBase is the radix of printed results.
	OutBase int
	// Threshold is the Karatsuba cutoff in limbs. 0 means "resolve".
	Threshold int
	// ParallelThreshold is the operand length from which Karatsuba fans out.
	// 0 means "resolve"; a negative value disables the fan-out.
	ParallelThreshold int
	// Timeout bounds a single evaluation.
	Timeout time.Duration
	// Verify cross-checks results against independent engines.
	Verify bool
	// Emit is the output encoding: text, json or msgpack.
	Emit string
	// LogLevel is the zerolog level name.
	LogLevel string
	// NoColor disables ANSI styling.
	NoColor bool
	// Quiet prints bare results only.
	Quiet bool
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// CalibrationProfile is the path of the TOML calibration profile.
	CalibrationProfile string
}

// Default returns the static defaults at the bottom of the resolution chain.
func Default() AppConfig {
	return AppConfig{
		LimbBase: "native",
		InBase:   10,
		OutBase:  10,
		Timeout:  time.Minute,
		Emit:     EmitText,
		LogLevel: "warn",
	}
}

// BindFlags registers the configuration flags on fs, writing into cfg.
// cfg should hold Default() values beforehand.
func BindFlags(fs *pflag.FlagSet, cfg *AppConfig) {
	fs.StringVar(&cfg.LimbBase, "limb-base", cfg.LimbBase, `internal radix: "native", "2^k" or a decimal value`)
	fs.IntVar(&cfg.InBase, "in-base", cfg.InBase, "radix of operand text (2-36)")
	fs.IntVar(&cfg.OutBase, "out-base", cfg.OutBase, "radix of printed results (2-36)")
	fs.IntVar(&cfg.Threshold, "threshold", cfg.Threshold, "Karatsuba cutoff in limbs (0 = calibrated or estimated)")
	fs.IntVar(&cfg.ParallelThreshold, "parallel-threshold", cfg.ParallelThreshold, "operand length for parallel Karatsuba (0 = estimated, <0 = off)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "time budget per evaluation")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "cross-check results against independent engines")
	fs.StringVar(&cfg.Emit, "emit", cfg.Emit, "output encoding: text, json or msgpack")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: "+strings.Join(logLevels, ", "))
	fs.BoolVar(&cfg.NoColor, "no-color", cfg.NoColor, "disable colored output")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "print bare results only")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", cfg.MetricsAddr, "serve Prometheus metrics on this address")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", cfg.CalibrationProfile, "path of the calibration profile")
}

// Resolver fills configuration values from an intermediate source, such as
// a calibration profile. It must leave values already set untouched.
type Resolver func(AppConfig) AppConfig

// Resolve runs the resolution chain on a flag-populated configuration:
// environment overrides for flags the user did not set, then each resolver
// in order, then hardware estimates for thresholds still unresolved. The
// result is validated.
func Resolve(cfg AppConfig, fs *pflag.FlagSet, resolvers ...Resolver) (AppConfig, error) {
	ApplyEnvOverrides(&cfg, fs)
	for _, r := range resolvers {
		cfg = r(cfg)
	}
	cfg = ApplyAdaptiveThresholds(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for consistency.
//
// Returns:
//   - error: An apperrors.ValidationError naming the first offending field.
func (c AppConfig) Validate() error {
	if _, err := limb.ParseBase(c.LimbBase); err != nil {
		return apperrors.ValidationError{Field: "limb-base", Message: err.Error()}
	}
	for _, r := range []struct {
		field string
		v     int
	}{{"in-base", c.InBase}, {"out-base", c.OutBase}} {
		if r.v < 2 || r.v > nat.MaxTextRadix {
			return apperrors.ValidationError{
				Field:   r.field,
				Message: fmt.Sprintf("radix %d outside [2, %d]", r.v, nat.MaxTextRadix),
			}
		}
	}
	if c.Threshold < 0 {
		return apperrors.ValidationError{Field: "threshold", Message: "must be >= 0"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	switch c.Emit {
	case EmitText, EmitJSON, EmitMsgpack:
	default:
		return apperrors.ValidationError{Field: "emit", Message: fmt.Sprintf("unknown format %q", c.Emit)}
	}
	if !slices.Contains(logLevels, strings.ToLower(c.LogLevel)) {
		return apperrors.ValidationError{Field: "log-level", Message: fmt.Sprintf("unknown level %q", c.LogLevel)}
	}
	return nil
}

// Base returns the parsed limb base. Validate must have succeeded.
func (c AppConfig) Base() limb.Base {
	b, err := limb.ParseBase(c.LimbBase)
	if err != nil {
		return limb.Native()
	}
	return b
}

// EngineOptions returns the engine tuning derived from the configuration.
func (c AppConfig) EngineOptions() nat.Options {
	return nat.Options{
		KaratsubaThreshold: c.Threshold,
		ParallelThreshold:  max(c.ParallelThreshold, 0),
	}
}

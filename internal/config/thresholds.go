package config

import (
	"runtime"

	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/nat"
)

// Threshold resolution chain (highest priority first):
//   1. CLI flags (--threshold, --parallel-threshold)
//   2. Environment variables (LIMBCALC_THRESHOLD, LIMBCALC_PARALLEL_THRESHOLD)
//   3. Cached calibration profile (~/.limbcalc_calibration.toml)
//   4. Adaptive hardware estimation (this file)
//   5. nat.DefaultKaratsubaThreshold

// ApplyAdaptiveThresholds fills thresholds still at their zero value with
// hardware estimates. User-specified values are preserved.
func ApplyAdaptiveThresholds(cfg AppConfig) AppConfig {
	if cfg.Threshold == 0 {
		cfg.Threshold = EstimateOptimalKaratsubaThreshold()
	}
	if cfg.ParallelThreshold == 0 {
		cfg.ParallelThreshold = EstimateOptimalParallelThreshold()
	}
	return cfg
}

// EstimateOptimalKaratsubaThreshold estimates the schoolbook cutoff without
// benchmarking. The assembly carry chains of the native kernel keep the
// schoolbook loop competitive for longer operands.
func EstimateOptimalKaratsubaThreshold() int {
	if limb.GetCPUFeatures().Accelerated {
		return 40
	}
	return nat.DefaultKaratsubaThreshold
}

// EstimateOptimalParallelThreshold estimates the operand length, in limbs,
// from which the three Karatsuba sub-products run concurrently. A negative
// result disables the fan-out.
func EstimateOptimalParallelThreshold() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return -1 // No parallelism
	case numCPU <= 2:
		return 8192
	case numCPU <= 4:
		return 4096
	case numCPU <= 8:
		return 2048
	default:
		return 1024
	}
}

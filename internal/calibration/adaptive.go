// This file generates the candidate thresholds tried during calibration.

package calibration

import (
	"runtime"

	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/limb"
)

// GenerateKaratsubaThresholds returns the schoolbook cutoffs to benchmark,
// in limbs. The assembly kernel shifts the range upwards.
func GenerateKaratsubaThresholds() []int {
	if limb.GetCPUFeatures().Accelerated {
		return []int{8, 16, 24, 32, 40, 48, 64, 96, 128}
	}
	return []int{4, 8, 12, 16, 24, 32, 48, 64}
}

// GenerateQuickKaratsubaThresholds is the reduced set used by --quick.
func GenerateQuickKaratsubaThresholds() []int {
	if limb.GetCPUFeatures().Accelerated {
		return []int{16, 40, 96}
	}
	return []int{8, 16, 32}
}

// GenerateParallelThresholds returns the parallel fan-out thresholds to
// benchmark, in limbs, based on the number of CPU cores. 0 stands for
// sequential Karatsuba and is always first.
func GenerateParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	thresholds := []int{0}

	switch {
	case numCPU == 1:
		return thresholds
	case numCPU <= 4:
		thresholds = append(thresholds, 1024, 2048, 4096, 8192)
	case numCPU <= 8:
		thresholds = append(thresholds, 512, 1024, 2048, 4096, 8192)
	default:
		thresholds = append(thresholds, 256, 512, 1024, 2048, 4096, 8192)
	}

	return thresholds
}

// GenerateQuickParallelThresholds is the reduced set used by --quick.
func GenerateQuickParallelThresholds() []int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return []int{0}
	case numCPU <= 4:
		return []int{0, 2048, 4096}
	default:
		return []int{0, 1024, 2048, 4096}
	}
}

// EstimateOptimalKaratsubaThreshold delegates to config.EstimateOptimalKaratsubaThreshold.
func EstimateOptimalKaratsubaThreshold() int { return config.EstimateOptimalKaratsubaThreshold() }

// EstimateOptimalParallelThreshold delegates to config.EstimateOptimalParallelThreshold.
func EstimateOptimalParallelThreshold() int { return config.EstimateOptimalParallelThreshold() }

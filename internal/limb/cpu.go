package limb

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures describes the processor features relevant to the native
// kernel. math/big selects its carry-chain routines from the same flags.
type CPUFeatures struct {
	Arch        string
	ADX         bool
	BMI2        bool
	AVX2        bool
	AVX512      bool
	ASIMD       bool
	Accelerated bool // vector loops run on math/big assembly
}

// GetCPUFeatures returns the features detected on the running processor.
func GetCPUFeatures() CPUFeatures {
	return CPUFeatures{
		Arch:        runtime.GOARCH,
		ADX:         cpu.X86.HasADX,
		BMI2:        cpu.X86.HasBMI2,
		AVX2:        cpu.X86.HasAVX2,
		AVX512:      cpu.X86.HasAVX512F,
		ASIMD:       cpu.ARM64.HasASIMD,
		Accelerated: accelerated,
	}
}

// String returns a compact description such as "amd64 [ADX BMI2 AVX2] asm".
func (f CPUFeatures) String() string {
	var flags []string
	for _, ff := range []struct {
		name string
		on   bool
	}{
		{"ADX", f.ADX},
		{"BMI2", f.BMI2},
		{"AVX2", f.AVX2},
		{"AVX512", f.AVX512},
		{"ASIMD", f.ASIMD},
	} {
		if ff.on {
			flags = append(flags, ff.name)
		}
	}
	mode := "portable"
	if f.Accelerated {
		mode = "asm"
	}
	return f.Arch + " [" + strings.Join(flags, " ") + "] " + mode
}

package tui

import (
	"time"

	"github.com/agbru/limbcalc/internal/calibration"
)

// sparklineChars maps values 0..7 to Unicode block elements ▁▂▃▄▅▆▇█.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RenderSparkline converts values (0..100) into a sparkline string using
// Unicode blocks. Out-of-range values are clamped.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = min(max(v, 0), 100)
		idx := min(int(v/100.0*7.0), 7)
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}

// DurationPercents scales successful measurements to 0..100 of the slowest
// one. Failed measurements map to 0.
func DurationPercents(results []calibration.Result) []float64 {
	var slowest time.Duration
	for _, r := range results {
		if r.Err == nil {
			slowest = max(slowest, r.Duration)
		}
	}
	out := make([]float64, len(results))
	if slowest == 0 {
		return out
	}
	for i, r := range results {
		if r.Err == nil {
			out[i] = 100 * float64(r.Duration) / float64(slowest)
		}
	}
	return out
}

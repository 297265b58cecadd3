package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/ui"
)

// PrintResults formats one calibration stage as a table, marking the
// optimal threshold.
func PrintResults(out io.Writer, stage string, results []Result, bestThreshold int) {
	fmt.Fprintf(out, "\n--- %s calibration ---\n", stage)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreshold%s    │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		label := fmt.Sprintf("%d limbs", res.Threshold)
		if res.Threshold == 0 {
			label = "Sequential"
		}
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
		}
		highlight := ""
		if res.Threshold == bestThreshold && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12s%s │ %s%s%s%s\n", ui.ColorCyan(), label, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// PrintProfile prints the thresholds a profile selected.
func PrintProfile(out io.Writer, p *CalibrationProfile) {
	parallel := fmt.Sprintf("%d limbs", p.OptimalParallelThreshold)
	if p.OptimalParallelThreshold == 0 {
		parallel = "off"
	}
	fmt.Fprintf(out, "%sCalibration%s (base %s): karatsuba=%s%d%s limbs, parallel=%s%s%s, took %s\n",
		ui.ColorGreen(), ui.ColorReset(), p.LimbBase,
		ui.ColorYellow(), p.OptimalKaratsubaThreshold, ui.ColorReset(),
		ui.ColorYellow(), parallel, ui.ColorReset(),
		p.CalibrationTime)
}

// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayVerification].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatResult].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteResultToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/codec"
	"github.com/agbru/limbcalc/internal/config"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/ui"
	"github.com/agbru/limbcalc/internal/verify"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutBase is the radix of printed values.
	OutBase int
	// Quiet prints the bare result only.
	Quiet bool
	// Verbose disables truncation of long values.
	Verbose bool
	// Emit is config.EmitText, EmitJSON or EmitMsgpack.
	Emit string
	// OutputFile, when set, also saves the full result there.
	OutputFile string
}

// FormatResult renders x in radix, shortening it to its edges when it is
// longer than TruncationLimit and full is false.
func FormatResult(x *bigint.Int, radix int, full bool) (s string, truncated bool, err error) {
	s, err = x.Text(radix)
	if err != nil {
		return "", false, err
	}
	if full {
		return s, false, nil
	}
	s, truncated = format.Truncate(s, TruncationLimit, DisplayEdges)
	return s, truncated, nil
}

// DisplayQuietResult prints the result alone, in full.
func DisplayQuietResult(out io.Writer, x *bigint.Int, radix int) error {
	s, err := x.Text(radix)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, s)
	return err
}

// DisplayResult writes an evaluation in the configured encoding.
func DisplayResult(out io.Writer, ev Evaluation, cfg OutputConfig) error {
	switch cfg.Emit {
	case config.EmitJSON, config.EmitMsgpack:
		if err := codec.Encode(out, cfg.Emit, codec.FromInt(ev.Result)); err != nil {
			return err
		}
	default:
		if cfg.Quiet {
			if err := DisplayQuietResult(out, ev.Result, cfg.OutBase); err != nil {
				return err
			}
			break
		}
		if err := displayPanel(out, ev, cfg); err != nil {
			return err
		}
		if len(ev.Checks) > 0 {
			DisplayVerification(out, ev.Checks)
		}
	}

	if cfg.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(ev, cfg); err != nil {
		return err
	}
	if !cfg.Quiet && cfg.Emit == config.EmitText {
		fmt.Fprintf(out, "%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), cfg.OutputFile, ui.ColorReset())
	}
	return nil
}

func displayPanel(out io.Writer, ev Evaluation, cfg OutputConfig) error {
	value, truncated, err := FormatResult(ev.Result, cfg.OutBase, cfg.Verbose)
	if err != nil {
		return err
	}
	if truncated {
		value += " (truncated)"
	}
	if b := ev.Result.Big(); cfg.OutBase == 10 && !truncated && b.IsInt64() {
		value = format.Count(b.Int64())
	}
	rows := []ui.Row{{Label: "Result", Value: value}}
	title := "result"
	if ev.Op != "" {
		title = string(ev.Op)
		rows = append([]ui.Row{{Label: "Expression", Value: fmt.Sprintf("%s %s %s", ev.A, ev.Op.Symbol(), ev.B)}}, rows...)
	}
	full, _ := ev.Result.Text(cfg.OutBase)
	rows = append(rows,
		ui.Row{Label: "Digits", Value: fmt.Sprintf("%s (radix %d)", format.Count(len(strings.TrimPrefix(full, "-"))), cfg.OutBase)},
		ui.Row{Label: "Limbs", Value: fmt.Sprintf("%s in base %s", format.Count(len(ev.Result.Limbs())), ev.Result.Engine().Base())},
		ui.Row{Label: "Time", Value: format.FormatExecutionDuration(ev.Duration)},
	)
	if ev.HeapDelta > 0 {
		rows = append(rows, ui.Row{Label: "Heap", Value: "+" + format.Bytes(ev.HeapDelta)})
	}
	fmt.Fprintln(out, ui.Panel(title, rows))
	if truncated {
		fmt.Fprintf(out, "%sTip: use --verbose to print the full value.%s\n", ui.ColorDim(), ui.ColorReset())
	}
	return nil
}

// DisplayVerification prints the cross-check table: one row per engine with
// its duration and whether it agreed.
func DisplayVerification(out io.Writer, results []verify.Result) {
	fmt.Fprintf(out, "\n--- Cross-check ---\n")

	var ref string
	for _, r := range results {
		if r.Err == nil && (ref == "" || r.Engine == (verify.BigEngine{}).Name()) {
			ref = r.Value.String()
		}
	}

	maxNameLen := len("Engine")
	for _, r := range results {
		maxNameLen = max(maxNameLen, len(r.Engine))
	}
	fmt.Fprintf(out, "%sEngine%s%s   %sDuration%s    %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Engine")),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())
	for _, r := range results {
		var status string
		switch {
		case r.Err != nil:
			status = fmt.Sprintf("%s✗ Failure (%v)%s", ui.ColorRed(), r.Err, ui.ColorReset())
		case r.Value.String() != ref:
			status = fmt.Sprintf("%s✗ Mismatch%s", ui.ColorRed(), ui.ColorReset())
		default:
			status = fmt.Sprintf("%s✓ Agrees%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := format.FormatExecutionDuration(r.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%-8s%s    %s\n",
			ui.ColorBlue(), r.Engine, ui.ColorReset(), padRight("", maxNameLen-len(r.Engine)),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// WriteResultToFile writes the full result with a commented header.
func WriteResultToFile(ev Evaluation, cfg OutputConfig) error {
	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	value, err := ev.Result.Text(cfg.OutBase)
	if err != nil {
		return err
	}

	file, err := os.Create(cfg.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# limbcalc result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	if ev.Op != "" {
		fmt.Fprintf(file, "# Expression: %s %s %s (radix %d)\n", ev.A, ev.Op.Symbol(), ev.B, ev.InBase)
	}
	fmt.Fprintf(file, "# Duration: %s\n", ev.Duration)
	fmt.Fprintf(file, "# Limb base: %s\n", ev.Result.Engine().Base())
	fmt.Fprintf(file, "# Radix: %d\n\n", cfg.OutBase)
	if _, err := fmt.Fprintln(file, value); err != nil {
		return err
	}
	return file.Close()
}

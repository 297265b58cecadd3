// Package cli provides the terminal front end: evaluation of expressions,
// result presentation and the interactive REPL.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/format"
	"github.com/agbru/limbcalc/internal/nat"
	"github.com/agbru/limbcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// InBase is the radix of typed operands.
	InBase int
	// OutBase is the radix of printed results.
	OutBase int
	// Timeout is the maximum duration of each evaluation.
	Timeout time.Duration
	// Verify cross-checks every evaluation.
	Verify bool
}

// ansName refers to the previous result inside an expression.
const ansName = "ans"

// REPL is an interactive calculator session.
type REPL struct {
	config REPLConfig
	eval   *Evaluator
	last   *bigint.Int
	in     io.Reader
	out    io.Writer
}

// NewREPL creates a session evaluating with ev.
func NewREPL(ev *Evaluator, config REPLConfig) *REPL {
	if config.InBase == 0 {
		config.InBase = 10
	}
	if config.OutBase == 0 {
		config.OutBase = 10
	}
	return &REPL{
		config: config,
		eval:   ev,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and processes commands until "exit", EOF or ctx ends.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"limb> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && input == "" {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %slimbcalc - arbitrary precision, interactive%s    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s<a> <op> <b>%s   - Evaluate with op in + - * / %% (ans = last result)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sfact <n>%s       - Compute n!\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sin <radix>%s     - Set the operand radix (2-36)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sout <radix>%s    - Set the result radix (2-36)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %slimbs%s          - Show the limbs of the last result\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverify%s         - Toggle cross-checking\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s         - Display current configuration\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand executes one line. It returns false when the session ends.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "fact", "f":
		r.cmdFactorial(args)
	case "in":
		r.cmdRadix(args, &r.config.InBase, "Operand")
	case "out":
		r.cmdRadix(args, &r.config.OutBase, "Result")
	case "limbs":
		r.cmdLimbs()
	case "verify":
		r.config.Verify = !r.config.Verify
		fmt.Fprintf(r.out, "Cross-checking: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Verify), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.cmdEval(ctx, input)
	}
	return true
}

func (r *REPL) errorf(format string, a ...any) {
	fmt.Fprintf(r.out, "%s"+format+"%s\n", append(append([]any{ui.ColorRed()}, a...), ui.ColorReset())...)
}

func (r *REPL) operand(text string) (*bigint.Int, error) {
	if strings.EqualFold(text, ansName) {
		if r.last == nil {
			return nil, errors.New("no previous result")
		}
		return r.last, nil
	}
	return r.eval.Parse(text, text, r.config.InBase)
}

func (r *REPL) cmdEval(ctx context.Context, input string) {
	a, op, b, err := ParseExpression(input)
	if err != nil {
		r.errorf("Unknown command or expression: %s", input)
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		return
	}
	x, err := r.operand(a)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	y, err := r.operand(b)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}
	ev, err := r.eval.EvaluateInts(ctx, op, x, y, r.config.Verify)
	if err != nil {
		r.errorf("Error: %v", err)
		if len(ev.Checks) > 0 {
			DisplayVerification(r.out, ev.Checks)
		}
		return
	}
	r.show(ev)
}

func (r *REPL) show(ev Evaluation) {
	r.last = ev.Result
	value, truncated, err := FormatResult(ev.Result, r.config.OutBase, false)
	if err != nil {
		r.errorf("Error: %v", err)
		return
	}
	fmt.Fprintf(r.out, "  = %s%s%s", ui.ColorGreen(), value, ui.ColorReset())
	if truncated {
		fmt.Fprint(r.out, " (truncated)")
	}
	fmt.Fprintf(r.out, "\n  %s%s, %s limbs%s\n", ui.ColorDim(),
		format.FormatExecutionDuration(ev.Duration), format.Count(len(ev.Result.Limbs())), ui.ColorReset())
	if len(ev.Checks) > 0 {
		DisplayVerification(r.out, ev.Checks)
	}
}

func (r *REPL) cmdFactorial(args []string) {
	if len(args) != 1 {
		r.errorf("Usage: fact <n>")
		return
	}
	n, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		r.errorf("Invalid value: %s", args[0])
		return
	}
	start := time.Now()
	z := bigint.Factorial(r.eval.Engine, n)
	r.show(Evaluation{Result: z, Duration: time.Since(start)})
}

func (r *REPL) cmdRadix(args []string, dst *int, what string) {
	if len(args) != 1 {
		r.errorf("Usage: %s <radix>", strings.ToLower(what[:1])+what[1:])
		return
	}
	v, err := strconv.Atoi(args[0])
	if err != nil || v < 2 || v > nat.MaxTextRadix {
		r.errorf("Invalid radix: %s", args[0])
		return
	}
	*dst = v
	fmt.Fprintf(r.out, "%s radix: %s%d%s\n", what, ui.ColorGreen(), v, ui.ColorReset())
}

func (r *REPL) cmdLimbs() {
	if r.last == nil {
		r.errorf("No previous result")
		return
	}
	limbs := r.last.Limbs()
	parts := make([]string, len(limbs))
	for i, w := range limbs {
		parts[i] = strconv.FormatUint(uint64(w), 10)
	}
	fmt.Fprintf(r.out, "  base %s, sign %d, %d limbs (least significant first):\n  [%s]\n",
		r.last.Engine().Base(), r.last.Sign(), len(limbs), strings.Join(parts, " "))
}

func (r *REPL) cmdStatus() {
	opts := r.eval.Engine.Options()
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Limb base:      %s%s%s\n", ui.ColorCyan(), r.eval.Engine.Base(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Radix in/out:   %s%d/%d%s\n", ui.ColorCyan(), r.config.InBase, r.config.OutBase, ui.ColorReset())
	fmt.Fprintf(r.out, "  Karatsuba:      %s%d%s limbs\n", ui.ColorCyan(), opts.KaratsubaThreshold, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:        %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Cross-checking: %s%s%s\n", ui.ColorCyan(), onOff(r.config.Verify), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

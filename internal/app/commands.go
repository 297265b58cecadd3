package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/calibration"
	"github.com/agbru/limbcalc/internal/cli"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/ui"
)

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "also write the full result to this file")
	cmd.Flags().BoolP("verbose", "v", false, "print long results in full")
}

func (a *Application) newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <a> <op> <b>",
		Short: "Evaluate a binary operation (+ - * / %)",
		Long: `Evaluate a op b, where op is one of + - * / % or add, sub, mul, div, rem.
The expression may also be given as a single argument ("12*-7"). Put "--"
before a negative first operand so it is not read as a flag.`,
		Example: `  limbcalc eval 123456789 '*' 987654321
  limbcalc --in-base 16 --out-base 2 eval ff+1
  limbcalc --verify eval -- -7 / 2`,
		Args: cobra.RangeArgs(1, 3),
		RunE: a.runEval,
	}
	addOutputFlags(cmd)
	return cmd
}

func (a *Application) runEval(cmd *cobra.Command, args []string) error {
	x, op, y, err := cli.ParseExpression(strings.Join(args, " "))
	if err != nil {
		return apperrors.NewConfigError("%v", err)
	}
	ctx, stop := a.lifecycle(cmd.Context())
	defer stop()

	if a.decorated() {
		cli.PrintExecutionConfig(a.Config, a.Engine, a.Out)
	}
	spin := cli.NewSpinner(a.ErrWriter, "Evaluating...", a.decorated())
	spin.Start()
	ev, err := a.evaluator().Evaluate(ctx, cli.Request{
		A: x, B: y, Op: op,
		InBase: a.Config.InBase,
		Verify: a.Config.Verify,
	})
	spin.Stop()
	if err != nil {
		if len(ev.Checks) > 0 && !a.Config.Quiet {
			cli.DisplayVerification(a.Out, ev.Checks)
		}
		return a.timeoutError(string(op), err)
	}
	return cli.DisplayResult(a.Out, ev, a.outputConfig(cmd))
}

func (a *Application) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <value>",
		Short: "Convert a value between text radixes and show its limbs",
		Example: `  limbcalc --in-base 16 convert ffffffffffffffffff
  limbcalc --limb-base 1000 convert --limbs 123456789`,
		Args: cobra.ExactArgs(1),
		RunE: a.runConvert,
	}
	cmd.Flags().Bool("limbs", false, "list the limbs, least significant first")
	addOutputFlags(cmd)
	return cmd
}

func (a *Application) runConvert(cmd *cobra.Command, args []string) error {
	start := time.Now()
	x, err := a.evaluator().Parse("value", args[0], a.Config.InBase)
	if err != nil {
		return err
	}
	ev := cli.Evaluation{Result: x, Duration: time.Since(start)}
	if err := cli.DisplayResult(a.Out, ev, a.outputConfig(cmd)); err != nil {
		return err
	}
	if show, _ := cmd.Flags().GetBool("limbs"); show && a.decorated() {
		printLimbs(a, x)
	}
	return nil
}

func printLimbs(a *Application, x *bigint.Int) {
	limbs := x.Limbs()
	parts := make([]string, len(limbs))
	for i, w := range limbs {
		parts[i] = strconv.FormatUint(uint64(w), 10)
	}
	fmt.Fprintf(a.Out, "Limbs (base %s, least significant first): [%s]\n",
		x.Engine().Base(), strings.Join(parts, " "))
}

func (a *Application) newFactorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factorial <n>",
		Short: "Compute n! with the configured engine",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runFactorial,
	}
	addOutputFlags(cmd)
	return cmd
}

func (a *Application) runFactorial(cmd *cobra.Command, args []string) error {
	n, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return apperrors.NewConfigError("invalid n %q: %v", args[0], err)
	}
	if _, err := safecast.Conv[uint32](n); err != nil {
		return apperrors.NewConfigError("n %d is too large for factorial: %v", n, err)
	}
	ctx, stop := a.lifecycle(cmd.Context())
	defer stop()

	spin := cli.NewSpinner(a.ErrWriter, fmt.Sprintf("Computing %d!...", n), a.decorated())
	spin.Start()
	start := time.Now()
	z, err := compute(ctx, func() *bigint.Int { return bigint.Factorial(a.Engine, n) })
	spin.Stop()
	if err != nil {
		return a.timeoutError("factorial", err)
	}
	ev := cli.Evaluation{Result: z, Duration: time.Since(start)}
	return cli.DisplayResult(a.Out, ev, a.outputConfig(cmd))
}

// compute runs fn until it returns or ctx ends. An abandoned fn keeps
// running in the background until it finishes.
func compute(ctx context.Context, fn func() *bigint.Int) (*bigint.Int, error) {
	done := make(chan *bigint.Int, 1)
	go func() { done <- fn() }()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case z := <-done:
		return z, nil
	}
}

func (a *Application) newREPLCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"interactive"},
		Short:   "Start an interactive calculator session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repl := cli.NewREPL(a.evaluator(), cli.REPLConfig{
				InBase:  a.Config.InBase,
				OutBase: a.Config.OutBase,
				Timeout: a.Config.Timeout,
				Verify:  a.Config.Verify,
			})
			repl.SetInput(cmd.InOrStdin())
			repl.SetOutput(a.Out)
			repl.Start(cmd.Context())
			return nil
		},
	}
}

func (a *Application) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the resolved configuration and processor features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cli.PrintExecutionConfig(a.Config, a.Engine, a.Out)

			path := a.Config.CalibrationProfile
			if path == "" {
				path = calibration.GetDefaultProfilePath()
			}
			p, loaded := calibration.LoadOrCreateProfile(path)
			rows := []ui.Row{
				{Label: "CPU", Value: limb.GetCPUFeatures().String()},
				{Label: "Profile", Value: path},
			}
			switch {
			case !loaded:
				rows = append(rows, ui.Row{Label: "Status", Value: "not calibrated (run limbcalc calibrate)"})
			case !p.IsValid():
				rows = append(rows, ui.Row{Label: "Status", Value: "invalid for this machine"})
			case p.IsStale(calibration.ProfileMaxAge):
				rows = append(rows, ui.Row{Label: "Status", Value: "stale, calibrated " + p.CalibratedAt.Format(time.DateOnly)})
			default:
				rows = append(rows, ui.Row{Label: "Status", Value: p.String()})
			}
			fmt.Fprintln(a.Out, ui.Panel("environment", rows))
			return nil
		},
	}
}

func (a *Application) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			PrintVersion(a.Out)
		},
	}
}

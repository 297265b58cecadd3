// Package app wires configuration, logging, metrics and the arithmetic
// engine behind the limbcalc command tree.
package app

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/agbru/limbcalc/internal/calibration"
	"github.com/agbru/limbcalc/internal/cli"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/nat"
	"github.com/agbru/limbcalc/internal/ui"
)

// Application represents the limbcalc application instance.
type Application struct {
	// Config is the resolved configuration, valid once a command runs.
	Config    config.AppConfig
	Out       io.Writer
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	Engine    *nat.Engine

	root        *cobra.Command
	stopMetrics context.CancelFunc
	metricsDone chan error
}

// New creates the application and its command tree.
func New(out, errWriter io.Writer) *Application {
	a := &Application{
		Config:    config.Default(),
		Out:       out,
		ErrWriter: errWriter,
		Logger:    logging.Nop(),
	}
	a.root = a.newRootCmd()
	return a
}

func (a *Application) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "limbcalc",
		Short: "Arbitrary-precision integer arithmetic over configurable limb bases",
		Long: `limbcalc evaluates integer arithmetic on numbers of any size. Magnitudes
are stored as limbs in a configurable base (native machine words, a power
of two or any decimal radix) and multiplied with Karatsuba above a tunable
threshold.`,
		Version:           Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.Out)
	root.SetErr(a.ErrWriter)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return apperrors.NewConfigError("%v", err)
	})
	config.BindFlags(root.PersistentFlags(), &a.Config)

	root.AddCommand(
		a.newEvalCmd(),
		a.newConvertCmd(),
		a.newFactorialCmd(),
		a.newCalibrateCmd(),
		a.newVectorsCmd(),
		a.newREPLCmd(),
		a.newInfoCmd(),
		a.newVersionCmd(),
	)
	return root
}

// Run executes the command line args (without the program name) and
// returns the process exit code.
func (a *Application) Run(ctx context.Context, args []string) int {
	a.root.SetArgs(args)
	err := a.root.ExecuteContext(ctx)
	a.shutdown()
	if err != nil {
		ui.PrintError(a.ErrWriter, "%v", err)
		return apperrors.ExitCode(err)
	}
	return apperrors.ExitSuccess
}

// setup resolves the configuration and builds the shared services before
// any subcommand runs.
func (a *Application) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(a.Config, cmd.Flags(), func(c config.AppConfig) config.AppConfig {
		return calibration.Resolver(c.CalibrationProfile)(c)
	})
	if err != nil {
		return err
	}
	a.Config = cfg

	ui.InitTheme(cfg.NoColor)
	logger, err := logging.NewConsoleLogger(a.ErrWriter, cfg.LogLevel, cfg.NoColor || !ui.IsTerminal(a.ErrWriter))
	if err != nil {
		return apperrors.ValidationError{Field: "log-level", Message: err.Error()}
	}
	a.Logger = logger

	a.Metrics = metrics.New()
	a.Engine = nat.New(cfg.Base(),
		nat.WithOptions(cfg.EngineOptions()),
		nat.WithRecorder(a.Metrics),
		nat.WithLogger(logger))
	a.Logger.Debug("engine ready",
		logging.String("limb_base", a.Engine.Base().String()),
		logging.Int("karatsuba_threshold", a.Engine.Options().KaratsubaThreshold),
		logging.Int("parallel_threshold", a.Engine.Options().ParallelThreshold))

	if cfg.MetricsAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopMetrics = cancel
		a.metricsDone = make(chan error, 1)
		go func() { a.metricsDone <- a.Metrics.Serve(ctx, cfg.MetricsAddr, a.Logger) }()
	}
	return nil
}

func (a *Application) shutdown() {
	if a.stopMetrics == nil {
		return
	}
	a.stopMetrics()
	if err := <-a.metricsDone; err != nil {
		a.Logger.Error("metrics server", err)
	}
	a.stopMetrics = nil
}

// lifecycle bounds ctx by the configured timeout and by SIGINT/SIGTERM.
func (a *Application) lifecycle(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}

// timeoutError reports a deadline as a TimeoutError for op.
func (a *Application) timeoutError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: op, Limit: a.Config.Timeout}
	}
	return err
}

func (a *Application) evaluator() *cli.Evaluator {
	return cli.NewEvaluator(a.Engine, a.Metrics, a.Logger)
}

func (a *Application) outputConfig(cmd *cobra.Command) cli.OutputConfig {
	oc := cli.OutputConfig{
		OutBase: a.Config.OutBase,
		Quiet:   a.Config.Quiet,
		Emit:    a.Config.Emit,
	}
	if f := cmd.Flags().Lookup("verbose"); f != nil {
		oc.Verbose = f.Value.String() == "true"
	}
	if f := cmd.Flags().Lookup("output"); f != nil {
		oc.OutputFile = f.Value.String()
	}
	return oc
}

// decorated reports whether progress and banners may be printed.
func (a *Application) decorated() bool {
	return !a.Config.Quiet && a.Config.Emit == config.EmitText
}

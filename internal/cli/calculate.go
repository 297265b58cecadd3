package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/limbcalc/internal/bigint"
	"github.com/agbru/limbcalc/internal/config"
	apperrors "github.com/agbru/limbcalc/internal/errors"
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/metrics"
	"github.com/agbru/limbcalc/internal/nat"
	"github.com/agbru/limbcalc/internal/ui"
	"github.com/agbru/limbcalc/internal/verify"
)

const tracerName = "github.com/agbru/limbcalc/internal/cli"

// Request is one binary operation on operand text.
type Request struct {
	A, B   string
	Op     verify.Op
	InBase int
	Verify bool
}

// Evaluation is the outcome of a Request.
type Evaluation struct {
	Request
	X, Y, Result *bigint.Int
	Duration     time.Duration
	// HeapDelta is the heap growth observed across the operation.
	HeapDelta uint64
	// Checks holds the cross-check results when Verify was requested.
	Checks []verify.Result
}

// Evaluator evaluates requests on one engine.
type Evaluator struct {
	Engine  *nat.Engine
	Metrics *metrics.Metrics
	Logger  logging.Logger
	tracer  trace.Tracer
	memory  *metrics.MemoryCollector
}

// NewEvaluator returns an evaluator for e. m may be nil.
func NewEvaluator(e *nat.Engine, m *metrics.Metrics, log logging.Logger) *Evaluator {
	if log == nil {
		log = logging.Nop()
	}
	return &Evaluator{
		Engine:  e,
		Metrics: m,
		Logger:  log,
		tracer:  otel.Tracer(tracerName),
		memory:  metrics.NewMemoryCollector(),
	}
}

// Parse reads an operand in the given radix as a ConfigError on failure.
func (ev *Evaluator) Parse(name, text string, radix int) (*bigint.Int, error) {
	x, err := bigint.Parse(ev.Engine, text, radix)
	if err != nil {
		return nil, apperrors.NewConfigError("operand %s: %v", name, err)
	}
	return x, nil
}

// Evaluate parses the operands, computes the operation and, when requested,
// cross-checks it. The computation itself is not interruptible: when ctx
// ends first, Evaluate returns ctx.Err() and the result is discarded.
func (ev *Evaluator) Evaluate(ctx context.Context, req Request) (Evaluation, error) {
	ctx, span := ev.tracer.Start(ctx, "evaluate", trace.WithAttributes(
		attribute.String("op", string(req.Op)),
		attribute.String("limb_base", ev.Engine.Base().String()),
		attribute.Int("in_base", req.InBase),
	))
	defer span.End()

	out := Evaluation{Request: req}
	var err error
	if out.X, err = ev.Parse("a", req.A, req.InBase); err != nil {
		return out, ev.fail(span, err)
	}
	if out.Y, err = ev.Parse("b", req.B, req.InBase); err != nil {
		return out, ev.fail(span, err)
	}
	return ev.apply(ctx, span, out)
}

// EvaluateInts is Evaluate for already parsed operands.
func (ev *Evaluator) EvaluateInts(ctx context.Context, op verify.Op, x, y *bigint.Int, check bool) (Evaluation, error) {
	ctx, span := ev.tracer.Start(ctx, "evaluate", trace.WithAttributes(
		attribute.String("op", string(op)),
		attribute.String("limb_base", ev.Engine.Base().String()),
	))
	defer span.End()
	return ev.apply(ctx, span, Evaluation{Request: Request{Op: op, Verify: check}, X: x, Y: y})
}

func (ev *Evaluator) apply(ctx context.Context, span trace.Span, out Evaluation) (Evaluation, error) {
	limbs := max(len(out.X.Limbs()), len(out.Y.Limbs()))
	span.SetAttributes(attribute.Int("limbs", limbs))

	type outcome struct {
		z   *bigint.Int
		err error
	}
	done := make(chan outcome, 1)
	before := ev.memory.Snapshot()
	start := time.Now()
	go func() {
		z, err := verify.Apply(out.Op, out.X, out.Y)
		done <- outcome{z, err}
	}()

	select {
	case <-ctx.Done():
		return out, ev.fail(span, ctx.Err())
	case res := <-done:
		out.Duration = time.Since(start)
		out.HeapDelta = ev.memory.Snapshot().AllocatedSince(before)
		if res.err != nil {
			return out, ev.fail(span, apperrors.CalculationError{Op: string(out.Op), Cause: res.err})
		}
		out.Result = res.z
	}

	if ev.Metrics != nil {
		ev.Metrics.ObserveOperation(string(out.Op), limbs, out.Duration)
	}
	ev.Logger.Debug("evaluated",
		logging.String("op", string(out.Op)),
		logging.Int("limbs", limbs),
		logging.Duration("duration", out.Duration))

	if !out.Verify {
		return out, nil
	}
	ref, results, err := verify.Check(ctx, verify.DefaultEngines(ev.Engine), out.Op, out.X.Big(), out.Y.Big())
	out.Checks = results
	if err != nil {
		var mismatch apperrors.MismatchError
		if errors.As(err, &mismatch) && ev.Metrics != nil {
			ev.Metrics.RecordMismatch(mismatch.Engine)
		}
		return out, ev.fail(span, err)
	}
	if got := out.Result.Big(); got.Cmp(ref.Value) != 0 {
		err := apperrors.MismatchError{
			Op:       string(out.Op),
			Engine:   "primary",
			Expected: ref.Value.String(),
			Got:      got.String(),
		}
		return out, ev.fail(span, err)
	}
	return out, nil
}

func (ev *Evaluator) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	ev.Logger.Debug("evaluation failed", logging.Err(err))
	return err
}

// PrintExecutionConfig displays the engine and environment configuration.
func PrintExecutionConfig(cfg config.AppConfig, e *nat.Engine, out io.Writer) {
	opts := e.Options()
	parallel := "off"
	if opts.ParallelThreshold > 0 {
		parallel = fmt.Sprintf("%d limbs", opts.ParallelThreshold)
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Limb base %s%s%s, text radix in=%d out=%d, timeout %s%s%s.\n",
		ui.ColorCyan(), e.Base(), ui.ColorReset(), cfg.InBase, cfg.OutBase,
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s, CPU %s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset(),
		limb.GetCPUFeatures())
	fmt.Fprintf(out, "Thresholds: Karatsuba=%s%d%s limbs, parallel=%s%s%s.\n",
		ui.ColorCyan(), opts.KaratsubaThreshold, ui.ColorReset(),
		ui.ColorCyan(), parallel, ui.ColorReset())
}

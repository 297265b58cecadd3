// Package calibration measures the Karatsuba and parallel thresholds that
// are fastest on the running machine and caches them in a TOML profile.
package calibration

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
	"github.com/agbru/limbcalc/internal/nat"
)

// Default measurement sizes, in limbs.
const (
	DefaultKaratsubaLimbs = 1024
	DefaultParallelLimbs  = 16384
	DefaultRounds         = 3
)

// Result is the measurement of one candidate threshold.
type Result struct {
	Threshold int
	Duration  time.Duration
	Err       error
}

// Options drives a calibration run.
type Options struct {
	Base limb.Base
	// KaratsubaLimbs is the operand length used to rank Karatsuba cutoffs.
	KaratsubaLimbs int
	// ParallelLimbs is the operand length used to rank parallel thresholds.
	ParallelLimbs int
	// Rounds is the number of timed products per candidate; the fastest counts.
	Rounds int
	// Quick selects the reduced candidate sets.
	Quick bool
	// Progress, when set, is called before each measurement.
	Progress func(stage string, step, total int)
	// OnResult, when set, receives each measurement as it completes.
	OnResult func(stage string, r Result)
	Logger   logging.Logger
}

func (o Options) withDefaults() Options {
	if o.KaratsubaLimbs <= 0 {
		o.KaratsubaLimbs = DefaultKaratsubaLimbs
	}
	if o.ParallelLimbs <= 0 {
		o.ParallelLimbs = DefaultParallelLimbs
	}
	if o.Rounds <= 0 {
		o.Rounds = DefaultRounds
	}
	if o.Progress == nil {
		o.Progress = func(string, int, int) {}
	}
	if o.OnResult == nil {
		o.OnResult = func(string, Result) {}
	}
	if o.Logger == nil {
		o.Logger = logging.Nop()
	}
	return o
}

// Calibrate benchmarks the Karatsuba cutoff, then the parallel threshold at
// that cutoff, and returns a profile holding both winners.
func Calibrate(ctx context.Context, opts Options) (*CalibrationProfile, []Result, []Result, error) {
	opts = opts.withDefaults()
	start := time.Now()

	kCandidates, pCandidates := GenerateKaratsubaThresholds(), GenerateParallelThresholds()
	if opts.Quick {
		kCandidates, pCandidates = GenerateQuickKaratsubaThresholds(), GenerateQuickParallelThresholds()
	}

	kResults, bestK, err := RunKaratsuba(ctx, opts, kCandidates)
	if err != nil {
		return nil, kResults, nil, err
	}
	pResults, bestP, err := RunParallel(ctx, opts, bestK, pCandidates)
	if err != nil {
		return nil, kResults, pResults, err
	}

	p := NewProfile()
	p.LimbBase = opts.Base.String()
	p.OptimalKaratsubaThreshold = bestK
	p.OptimalParallelThreshold = bestP
	p.CalibrationLimbs = opts.KaratsubaLimbs
	p.CalibrationTime = time.Since(start).Round(time.Millisecond).String()
	opts.Logger.Info("calibration complete",
		logging.Int("karatsuba_threshold", bestK),
		logging.Int("parallel_threshold", bestP),
		logging.String("elapsed", p.CalibrationTime))
	return p, kResults, pResults, nil
}

// RunKaratsuba times sequential multiplication of two KaratsubaLimbs-long
// operands at each cutoff and returns the measurements and the fastest cutoff.
func RunKaratsuba(ctx context.Context, opts Options, candidates []int) ([]Result, int, error) {
	opts = opts.withDefaults()
	a, b := randomOperands(opts.Base, opts.KaratsubaLimbs)
	return run(ctx, opts, "karatsuba", candidates, func(th int) *nat.Engine {
		return nat.New(opts.Base, nat.WithThreshold(th))
	}, a, b)
}

// RunParallel times multiplication of two ParallelLimbs-long operands at the
// given Karatsuba cutoff for each parallel threshold.
func RunParallel(ctx context.Context, opts Options, karatsuba int, candidates []int) ([]Result, int, error) {
	opts = opts.withDefaults()
	a, b := randomOperands(opts.Base, opts.ParallelLimbs)
	return run(ctx, opts, "parallel", candidates, func(th int) *nat.Engine {
		return nat.New(opts.Base, nat.WithThreshold(karatsuba), nat.WithParallelThreshold(th))
	}, a, b)
}

func run(ctx context.Context, opts Options, stage string, candidates []int, engine func(int) *nat.Engine, a, b nat.Nat) ([]Result, int, error) {
	if len(candidates) == 0 {
		return nil, 0, fmt.Errorf("calibration: no %s candidates", stage)
	}
	limb.EnsurePoolsWarmed(2 * len(a))

	results := make([]Result, 0, len(candidates))
	for i, th := range candidates {
		if err := ctx.Err(); err != nil {
			return results, 0, err
		}
		opts.Progress(stage, i+1, len(candidates))
		d := measure(ctx, engine(th), a, b, opts.Rounds)
		res := Result{Threshold: th, Duration: d, Err: ctx.Err()}
		results = append(results, res)
		opts.OnResult(stage, res)
		opts.Logger.Debug("calibration sample",
			logging.String("stage", stage),
			logging.Int("threshold", th),
			logging.Duration("best", d))
	}
	best, ok := fastest(results)
	if !ok {
		return results, 0, fmt.Errorf("calibration: every %s measurement failed", stage)
	}
	return results, best, nil
}

func measure(ctx context.Context, e *nat.Engine, a, b nat.Nat, rounds int) time.Duration {
	best := time.Duration(-1)
	for range rounds {
		if ctx.Err() != nil {
			break
		}
		start := time.Now()
		e.Mul(a, b)
		if d := time.Since(start); best < 0 || d < best {
			best = d
		}
	}
	return max(best, 0)
}

// fastest returns the threshold of the quickest successful result. Ties go
// to the earlier candidate.
func fastest(results []Result) (int, bool) {
	bestIdx := -1
	for i, r := range results {
		if r.Err != nil {
			continue
		}
		if bestIdx < 0 || r.Duration < results[bestIdx].Duration {
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return 0, false
	}
	return results[bestIdx].Threshold, true
}

// randomOperands returns two canonical operands of exactly n limbs. The
// seed is fixed so every candidate multiplies the same numbers.
func randomOperands(b limb.Base, n int) (nat.Nat, nat.Nat) {
	r := rand.New(rand.NewPCG(0x6c696d62, 0x63616c63))
	gen := func() nat.Nat {
		x := make(nat.Nat, n)
		for i := range x {
			x[i] = randomLimb(r, b)
		}
		for x[n-1] == 0 {
			x[n-1] = randomLimb(r, b)
		}
		return x
	}
	return gen(), gen()
}

func randomLimb(r *rand.Rand, b limb.Base) limb.Word {
	if b.IsNative() {
		return limb.Word(r.Uint64())
	}
	return limb.Word(r.Uint64N(uint64(b.Radix())))
}

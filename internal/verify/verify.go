package verify

import (
	"context"
	"fmt"
	"math/big"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/limbcalc/internal/errors"
)

// Result is the outcome of one engine.
type Result struct {
	// Engine is the engine name.
	Engine string
	// Value is nil if Err is set.
	Value *big.Int
	// Duration is the wall time of the evaluation.
	Duration time.Duration
	// Err is the evaluation error, if any.
	Err error
}

// Execute runs op on every engine concurrently and returns one result per
// engine, in engine order. Engine failures are recorded in the results,
// never returned.
func Execute(ctx context.Context, engines []Engine, op Op, a, b *big.Int) []Result {
	var g errgroup.Group
	results := make([]Result, len(engines))
	for i, e := range engines {
		g.Go(func() error {
			start := time.Now()
			v, err := e.Eval(ctx, op, a, b)
			results[i] = Result{Engine: e.Name(), Value: v, Duration: time.Since(start), Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Analyze orders results fastest first, successes before failures, and
// checks that all successful engines agree.
//
// Returns:
//   - Result: The reference result: math/big when it succeeded, otherwise
//     the first successful engine of the input order.
//   - error: The first engine error when none succeeded, or an
//     apperrors.MismatchError naming the first engine that disagrees.
func Analyze(op Op, results []Result) (Result, error) {
	var ref *Result
	var firstErr error
	for i := range results {
		r := &results[i]
		switch {
		case r.Err != nil:
			if firstErr == nil {
				firstErr = r.Err
			}
		case ref == nil, r.Engine == bigEngineName:
			ref = r
		}
	}
	reference := Result{}
	if ref != nil {
		reference = *ref
	}

	sort.SliceStable(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	if ref == nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("no engine evaluated %s", op)
		}
		return reference, firstErr
	}
	for _, r := range results {
		if r.Err == nil && r.Value.Cmp(reference.Value) != 0 {
			return reference, apperrors.MismatchError{
				Op:       string(op),
				Engine:   r.Engine,
				Expected: reference.Value.String(),
				Got:      r.Value.String(),
			}
		}
	}
	return reference, nil
}

// Check executes and analyzes in one call.
func Check(ctx context.Context, engines []Engine, op Op, a, b *big.Int) (Result, []Result, error) {
	results := Execute(ctx, engines, op, a, b)
	ref, err := Analyze(op, results)
	return ref, results, err
}

func unknownOp(op Op) error { return fmt.Errorf("unknown operation %q", op) }

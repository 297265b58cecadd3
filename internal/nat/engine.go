package nat

import (
	"github.com/agbru/limbcalc/internal/limb"
	"github.com/agbru/limbcalc/internal/logging"
)

// DefaultKaratsubaThreshold is the operand length, in limbs, at or below
// which multiplication falls back to the schoolbook kernel.
const DefaultKaratsubaThreshold = 13

// parallelDepth bounds the Karatsuba recursion levels that fan out.
const parallelDepth = 2

// Recorder receives the algorithm path taken by each top-level operation.
// It is implemented by the metrics package.
type Recorder interface {
	RecordPath(op, path string)
}

type nopRecorder struct{}

func (nopRecorder) RecordPath(string, string) {}

// Options tunes an Engine.
type Options struct {
	// KaratsubaThreshold is the schoolbook cutoff. Values below 1 act as 1.
	KaratsubaThreshold int
	// ParallelThreshold is the operand length from which Karatsuba computes
	// its three sub-products concurrently. 0 disables the fan-out.
	ParallelThreshold int
}

// Option configures an Engine.
type Option func(*Engine)

// WithThreshold sets the Karatsuba threshold.
func WithThreshold(n int) Option {
	return func(e *Engine) { e.opts.KaratsubaThreshold = n }
}

// WithParallelThreshold sets the parallel Karatsuba threshold.
func WithParallelThreshold(n int) Option {
	return func(e *Engine) { e.opts.ParallelThreshold = n }
}

// WithOptions replaces all tuning options at once.
func WithOptions(o Options) Option {
	return func(e *Engine) { e.opts = o }
}

// WithRecorder attaches a path recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.rec = r
		}
	}
}

// WithLogger attaches a logger for debug traces of algorithm decisions.
func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine performs magnitude arithmetic in one base through one kernel.
type Engine struct {
	k    limb.Kernel
	base limb.Base
	opts Options
	rec  Recorder
	log  logging.Logger
}

// New returns an engine for base b using the kernel limb.New selects.
func New(b limb.Base, opts ...Option) *Engine {
	return NewWithKernel(limb.New(b), opts...)
}

// NewWithKernel returns an engine driving the given kernel.
func NewWithKernel(k limb.Kernel, opts ...Option) *Engine {
	e := &Engine{
		k:    k,
		base: k.Base(),
		opts: Options{KaratsubaThreshold: DefaultKaratsubaThreshold},
		rec:  nopRecorder{},
		log:  logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.opts.KaratsubaThreshold < 1 {
		e.opts.KaratsubaThreshold = 1
	}
	if e.opts.ParallelThreshold < 0 {
		e.opts.ParallelThreshold = 0
	}
	return e
}

// Base returns the engine's radix.
func (e *Engine) Base() limb.Base { return e.base }

// Kernel returns the engine's limb kernel.
func (e *Engine) Kernel() limb.Kernel { return e.k }

// Options returns the effective tuning options.
func (e *Engine) Options() Options { return e.opts }

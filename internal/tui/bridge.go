package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/limbcalc/internal/calibration"
)

// ProgressMsg announces the measurement about to start.
type ProgressMsg struct {
	Stage       string
	Step, Total int
}

// ResultMsg carries one finished measurement.
type ResultMsg struct {
	Stage  string
	Result calibration.Result
}

// DoneMsg ends the calibration.
type DoneMsg struct {
	Profile   *calibration.CalibrationProfile
	Karatsuba []calibration.Result
	Parallel  []calibration.Result
	Err       error
}

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the calibration goroutine needs a pointer that
// survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the program if one is attached (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// attach routes the calibration callbacks of opts to the program.
func (r *programRef) attach(opts calibration.Options) calibration.Options {
	opts.Progress = func(stage string, step, total int) {
		r.Send(ProgressMsg{Stage: stage, Step: step, Total: total})
	}
	opts.OnResult = func(stage string, res calibration.Result) {
		r.Send(ResultMsg{Stage: stage, Result: res})
	}
	return opts
}

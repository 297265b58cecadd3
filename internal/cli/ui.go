package cli

import (
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/limbcalc/internal/ui"
)

const (
	// TruncationLimit is the digit count from which a result is shortened
	// on the terminal.
	TruncationLimit = 100
	// DisplayEdges is the number of leading and trailing digits kept when a
	// result is shortened.
	DisplayEdges = 25
	// SpinnerRefreshRate is the spinner animation period.
	SpinnerRefreshRate = 100 * time.Millisecond
)

// Spinner abstracts a terminal spinner so long evaluations and calibration
// can show activity without depending on a concrete implementation.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

type nopSpinner struct{}

func (nopSpinner) Start()              {}
func (nopSpinner) Stop()               {}
func (nopSpinner) UpdateSuffix(string) {}

var newSpinner = func(out io.Writer) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	return &realSpinner{s}
}

// NewSpinner returns a spinner writing to out with the given suffix. It is
// inert unless enabled is set and out is a terminal.
func NewSpinner(out io.Writer, suffix string, enabled bool) Spinner {
	if !enabled || !ui.IsTerminal(out) {
		return nopSpinner{}
	}
	s := newSpinner(out)
	s.UpdateSuffix(" " + suffix)
	return s
}

// Package tui renders a live terminal dashboard for calibration runs.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/limbcalc/internal/calibration"
	"github.com/agbru/limbcalc/internal/format"
)

const (
	tickInterval = 200 * time.Millisecond
	barWidth     = 30
	defaultWidth = 72
)

// stages lists the calibration stages in the order they run.
var stages = []string{"karatsuba", "parallel"}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// stageState tracks one calibration stage.
type stageState struct {
	step, total int
	results     []calibration.Result
}

// Model is the bubbletea model of the calibration dashboard.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	opts   calibration.Options
	ref    *programRef
	keymap KeyMap

	start   time.Time
	now     time.Time
	width   int
	current string
	stages  map[string]*stageState
	details bool

	done    bool
	outcome DoneMsg
}

// NewModel returns a dashboard that runs calibration with opts once started.
func NewModel(ctx context.Context, opts calibration.Options) Model {
	ctx, cancel := context.WithCancel(ctx)
	st := make(map[string]*stageState, len(stages))
	for _, s := range stages {
		st[s] = &stageState{}
	}
	now := time.Now()
	return Model{
		ctx:    ctx,
		cancel: cancel,
		opts:   opts,
		ref:    &programRef{},
		keymap: DefaultKeyMap(),
		start:  now,
		now:    now,
		width:  defaultWidth,
		stages: st,
	}
}

// Init starts the calibration and the clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), calibrateCmd(m.ctx, m.ref.attach(m.opts)))
}

func calibrateCmd(ctx context.Context, opts calibration.Options) tea.Cmd {
	return func() tea.Msg {
		p, k, par, err := calibration.Calibrate(ctx, opts)
		return DoneMsg{Profile: p, Karatsuba: k, Parallel: par, Err: err}
	}
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.cancel()
			if !m.done {
				m.outcome.Err = context.Canceled
			}
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Details):
			m.details = !m.details
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 40)
		return m, nil

	case ProgressMsg:
		m.current = msg.Stage
		if st, ok := m.stages[msg.Stage]; ok {
			st.step, st.total = msg.Step, msg.Total
		}
		return m, nil

	case ResultMsg:
		if st, ok := m.stages[msg.Stage]; ok {
			st.results = append(st.results, msg.Result)
		}
		return m, nil

	case DoneMsg:
		m.done = true
		m.outcome = msg
		m.now = time.Now()
		m.cancel()
		return m, tea.Quit

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tickCmd()
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	var b strings.Builder
	title := titleStyle.Render("limbcalc calibration")
	info := labelStyle.Render(fmt.Sprintf("  base %s  ·  elapsed %s", m.opts.Base,
		format.FormatExecutionDuration(m.now.Sub(m.start))))
	b.WriteString(title + info + "\n\n")

	for _, name := range stages {
		b.WriteString(m.stageView(name))
		b.WriteByte('\n')
	}

	if m.outcome.Err != nil {
		b.WriteString("\n" + errorStyle.Render("✗ "+m.outcome.Err.Error()) + "\n")
	} else if m.done && m.outcome.Profile != nil {
		p := m.outcome.Profile
		b.WriteString("\n" + bestStyle.Render(fmt.Sprintf("✓ karatsuba=%d limbs, parallel=%d limbs",
			p.OptimalKaratsubaThreshold, p.OptimalParallelThreshold)) + "\n")
	}

	var help []string
	for _, k := range m.keymap.ShortHelp() {
		help = append(help, footerKeyStyle.Render(k.Help().Key)+" "+footerDescStyle.Render(k.Help().Desc))
	}
	b.WriteString("\n" + strings.Join(help, "  "))

	width := max(m.width-2, 20)
	return panelStyle.Width(width).Render(b.String())
}

func (m Model) stageView(name string) string {
	st := m.stages[name]
	var b strings.Builder

	label := labelStyle.Width(11).Render(name)
	if name == m.current && !m.done {
		label = valueStyle.Width(11).Render(name)
	}
	b.WriteString(label + progressBar(st.step, st.total, barWidth))
	fmt.Fprintf(&b, " %s", labelStyle.Render(fmt.Sprintf("%d/%d", st.step, st.total)))
	if spark := RenderSparkline(DurationPercents(st.results)); spark != "" {
		b.WriteString("  " + barStyle.Render(spark))
	}
	if best, ok := bestResult(st.results); ok {
		b.WriteString("  " + bestStyle.Render(fmt.Sprintf("best %s @ %d", format.FormatExecutionDuration(best.Duration), best.Threshold)))
	}
	b.WriteByte('\n')

	if m.details {
		for _, r := range st.results {
			d := format.FormatExecutionDuration(r.Duration)
			if r.Err != nil {
				d = errorStyle.Render("N/A")
			}
			fmt.Fprintf(&b, "%s%s %s\n", strings.Repeat(" ", 11),
				labelStyle.Width(12).Render(fmt.Sprintf("%d limbs", r.Threshold)), valueStyle.Render(d))
		}
	}
	return b.String()
}

// progressBar renders step/total as a bar of width cells.
func progressBar(step, total, width int) string {
	filled := 0
	if total > 0 {
		filled = min(step*width/total, width)
	}
	return barStyle.Render(strings.Repeat("█", filled)) + barEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func bestResult(results []calibration.Result) (calibration.Result, bool) {
	var best calibration.Result
	found := false
	for _, r := range results {
		if r.Err == nil && (!found || r.Duration < best.Duration) {
			best, found = r, true
		}
	}
	return best, found
}

// Run shows the dashboard on out while calibrating with opts, and returns
// the calibration outcome. Quitting early cancels the calibration.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts calibration.Options) (DoneMsg, error) {
	initStyles()
	m := NewModel(ctx, opts)
	defer m.cancel()

	p := tea.NewProgram(m, tea.WithInput(in), tea.WithOutput(out), tea.WithContext(ctx))
	m.ref.SetProgram(p)
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return DoneMsg{Err: ctx.Err()}, ctx.Err()
		}
		return DoneMsg{}, err
	}
	fm, ok := final.(Model)
	if !ok {
		return DoneMsg{}, fmt.Errorf("tui: unexpected model %T", final)
	}
	return fm.outcome, fm.outcome.Err
}

var _ tea.Model = Model{}

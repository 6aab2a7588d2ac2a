// Package api defines the driver API for running moo programs.
package api

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/core"
)

// Mode selects how a program is run.
type Mode int

const (
	// ModeRun runs without any extra output.
	ModeRun Mode = iota
	// ModeTrace prints every instruction and the machine state after it.
	ModeTrace
	// ModeStep waits for a confirmation line before every instruction.
	ModeStep
)

func (m Mode) String() string {
	switch m {
	case ModeRun:
		return "run"
	case ModeTrace:
		return "trace"
	case ModeStep:
		return "step"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case "run", "":
		return ModeRun, nil
	case "trace":
		return ModeTrace, nil
	case "step":
		return ModeStep, nil
	default:
		return ModeRun, fmt.Errorf("unknown mode %q", name)
	}
}

// Status tells how a run ended.
type Status int

const (
	Halted Status = iota
	Aborted
)

func (s Status) String() string {
	if s == Halted {
		return "halted"
	}

	return "aborted"
}

// RunResult describes a finished run. Reason is set only when the run
// aborted.
type RunResult struct {
	Status Status
	Reason error
	Steps  uint64
	Cycles uint64
}

// OK reports whether the run halted cleanly.
func (r RunResult) OK() bool {
	return r.Status == Halted
}

// Driver provides the interface to run programs.
type Driver interface {
	// Run runs the program in the mode the driver was built with.
	Run(program core.Program) RunResult

	// RunPlain runs the program without extra output.
	RunPlain(program core.Program) RunResult

	// RunWithTrace prints each instruction before it executes and the
	// machine state after it.
	RunWithTrace(program core.Program) RunResult

	// RunStepInteractive waits for a line on the confirmation input before
	// each instruction and prints the machine state after it.
	RunStepInteractive(program core.Program) RunResult
}

type driverImpl struct {
	name     string
	engine   sim.Engine
	freq     sim.Freq
	maxSteps uint64
	mode     Mode

	console core.Console
	out     io.Writer
	confirm *bufio.Reader
	style   string

	hooks   []sim.Hook
	monitor *monitoring.Monitor
	runs    int
}

func (d *driverImpl) Run(program core.Program) RunResult {
	return d.run(program, d.mode)
}

func (d *driverImpl) RunPlain(program core.Program) RunResult {
	return d.run(program, ModeRun)
}

func (d *driverImpl) RunWithTrace(program core.Program) RunResult {
	return d.run(program, ModeTrace)
}

func (d *driverImpl) RunStepInteractive(program core.Program) RunResult {
	return d.run(program, ModeStep)
}

func (d *driverImpl) run(program core.Program, mode Mode) RunResult {
	c := core.NewBuilder().
		WithEngine(d.engine).
		WithFreq(d.freq).
		WithMaxSteps(d.maxSteps).
		Build(fmt.Sprintf("%s.Core[%d]", d.name, d.runs))
	d.runs++

	switch mode {
	case ModeTrace:
		c.AcceptHook(&traceHook{out: d.out, style: d.style})
	case ModeStep:
		c.AcceptHook(&stepHook{out: d.out, in: d.confirm, style: d.style})
	}

	for _, h := range d.hooks {
		c.AcceptHook(h)
	}

	if d.monitor != nil {
		d.monitor.RegisterComponent(c)
	}

	slog.Debug("run program",
		"Driver", d.name,
		"Mode", mode.String(),
		"Instructions", program.Len(),
	)

	c.MapProgram(program, d.console)

	result := RunResult{Status: Halted}
	if err := d.engine.Run(); err != nil {
		result.Status = Aborted
		result.Reason = err
	}

	m := c.Machine()
	if err := m.Err(); err != nil && result.Reason == nil {
		result.Status = Aborted
		result.Reason = err
	}

	result.Steps = m.State().Steps
	result.Cycles = c.Cycles()

	core.LogState(m.State())

	return result
}

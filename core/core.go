package core

import (
	"log/slog"
	"math"

	"github.com/sarchlab/akita/v4/sim"
)

// Hook positions invoked around every dispatch. The hook item is the
// *Machine; after execution the detail is the step error, if any.
var (
	HookPosBeforeExec = &sim.HookPos{Name: "BeforeExec"}
	HookPosAfterExec  = &sim.HookPos{Name: "AfterExec"}
)

// Core drives a Machine from the simulation engine, one instruction per
// cycle.
type Core struct {
	*sim.TickingComponent

	machine  *Machine
	freq     sim.Freq
	maxSteps uint64
	start    sim.VTimeInSec
}

// MapProgram loads the program into a fresh machine and schedules the first
// tick.
func (c *Core) MapProgram(p Program, console Console) {
	c.machine = NewMachine(p, console)
	c.machine.SetMaxSteps(c.maxSteps)
	c.start = c.Engine.CurrentTime()

	Trace("MapProgram",
		"Core", c.Name(),
		"Instructions", p.Len(),
	)

	c.TickLater()
}

// Machine returns the machine mapped to the core.
func (c *Core) Machine() *Machine {
	return c.machine
}

// Cycles returns the number of cycles elapsed since the program was mapped.
func (c *Core) Cycles() uint64 {
	elapsed := float64(c.Engine.CurrentTime() - c.start)
	return uint64(math.Round(elapsed * float64(c.freq)))
}

// Tick runs one instruction.
func (c *Core) Tick() (madeProgress bool) {
	if c.machine == nil || c.machine.Done() {
		return false
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosBeforeExec,
		Item:   c.machine,
	})

	// A before-exec hook may abort the machine.
	if c.machine.Done() {
		return false
	}

	outcome, err := c.machine.Step()

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosAfterExec,
		Item:   c.machine,
		Detail: err,
	})

	switch outcome {
	case StepHalted:
		slog.Info("program halted",
			"Core", c.Name(),
			"Steps", c.machine.State().Steps,
		)
	case StepAborted:
		slog.Error("program aborted",
			"Core", c.Name(),
			"Error", err,
		)
	}

	return outcome == StepContinue
}

package api

import (
	"bufio"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/config"
	"github.com/sarchlab/moosim/core"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps uint64
	mode     Mode

	console core.Console
	out     io.Writer
	confirm io.Reader
	style   string

	hooks   []sim.Hook
	monitor *monitoring.Monitor
}

// WithEngine sets the engine.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the cores the driver creates.
func (b DriverBuilder) WithFreq(freq sim.Freq) DriverBuilder {
	b.freq = freq
	return b
}

// WithMaxSteps limits how many instructions a run may execute.
func (b DriverBuilder) WithMaxSteps(n uint64) DriverBuilder {
	b.maxSteps = n
	return b
}

// WithMode sets the mode used by Run.
func (b DriverBuilder) WithMode(mode Mode) DriverBuilder {
	b.mode = mode
	return b
}

// WithConsole sets the program I/O.
func (b DriverBuilder) WithConsole(console core.Console) DriverBuilder {
	b.console = console
	return b
}

// WithOutput sets where trace and step output goes.
func (b DriverBuilder) WithOutput(out io.Writer) DriverBuilder {
	b.out = out
	return b
}

// WithConfirmInput sets where step mode reads its confirmation lines from.
// By default it shares the console input.
func (b DriverBuilder) WithConfirmInput(in io.Reader) DriverBuilder {
	b.confirm = in
	return b
}

// WithTableStyle sets the style of the state dump.
func (b DriverBuilder) WithTableStyle(style string) DriverBuilder {
	b.style = style
	return b
}

// WithHook adds a hook to every core the driver creates.
func (b DriverBuilder) WithHook(hook sim.Hook) DriverBuilder {
	b.hooks = append(b.hooks[:len(b.hooks):len(b.hooks)], hook)
	return b
}

// WithMonitor sets the monitor that every core the driver creates is
// registered with.
func (b DriverBuilder) WithMonitor(monitor *monitoring.Monitor) DriverBuilder {
	b.monitor = monitor
	return b
}

// WithOptions applies runtime options. It panics if the options do not
// validate.
func (b DriverBuilder) WithOptions(opts config.Options) DriverBuilder {
	if err := opts.Validate(); err != nil {
		panic(err)
	}

	mode, err := ParseMode(opts.Mode)
	if err != nil {
		panic(err)
	}

	b.mode = mode
	b.maxSteps = opts.MaxSteps
	b.freq = opts.Freq
	b.style = opts.StateTableStyle

	return b
}

// Build create a driver.
func (b DriverBuilder) Build(name string) Driver {
	d := &driverImpl{
		name:     name,
		engine:   b.engine,
		freq:     b.freq,
		maxSteps: b.maxSteps,
		mode:     b.mode,
		console:  b.console,
		out:      b.out,
		style:    b.style,
		hooks:    b.hooks,
		monitor:  b.monitor,
	}

	if d.engine == nil {
		d.engine = sim.NewSerialEngine()
	}

	if d.freq == 0 {
		d.freq = 1 * sim.GHz
	}

	if d.out == nil {
		d.out = os.Stdout
	}

	if d.console == nil {
		d.console = core.NewConsole(os.Stdin, os.Stdout)
	}

	switch {
	case b.confirm != nil:
		d.confirm = bufio.NewReader(b.confirm)
	case hasInput(d.console):
		d.confirm = d.console.(inputConsole).Input()
	default:
		d.confirm = bufio.NewReader(os.Stdin)
	}

	return d
}

type inputConsole interface {
	Input() *bufio.Reader
}

func hasInput(c core.Console) bool {
	_, ok := c.(inputConsole)
	return ok
}

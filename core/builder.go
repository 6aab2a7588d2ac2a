package core

import (
	"github.com/sarchlab/akita/v4/sim"
)

// Builder can create new cores.
type Builder struct {
	engine   sim.Engine
	freq     sim.Freq
	maxSteps uint64
}

// WithEngine sets the engine.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithMaxSteps limits how many instructions a mapped program may execute.
// Zero means no limit.
func (b Builder) WithMaxSteps(n uint64) Builder {
	b.maxSteps = n
	return b
}

func NewBuilder() Builder {
	return Builder{
		freq: 1 * sim.GHz,
	}
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		panic("core builder requires an engine")
	}

	freq := b.freq
	if freq == 0 {
		freq = 1 * sim.GHz
	}

	c := &Core{
		freq:     freq,
		maxSteps: b.maxSteps,
	}

	c.TickingComponent = sim.NewTickingComponent(name, b.engine, freq, c)

	return c
}

package core

// StepOutcome is the result of a single dispatch.
type StepOutcome int

const (
	StepContinue StepOutcome = iota
	StepHalted
	StepAborted
)

func (o StepOutcome) String() string {
	switch o {
	case StepContinue:
		return "continue"
	case StepHalted:
		return "halted"
	case StepAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Machine runs one program once. A halted or aborted machine stays that way;
// load the program into a new machine to run it again.
type Machine struct {
	state    *State
	emu      *instEmulator
	maxSteps uint64
	err      error
}

// NewMachine creates a machine with a fresh tape and an empty register.
func NewMachine(p Program, console Console) *Machine {
	return &Machine{
		state: NewState(p),
		emu:   newInstEmulator(console),
	}
}

// SetMaxSteps limits the number of dispatches. Zero means no limit.
func (m *Machine) SetMaxSteps(n uint64) {
	m.maxSteps = n
}

// State exposes the execution context for inspection.
func (m *Machine) State() *State {
	return m.state
}

// Err returns the abort reason, or nil.
func (m *Machine) Err() error {
	return m.err
}

// Done reports whether the machine halted or aborted.
func (m *Machine) Done() bool {
	return m.state.Halted
}

// Abort stops the machine with err from outside the instruction stream.
func (m *Machine) Abort(err error) {
	if m.state.Halted {
		return
	}

	m.fail(err)
}

func (m *Machine) fail(err error) {
	s := m.state
	m.err = &AbortError{PC: s.PC, Op: s.Next(), Err: err}
	s.Halted = true
}

func (m *Machine) outcome() StepOutcome {
	switch {
	case m.err != nil:
		return StepAborted
	case m.state.Halted:
		return StepHalted
	default:
		return StepContinue
	}
}

// Step fetches and dispatches one instruction.
func (m *Machine) Step() (StepOutcome, error) {
	s := m.state
	if s.Halted {
		return m.outcome(), m.err
	}

	if m.maxSteps > 0 && s.Steps >= m.maxSteps {
		m.fail(ErrStepLimit)
		return StepAborted, m.err
	}

	pc := s.PC
	op := s.Next()

	Trace("Exec",
		"PC", pc,
		"Op", op,
		"Cursor", s.Tape.Cursor(),
		"Cell", s.Tape.Peek(),
	)

	err := m.emu.RunInst(op, s)
	s.Steps++

	if err != nil {
		s.PC = pc
		m.fail(err)
		return StepAborted, m.err
	}

	return m.outcome(), nil
}

// Run steps until the machine halts or aborts. It returns nil on a clean
// halt and an *AbortError otherwise.
func (m *Machine) Run() error {
	for {
		outcome, err := m.Step()
		if outcome != StepContinue {
			return err
		}
	}
}

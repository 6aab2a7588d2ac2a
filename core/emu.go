package core

import (
	"unicode/utf8"

	"github.com/sarchlab/moosim/isa"
)

// State is the execution context threaded through every instruction.
type State struct {
	Program  Program
	Tape     *Tape
	Register Register
	PC       int
	Halted   bool
	Steps    uint64
}

// NewState creates a fresh context for one execution of p.
func NewState(p Program) *State {
	return &State{
		Program: p,
		Tape:    NewTape(),
	}
}

// Next returns the instruction at the program counter.
func (s *State) Next() isa.Opcode {
	return s.Program.At(s.PC)
}

// Last returns the instruction before the program counter, if any.
func (s *State) Last() (isa.Opcode, bool) {
	if s.PC <= 0 {
		return 0, false
	}

	return s.Program.At(s.PC - 1), true
}

type instFunc func(state *State) error

type instEmulator struct {
	console Console
	funcs   map[isa.Opcode]instFunc
}

func newInstEmulator(console Console) *instEmulator {
	i := &instEmulator{console: console}

	i.funcs = map[isa.Opcode]instFunc{
		isa.LoopReturn:     i.runLoopReturn,
		isa.MoveBack:       i.runMoveBack,
		isa.MoveForward:    i.runMoveForward,
		isa.IndirectExec:   i.runIndirectExec,
		isa.IoChar:         i.runIoChar,
		isa.Decrement:      i.runDecrement,
		isa.Increment:      i.runIncrement,
		isa.LoopStart:      i.runLoopStart,
		isa.Zero:           i.runZero,
		isa.RegisterToggle: i.runRegisterToggle,
		isa.PrintInt:       i.runPrintInt,
		isa.ReadInt:        i.runReadInt,
	}

	return i
}

// RunInst executes one instruction against the state. Anything that is not
// a source opcode halts.
func (i *instEmulator) RunInst(op isa.Opcode, state *State) error {
	if f, ok := i.funcs[op]; ok {
		return f(state)
	}

	state.Halted = true

	return nil
}

func (i *instEmulator) runLoopReturn(state *State) error {
	if target, ok := FindLoopStart(state.Program, state.PC); ok {
		state.PC = target
		return nil
	}

	state.PC++

	return nil
}

func (i *instEmulator) runLoopStart(state *State) error {
	if !state.Tape.IsZero() {
		state.PC++
		return nil
	}

	if exit, ok := FindLoopExit(state.Program, state.PC); ok {
		state.PC = exit + 1
		return nil
	}

	state.PC++

	return nil
}

func (i *instEmulator) runMoveBack(state *State) error {
	if err := state.Tape.MoveBackward(); err != nil {
		return err
	}

	state.PC++

	return nil
}

func (i *instEmulator) runMoveForward(state *State) error {
	state.Tape.MoveForward()
	state.PC++

	return nil
}

// runIndirectExec executes the current cell as an instruction. The delegated
// instruction moves the PC. Only a cell holding IndirectExec's own code can
// re-enter here, so that single case is the only one that needs a guard.
func (i *instEmulator) runIndirectExec(state *State) error {
	v := state.Tape.Peek()
	if !v.IsInt64() {
		state.Halted = true
		return nil
	}

	op, ok := isa.Decode(v.Int64())
	if !ok {
		state.Halted = true
		return nil
	}

	if op == isa.IndirectExec {
		return ErrSelfReferentialHalt
	}

	Trace("IndirectExec", "PC", state.PC, "Op", op)

	return i.RunInst(op, state)
}

func (i *instEmulator) runIoChar(state *State) error {
	if state.Tape.IsZero() {
		c, err := i.console.ReadChar()
		if err != nil {
			return err
		}
		state.Tape.WriteInt64(int64(c))
		state.PC++

		return nil
	}

	if err := i.console.WriteChar(cellRune(state.Tape)); err != nil {
		return err
	}
	state.PC++

	return nil
}

func cellRune(t *Tape) rune {
	v := t.Peek()
	if !v.IsInt64() {
		return utf8.RuneError
	}

	n := v.Int64()
	if n < 0 || n > utf8.MaxRune || !utf8.ValidRune(rune(n)) {
		return utf8.RuneError
	}

	return rune(n)
}

func (i *instEmulator) runDecrement(state *State) error {
	state.Tape.Decrement()
	state.PC++

	return nil
}

func (i *instEmulator) runIncrement(state *State) error {
	state.Tape.Increment()
	state.PC++

	return nil
}

func (i *instEmulator) runZero(state *State) error {
	state.Tape.Zero()
	state.PC++

	return nil
}

func (i *instEmulator) runRegisterToggle(state *State) error {
	state.Register.Toggle(state.Tape)
	state.PC++

	return nil
}

func (i *instEmulator) runPrintInt(state *State) error {
	if err := i.console.WriteInt(state.Tape.Peek()); err != nil {
		return err
	}
	state.PC++

	return nil
}

func (i *instEmulator) runReadInt(state *State) error {
	v, err := i.console.ReadInt()
	if err != nil {
		return err
	}

	state.Tape.Write(v)
	state.PC++

	return nil
}

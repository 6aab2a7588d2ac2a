package core

import "github.com/cockroachdb/apd/v3"

// RegisterState tells whether the register holds a value.
type RegisterState uint8

const (
	RegisterEmpty RegisterState = iota
	RegisterHolding
)

// Register is the single-slot capture/paste buffer.
type Register struct {
	state RegisterState
	value apd.BigInt
}

// State returns whether the register is empty or holding.
func (r *Register) State() RegisterState {
	return r.state
}

// Holding returns a copy of the held value, if any.
func (r *Register) Holding() (*apd.BigInt, bool) {
	if r.state != RegisterHolding {
		return nil, false
	}

	return new(apd.BigInt).Set(&r.value), true
}

// Capture snapshots the current cell. The cell keeps its value. It does
// nothing when the register is already holding.
func (r *Register) Capture(t *Tape) {
	if r.state == RegisterHolding {
		return
	}

	r.value.Set(t.Peek())
	r.state = RegisterHolding
}

// Paste writes the held value into the current cell and empties the
// register. It does nothing when the register is empty.
func (r *Register) Paste(t *Tape) {
	if r.state != RegisterHolding {
		return
	}

	t.Write(&r.value)
	r.value.SetInt64(0)
	r.state = RegisterEmpty
}

// Toggle captures when empty and pastes when holding.
func (r *Register) Toggle(t *Tape) {
	if r.state == RegisterEmpty {
		r.Capture(t)
		return
	}

	r.Paste(t)
}

func (r *Register) String() string {
	if r.state != RegisterHolding {
		return "empty"
	}

	return r.value.String()
}

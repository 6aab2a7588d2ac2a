package core

import "github.com/cockroachdb/apd/v3"

var (
	bigOne  = apd.NewBigInt(1)
	bigZero = apd.NewBigInt(0)
)

// Tape is the growable memory of the machine. It starts with a single zero
// cell and never shrinks. Cells are unbounded integers.
type Tape struct {
	cells  []*apd.BigInt
	cursor int
}

// NewTape creates a tape holding one zero cell.
func NewTape() *Tape {
	return &Tape{
		cells: []*apd.BigInt{new(apd.BigInt)},
	}
}

// Cursor returns the index of the current cell.
func (t *Tape) Cursor() int {
	return t.cursor
}

// Len returns the number of cells that have been touched so far.
func (t *Tape) Len() int {
	return len(t.cells)
}

// Read returns a copy of the current cell.
func (t *Tape) Read() *apd.BigInt {
	return new(apd.BigInt).Set(t.cells[t.cursor])
}

// Peek returns the current cell without copying. Callers must not modify it.
func (t *Tape) Peek() *apd.BigInt {
	return t.cells[t.cursor]
}

// Cell returns a copy of the cell at index i.
func (t *Tape) Cell(i int) *apd.BigInt {
	return new(apd.BigInt).Set(t.cells[i])
}

// Write sets the current cell to v.
func (t *Tape) Write(v *apd.BigInt) {
	t.cells[t.cursor].Set(v)
}

// WriteInt64 sets the current cell to v.
func (t *Tape) WriteInt64(v int64) {
	t.cells[t.cursor].SetInt64(v)
}

// IsZero reports whether the current cell holds 0.
func (t *Tape) IsZero() bool {
	return t.cells[t.cursor].Sign() == 0
}

// MoveForward advances the cursor, appending a zero cell when it walks off
// the end.
func (t *Tape) MoveForward() {
	t.cursor++
	if t.cursor == len(t.cells) {
		t.cells = append(t.cells, new(apd.BigInt))
	}
}

// MoveBackward moves the cursor back one cell. The cursor is left unchanged
// when it is already at 0.
func (t *Tape) MoveBackward() error {
	if t.cursor == 0 {
		return ErrTapeUnderflow
	}

	t.cursor--

	return nil
}

// Increment adds one to the current cell.
func (t *Tape) Increment() {
	c := t.cells[t.cursor]
	c.Add(c, bigOne)
}

// Decrement subtracts one from the current cell.
func (t *Tape) Decrement() {
	c := t.cells[t.cursor]
	c.Sub(c, bigOne)
}

// Zero sets the current cell to 0.
func (t *Tape) Zero() {
	t.cells[t.cursor].Set(bigZero)
}

// Package isa defines the instruction set of the moo machine.
package isa

// Opcode identifies one instruction. The twelve source opcodes carry their
// canonical code (0-11) as their value, which is also the value a tape cell
// must hold for IndirectExec to dispatch to them.
type Opcode uint8

const (
	LoopReturn     Opcode = iota // moo
	MoveBack                     // mOo
	MoveForward                  // moO
	IndirectExec                 // mOO
	IoChar                       // Moo
	Decrement                    // MOo
	Increment                    // MoO
	LoopStart                    // MOO
	Zero                         // OOO
	RegisterToggle               // MMM
	PrintInt                     // OOM
	ReadInt                      // oom

	// EndOfProgram never appears in source text. The loader appends it.
	EndOfProgram Opcode = 255
)

// NumCodes is the number of opcodes that have a canonical code.
const NumCodes = 12

// MnemonicLen is the length of every source mnemonic.
const MnemonicLen = 3

var mnemonics = [NumCodes]string{
	"moo",
	"mOo",
	"moO",
	"mOO",
	"Moo",
	"MOo",
	"MoO",
	"MOO",
	"OOO",
	"MMM",
	"OOM",
	"oom",
}

var roles = [NumCodes]string{
	"LoopReturn",
	"MoveBack",
	"MoveForward",
	"IndirectExec",
	"IoChar",
	"Decrement",
	"Increment",
	"LoopStart",
	"Zero",
	"RegisterToggle",
	"PrintInt",
	"ReadInt",
}

var byMnemonic = func() map[string]Opcode {
	m := make(map[string]Opcode, NumCodes)
	for i, name := range mnemonics {
		m[name] = Opcode(i)
	}
	return m
}()

// Lookup maps a source mnemonic to its opcode. The match is exact and case
// sensitive.
func Lookup(mnemonic string) (Opcode, bool) {
	op, ok := byMnemonic[mnemonic]
	return op, ok
}

// Decode maps a canonical code to its opcode. Codes outside [0, NumCodes)
// are undefined.
func Decode(code int64) (Opcode, bool) {
	if code < 0 || code >= NumCodes {
		return 0, false
	}

	return Opcode(code), true
}

// Valid reports whether the opcode is one of the twelve source opcodes.
func (o Opcode) Valid() bool {
	return o < NumCodes
}

// Code returns the canonical code of the opcode.
func (o Opcode) Code() (int, bool) {
	if !o.Valid() {
		return 0, false
	}

	return int(o), true
}

// String returns the source mnemonic, or EOF for the sentinel.
func (o Opcode) String() string {
	switch {
	case o.Valid():
		return mnemonics[o]
	case o == EndOfProgram:
		return "EOF"
	default:
		return "???"
	}
}

// Role returns a descriptive name of what the opcode does.
func (o Opcode) Role() string {
	switch {
	case o.Valid():
		return roles[o]
	case o == EndOfProgram:
		return "EndOfProgram"
	default:
		return "Unknown"
	}
}

// Mnemonics returns the source mnemonics ordered by code.
func Mnemonics() []string {
	out := make([]string, NumCodes)
	copy(out, mnemonics[:])
	return out
}

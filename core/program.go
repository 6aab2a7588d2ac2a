package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/moosim/isa"
)

// Program is the loaded instruction sequence. It always ends with exactly one
// EndOfProgram and is not modified after loading.
type Program struct {
	ops []isa.Opcode
}

// NewProgram builds a program from opcodes, appending the sentinel.
func NewProgram(ops ...isa.Opcode) Program {
	p := Program{ops: make([]isa.Opcode, 0, len(ops)+1)}
	for _, op := range ops {
		if op == isa.EndOfProgram {
			continue
		}
		p.ops = append(p.ops, op)
	}
	p.ops = append(p.ops, isa.EndOfProgram)

	return p
}

// Len returns the number of instructions, including the sentinel.
func (p Program) Len() int {
	return len(p.ops)
}

// At returns the instruction at index i. Indices past the end read as the
// sentinel.
func (p Program) At(i int) isa.Opcode {
	if i < 0 || i >= len(p.ops) {
		return isa.EndOfProgram
	}

	return p.ops[i]
}

// Ops returns a copy of the instructions, including the sentinel.
func (p Program) Ops() []isa.Opcode {
	out := make([]isa.Opcode, len(p.ops))
	copy(out, p.ops)

	return out
}

// String renders the program as space separated mnemonics without the
// sentinel.
func (p Program) String() string {
	var sb strings.Builder
	for i, op := range p.ops {
		if op == isa.EndOfProgram {
			break
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.String())
	}

	return sb.String()
}

// LoadProgramFile reads and loads a source file.
func LoadProgramFile(path string) (Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Program{}, fmt.Errorf("failed to read program file %s: %w", path, err)
	}

	p, err := LoadBytes(data)
	if err != nil {
		return Program{}, fmt.Errorf("%s:%w", path, err)
	}

	return p, nil
}

// LoadReader reads all of r and loads it.
func LoadReader(r io.Reader) (Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Program{}, fmt.Errorf("failed to read program: %w", err)
	}

	return LoadBytes(data)
}

// Load tokenizes source text into a program.
func Load(src string) (Program, error) {
	return LoadBytes([]byte(src))
}

// LoadBytes tokenizes source text into a program.
//
// Whitespace separates tokens. A token starting with ';' or '/' discards the
// rest of its line. Every other token is exactly three bytes and must match
// one of the mnemonics.
func LoadBytes(src []byte) (Program, error) {
	l := loader{src: src, line: 1, lineStart: 0}
	ops := make([]isa.Opcode, 0, len(src)/(isa.MnemonicLen+1)+1)

	for {
		l.skipSpace()
		if l.pos >= len(l.src) {
			break
		}

		switch l.src[l.pos] {
		case ';', '/':
			l.skipLine()
			continue
		}

		op, err := l.next()
		if err != nil {
			return Program{}, err
		}
		ops = append(ops, op)
	}

	Trace("Load", "Instructions", len(ops))

	return NewProgram(ops...), nil
}

type loader struct {
	src       []byte
	pos       int
	line      int
	lineStart int
}

func (l *loader) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		if l.src[l.pos] == '\n' {
			l.newLine(l.pos + 1)
		}
		l.pos++
	}
}

func (l *loader) skipLine() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		l.pos++
		if c == '\n' {
			l.newLine(l.pos)
			return
		}
	}
}

func (l *loader) newLine(start int) {
	l.line++
	l.lineStart = start
}

func (l *loader) next() (isa.Opcode, error) {
	start := l.pos
	end := start + isa.MnemonicLen
	if end > len(l.src) {
		end = len(l.src)
	}
	token := string(l.src[start:end])

	op, ok := isa.Lookup(token)
	if !ok {
		return 0, &ParseError{
			Offset: start,
			Line:   l.line,
			Column: start - l.lineStart + 1,
			Token:  token,
		}
	}

	l.pos = end

	return op, nil
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}

	return false
}

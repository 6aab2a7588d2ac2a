package core

import (
	"errors"
	"fmt"

	"github.com/sarchlab/moosim/isa"
)

// Fatal conditions. A run that hits any of them aborts; it is never retried.
var (
	ErrParse               = errors.New("parse error")
	ErrTapeUnderflow       = errors.New("tape underflow")
	ErrSelfReferentialHalt = errors.New("halting to prevent infinite loop")
	ErrInput               = errors.New("input error")
	ErrOutput              = errors.New("output error")
	ErrStepLimit           = errors.New("step limit exceeded")
)

// ParseError reports a token that is not one of the twelve mnemonics.
type ParseError struct {
	Offset int
	Line   int
	Column int
	Token  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: unknown instruction %q", e.Line, e.Column, e.Token)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// AbortError records where a fatal runtime error happened.
type AbortError struct {
	PC  int
	Op  isa.Opcode
	Err error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("abort at PC %d (%s): %v", e.PC, e.Op, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

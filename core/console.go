package core

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
)

// EndOfInput is what a character read yields once input is exhausted.
const EndOfInput = -1

// Console is the I/O port of the machine. Reads block until input is
// available.
type Console interface {
	// ReadChar reads one byte. It returns EndOfInput at the end of input.
	ReadChar() (int, error)

	// ReadInt reads one whitespace delimited decimal integer.
	ReadInt() (*apd.BigInt, error)

	// WriteChar writes the character followed by a line terminator.
	WriteChar(r rune) error

	// WriteInt writes the decimal value followed by a line terminator.
	WriteInt(v *apd.BigInt) error
}

// StreamConsole is a Console over a reader and a writer.
type StreamConsole struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console. If in is already a *bufio.Reader it is used
// directly, so other readers of the same stream stay in sync.
func NewConsole(in io.Reader, out io.Writer) *StreamConsole {
	return &StreamConsole{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Input returns the buffered reader that backs the console.
func (c *StreamConsole) Input() *bufio.Reader {
	return c.in
}

func (c *StreamConsole) ReadChar() (int, error) {
	b, err := c.in.ReadByte()
	if errors.Is(err, io.EOF) {
		return EndOfInput, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInput, err)
	}

	return int(b), nil
}

func (c *StreamConsole) ReadInt() (*apd.BigInt, error) {
	token, err := c.readToken()
	if err != nil {
		return nil, err
	}

	v, ok := new(apd.BigInt).SetString(token, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an integer", ErrInput, token)
	}

	return v, nil
}

func (c *StreamConsole) readToken() (string, error) {
	var token []byte

	for {
		b, err := c.in.ReadByte()
		if errors.Is(err, io.EOF) {
			if len(token) == 0 {
				return "", fmt.Errorf("%w: unexpected end of input", ErrInput)
			}
			return string(token), nil
		}
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInput, err)
		}

		if isSpace(b) {
			if len(token) == 0 {
				continue
			}
			return string(token), nil
		}

		token = append(token, b)
	}
}

func (c *StreamConsole) WriteChar(r rune) error {
	buf := make([]byte, 0, utf8.UTFMax+1)
	buf = utf8.AppendRune(buf, r)
	buf = append(buf, '\n')

	if _, err := c.out.Write(buf); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}

	return nil
}

func (c *StreamConsole) WriteInt(v *apd.BigInt) error {
	if _, err := fmt.Fprintln(c.out, v.String()); err != nil {
		return fmt.Errorf("%w: %v", ErrOutput, err)
	}

	return nil
}

package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

var tableStyles = map[string]table.Style{
	"default": table.StyleDefault,
	"light":   table.StyleLight,
	"rounded": table.StyleRounded,
	"bold":    table.StyleBold,
	"double":  table.StyleDouble,
}

// TableStyle returns the go-pretty style registered under name.
func TableStyle(name string) (table.Style, bool) {
	s, ok := tableStyles[name]
	return s, ok
}

// PrintState writes a dump of the tape, register and counters. Cells are
// listed two per row.
func PrintState(w io.Writer, state *State, style string) {
	memTable := table.NewWriter()
	memTable.SetTitle("MEM")
	if s, ok := TableStyle(style); ok {
		memTable.SetStyle(s)
	}
	memTable.AppendHeader(table.Row{"Addr", "Value", "Addr", "Value"})

	t := state.Tape
	for i := 0; i < t.Len(); i += 2 {
		row := table.Row{i, t.Cell(i).String()}
		if i+1 < t.Len() {
			row = append(row, i+1, t.Cell(i+1).String())
		} else {
			row = append(row, "", "")
		}
		memTable.AppendRow(row)
	}

	fmt.Fprintln(w, memTable.Render())

	stateTable := table.NewWriter()
	if s, ok := TableStyle(style); ok {
		stateTable.SetStyle(s)
	}
	stateTable.AppendRow(table.Row{"Register", state.Register.String()})
	stateTable.AppendRow(table.Row{"Current memory value", t.Peek().String()})
	stateTable.AppendRow(table.Row{"Program pointer", state.PC})
	stateTable.AppendRow(table.Row{"Memory pointer", t.Cursor()})
	if last, ok := state.Last(); ok {
		stateTable.AppendRow(table.Row{"Last instruction", last.String()})
	}
	stateTable.AppendRow(table.Row{"Next instruction", state.Next().String()})

	fmt.Fprintln(w, stateTable.Render())
	fmt.Fprintln(w)
}

func LogState(state *State) {
	slog.Debug("StateCheckpoint",
		"PC", state.PC,
		"Halted", state.Halted,
		"Steps", state.Steps,
		"Cursor", state.Tape.Cursor(),
		"Cells", state.Tape.Len(),
		"Register", state.Register.String(),
	)
}

package api

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/moosim/core"
)

type traceHook struct {
	out   io.Writer
	style string
}

func (h *traceHook) Func(ctx sim.HookCtx) {
	m, ok := ctx.Item.(*core.Machine)
	if !ok {
		return
	}

	switch ctx.Pos {
	case core.HookPosBeforeExec:
		fmt.Fprintf(h.out, "Executing: %s\n", m.State().Next())
	case core.HookPosAfterExec:
		core.PrintState(h.out, m.State(), h.style)
	}
}

type stepHook struct {
	out   io.Writer
	in    *bufio.Reader
	style string
}

func (h *stepHook) Func(ctx sim.HookCtx) {
	m, ok := ctx.Item.(*core.Machine)
	if !ok {
		return
	}

	switch ctx.Pos {
	case core.HookPosBeforeExec:
		s := m.State()
		fmt.Fprintf(h.out,
			"Press [return] to execute command at pointer %d (%s)...\n",
			s.PC, s.Next())

		line, err := h.in.ReadString('\n')
		if errors.Is(err, io.EOF) && line != "" {
			return
		}
		if err != nil {
			m.Abort(fmt.Errorf("%w: step confirmation: %v", core.ErrInput, err))
		}
	case core.HookPosAfterExec:
		core.PrintState(h.out, m.State(), h.style)
	}
}

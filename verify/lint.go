// Package verify provides static checks and reports for moo programs.
//
// Lint issues are warnings. They point at code whose run-time behavior is
// probably not what the author meant, but they never change how a program
// executes:
//
//   - STRUCT: a MOO with no moo it could skip to, or a moo with no MOO it
//     could return to.
//   - FLOW: a MOO whose skip target is the moo of a nested loop, so leaving
//     the outer loop resumes inside it.
//   - HALT: a mOO that always executes itself and aborts the run.
package verify

import (
	"fmt"

	"github.com/sarchlab/moosim/core"
	"github.com/sarchlab/moosim/isa"
)

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // Unmatched loop marker
	IssueFlow   IssueType = "FLOW"   // Loop exit lands inside an enclosing loop
	IssueHalt   IssueType = "HALT"   // Self-referential indirect execution
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType
	PC      int
	Op      isa.Opcode
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] pc=%d %s: %s", i.Type, i.PC, i.Op, i.Message)
}

// RunLint performs static lint checks on a program. Issues are returned in
// program order.
func RunLint(p core.Program) []Issue {
	var issues []Issue

	for pc := 0; pc < p.Len(); pc++ {
		switch op := p.At(pc); op {
		case isa.LoopStart:
			issues = append(issues, lintLoopStart(p, pc)...)
		case isa.LoopReturn:
			if _, ok := core.FindLoopStart(p, pc); !ok {
				issues = append(issues, Issue{
					Type:    IssueStruct,
					PC:      pc,
					Op:      op,
					Message: "no MOO to return to; execution falls through",
				})
			}
		case isa.IndirectExec:
			if loadsThree(p, pc) {
				issues = append(issues, Issue{
					Type:    IssueHalt,
					PC:      pc,
					Op:      op,
					Message: "current cell is always 3; the run aborts here",
				})
			}
		}
	}

	return issues
}

func lintLoopStart(p core.Program, pc int) []Issue {
	exit, ok := core.FindLoopExit(p, pc)
	if !ok {
		return []Issue{{
			Type:    IssueStruct,
			PC:      pc,
			Op:      isa.LoopStart,
			Message: "no moo to skip to; a zero cell falls through",
		}}
	}

	start, ok := core.FindLoopStart(p, exit)
	if ok && start != pc {
		return []Issue{{
			Type: IssueFlow,
			PC:   pc,
			Op:   isa.LoopStart,
			Message: fmt.Sprintf(
				"a zero cell skips to pc %d, which closes the loop at pc %d",
				exit+1, start),
		}}
	}

	return nil
}

// loadsThree reports whether the instructions right before pc are OOO
// followed by exactly three MoO.
func loadsThree(p core.Program, pc int) bool {
	if pc < 4 || p.At(pc-4) != isa.Zero {
		return false
	}

	for i := pc - 3; i < pc; i++ {
		if p.At(i) != isa.Increment {
			return false
		}
	}

	return true
}

package core

import "github.com/sarchlab/moosim/isa"

// FindLoopExit looks for the LoopReturn that a LoopStart at pc jumps past.
// The scan starts at pc+2, so the instruction right after the LoopStart is
// never the match. Nesting is not tracked: the nearest LoopReturn wins.
func FindLoopExit(p Program, pc int) (int, bool) {
	for i := pc + 2; i < p.Len(); i++ {
		if p.At(i) == isa.LoopReturn {
			return i, true
		}
	}

	return 0, false
}

// FindLoopStart looks for the LoopStart that a LoopReturn at pc returns to.
// The scan starts at pc-2 and walks backward, skipping the LoopStart of
// every nested LoopReturn it passes.
func FindLoopStart(p Program, pc int) (int, bool) {
	level := 0
	for i := pc - 2; i >= 0; i-- {
		switch p.At(i) {
		case isa.LoopReturn:
			level++
		case isa.LoopStart:
			if level == 0 {
				return i, true
			}
			level--
		}
	}

	return 0, false
}

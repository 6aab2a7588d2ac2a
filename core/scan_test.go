package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/moosim/core"
	"github.com/sarchlab/moosim/isa"
)

var _ = Describe("Loop scans", func() {
	Describe("FindLoopExit", func() {
		It("should skip the instruction right after the loop start", func() {
			p := core.NewProgram(isa.Zero, isa.LoopStart, isa.LoopReturn, isa.LoopReturn)

			exit, ok := core.FindLoopExit(p, 1)
			Expect(ok).To(BeTrue())
			Expect(exit).To(Equal(3))
		})

		It("should pick the nearest loop return", func() {
			p := core.NewProgram(
				isa.LoopStart, isa.Increment,
				isa.LoopStart, isa.Increment, isa.LoopReturn,
				isa.LoopReturn,
			)

			exit, ok := core.FindLoopExit(p, 0)
			Expect(ok).To(BeTrue())
			Expect(exit).To(Equal(4))
		})

		It("should report no match", func() {
			p := core.NewProgram(isa.LoopStart, isa.LoopReturn)

			_, ok := core.FindLoopExit(p, 0)
			Expect(ok).To(BeFalse())
		})
	})

	Describe("FindLoopStart", func() {
		It("should skip the instruction right before the loop return", func() {
			p := core.NewProgram(isa.LoopStart, isa.LoopStart, isa.LoopReturn)

			start, ok := core.FindLoopStart(p, 2)
			Expect(ok).To(BeTrue())
			Expect(start).To(Equal(0))
		})

		It("should step over nested loops", func() {
			p := core.NewProgram(
				isa.LoopStart,  // 0
				isa.Increment,  // 1
				isa.LoopStart,  // 2
				isa.Decrement,  // 3
				isa.LoopReturn, // 4
				isa.Increment,  // 5
				isa.LoopReturn, // 6
			)

			start, ok := core.FindLoopStart(p, 6)
			Expect(ok).To(BeTrue())
			Expect(start).To(Equal(0))

			start, ok = core.FindLoopStart(p, 4)
			Expect(ok).To(BeTrue())
			Expect(start).To(Equal(2))
		})

		It("should report no match", func() {
			p := core.NewProgram(isa.Increment, isa.Increment, isa.LoopReturn)

			_, ok := core.FindLoopStart(p, 2)
			Expect(ok).To(BeFalse())

			_, ok = core.FindLoopStart(p, 0)
			Expect(ok).To(BeFalse())
		})
	})
})

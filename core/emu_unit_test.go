package core

import (
	"bytes"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/moosim/isa"
)

var _ = Describe("InstEmulator", func() {
	var (
		ie  *instEmulator
		s   *State
		in  *strings.Reader
		out *bytes.Buffer
	)

	load := func(ops ...isa.Opcode) {
		s = NewState(NewProgram(ops...))
	}

	BeforeEach(func() {
		in = strings.NewReader("")
		out = &bytes.Buffer{}
		ie = newInstEmulator(NewConsole(in, out))
		load()
	})

	Context("Tape instructions", func() {
		It("should move forward and back", func() {
			load(isa.MoveForward, isa.MoveBack)

			Expect(ie.RunInst(isa.MoveForward, s)).To(Succeed())
			Expect(s.Tape.Cursor()).To(Equal(1))
			Expect(s.PC).To(Equal(1))

			Expect(ie.RunInst(isa.MoveBack, s)).To(Succeed())
			Expect(s.Tape.Cursor()).To(Equal(0))
			Expect(s.PC).To(Equal(2))
		})

		It("should fail moving back from the first cell", func() {
			load(isa.MoveBack)

			err := ie.RunInst(isa.MoveBack, s)
			Expect(err).To(MatchError(ErrTapeUnderflow))
			Expect(s.PC).To(Equal(0))
		})

		It("should increment, decrement and zero", func() {
			Expect(ie.RunInst(isa.Increment, s)).To(Succeed())
			Expect(ie.RunInst(isa.Increment, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64(2)))

			Expect(ie.RunInst(isa.Decrement, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64(1)))

			Expect(ie.RunInst(isa.Zero, s)).To(Succeed())
			Expect(s.Tape.IsZero()).To(BeTrue())
			Expect(s.PC).To(Equal(4))
		})

		It("should toggle the register", func() {
			s.Tape.WriteInt64(8)
			Expect(ie.RunInst(isa.RegisterToggle, s)).To(Succeed())
			Expect(s.Register.State()).To(Equal(RegisterHolding))
			Expect(s.PC).To(Equal(1))
		})
	})

	Context("I/O instructions", func() {
		It("should print integers with a line terminator", func() {
			s.Tape.WriteInt64(-12)
			Expect(ie.RunInst(isa.PrintInt, s)).To(Succeed())
			Expect(out.String()).To(Equal("-12\n"))
			Expect(s.PC).To(Equal(1))
		})

		It("should print characters with a line terminator", func() {
			s.Tape.WriteInt64(65)
			Expect(ie.RunInst(isa.IoChar, s)).To(Succeed())
			Expect(out.String()).To(Equal("A\n"))
		})

		It("should print the replacement character for invalid code points", func() {
			s.Tape.WriteInt64(-5)
			Expect(ie.RunInst(isa.IoChar, s)).To(Succeed())
			Expect(out.String()).To(Equal("�\n"))
		})

		It("should read a character into a zero cell", func() {
			ie = newInstEmulator(NewConsole(strings.NewReader("z"), out))

			Expect(ie.RunInst(isa.IoChar, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64('z')))
			Expect(out.Len()).To(Equal(0))
		})

		It("should store the end marker when input is exhausted", func() {
			Expect(ie.RunInst(isa.IoChar, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64(EndOfInput)))
		})

		It("should read an integer", func() {
			ie = newInstEmulator(NewConsole(strings.NewReader("  -340\n"), out))

			Expect(ie.RunInst(isa.ReadInt, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64(-340)))
			Expect(s.PC).To(Equal(1))
		})

		It("should fail on malformed integers", func() {
			ie = newInstEmulator(NewConsole(strings.NewReader("12a"), out))

			err := ie.RunInst(isa.ReadInt, s)
			Expect(err).To(MatchError(ErrInput))
			Expect(s.PC).To(Equal(0))
		})
	})

	Context("Marker instructions", func() {
		It("should enter the loop body when the cell is not zero", func() {
			load(isa.LoopStart, isa.Increment, isa.LoopReturn)
			s.Tape.WriteInt64(1)

			Expect(ie.RunInst(isa.LoopStart, s)).To(Succeed())
			Expect(s.PC).To(Equal(1))
		})

		It("should jump past the matching return when the cell is zero", func() {
			load(isa.LoopStart, isa.Increment, isa.LoopReturn, isa.PrintInt)

			Expect(ie.RunInst(isa.LoopStart, s)).To(Succeed())
			Expect(s.PC).To(Equal(3))
		})

		It("should fall through without a matching return", func() {
			load(isa.LoopStart, isa.LoopReturn)

			Expect(ie.RunInst(isa.LoopStart, s)).To(Succeed())
			Expect(s.PC).To(Equal(1))
		})

		It("should return to the loop start itself", func() {
			load(isa.LoopStart, isa.Increment, isa.LoopReturn)
			s.PC = 2

			Expect(ie.RunInst(isa.LoopReturn, s)).To(Succeed())
			Expect(s.PC).To(Equal(0))
		})

		It("should fall through when returning without a loop start", func() {
			load(isa.Increment, isa.Increment, isa.LoopReturn)
			s.PC = 2

			Expect(ie.RunInst(isa.LoopReturn, s)).To(Succeed())
			Expect(s.PC).To(Equal(3))
		})
	})

	Context("IndirectExec", func() {
		It("should delegate to the decoded instruction", func() {
			load(isa.IndirectExec)
			s.Tape.WriteInt64(int64(isa.Increment))

			Expect(ie.RunInst(isa.IndirectExec, s)).To(Succeed())
			Expect(s.Tape.Read().Int64()).To(Equal(int64(isa.Increment) + 1))
			Expect(s.PC).To(Equal(1))
			Expect(s.Halted).To(BeFalse())
		})

		It("should let a delegated marker set the PC", func() {
			load(isa.LoopStart, isa.Increment, isa.IndirectExec)
			s.PC = 2
			s.Tape.WriteInt64(int64(isa.LoopReturn))

			Expect(ie.RunInst(isa.IndirectExec, s)).To(Succeed())
			Expect(s.PC).To(Equal(0))
		})

		DescribeTable("should halt cleanly on undefined codes",
			func(v int64) {
				s.Tape.WriteInt64(v)
				Expect(ie.RunInst(isa.IndirectExec, s)).To(Succeed())
				Expect(s.Halted).To(BeTrue())
				Expect(s.PC).To(Equal(0))
			},
			Entry("negative", int64(-1)),
			Entry("just past the range", int64(12)),
			Entry("the sentinel value", int64(255)),
		)

		It("should halt cleanly on codes wider than 64 bits", func() {
			for i := 0; i < 64; i++ {
				s.Tape.Increment()
			}
			v := s.Tape.Read()
			v.Mul(v, v)
			v.Mul(v, v)
			v.Mul(v, v)
			v.Mul(v, v)
			v.Mul(v, v)
			s.Tape.Write(v)
			Expect(s.Tape.Peek().IsInt64()).To(BeFalse())

			Expect(ie.RunInst(isa.IndirectExec, s)).To(Succeed())
			Expect(s.Halted).To(BeTrue())
		})

		It("should refuse to execute itself", func() {
			s.Tape.WriteInt64(int64(isa.IndirectExec))

			err := ie.RunInst(isa.IndirectExec, s)
			Expect(err).To(MatchError(ErrSelfReferentialHalt))
			Expect(s.Halted).To(BeFalse())
		})
	})

	It("should halt on the sentinel without moving the PC", func() {
		load(isa.Zero)
		s.PC = 1

		Expect(ie.RunInst(isa.EndOfProgram, s)).To(Succeed())
		Expect(s.Halted).To(BeTrue())
		Expect(s.PC).To(Equal(1))
	})
})

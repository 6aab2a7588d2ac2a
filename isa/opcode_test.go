package isa_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/moosim/isa"
)

var _ = Describe("Opcode", func() {
	DescribeTable("mnemonic table",
		func(mnemonic string, op isa.Opcode, code int) {
			got, ok := isa.Lookup(mnemonic)
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(op))
			Expect(got.String()).To(Equal(mnemonic))

			c, ok := got.Code()
			Expect(ok).To(BeTrue())
			Expect(c).To(Equal(code))
		},
		Entry("moo", "moo", isa.LoopReturn, 0),
		Entry("mOo", "mOo", isa.MoveBack, 1),
		Entry("moO", "moO", isa.MoveForward, 2),
		Entry("mOO", "mOO", isa.IndirectExec, 3),
		Entry("Moo", "Moo", isa.IoChar, 4),
		Entry("MOo", "MOo", isa.Decrement, 5),
		Entry("MoO", "MoO", isa.Increment, 6),
		Entry("MOO", "MOO", isa.LoopStart, 7),
		Entry("OOO", "OOO", isa.Zero, 8),
		Entry("MMM", "MMM", isa.RegisterToggle, 9),
		Entry("OOM", "OOM", isa.PrintInt, 10),
		Entry("oom", "oom", isa.ReadInt, 11),
	)

	It("should be case sensitive", func() {
		_, ok := isa.Lookup("MOO")
		Expect(ok).To(BeTrue())
		_, ok = isa.Lookup("mOO")
		Expect(ok).To(BeTrue())
		_, ok = isa.Lookup("moo ")
		Expect(ok).To(BeFalse())
		_, ok = isa.Lookup("MMm")
		Expect(ok).To(BeFalse())
	})

	It("should decode only the canonical range", func() {
		for code := int64(0); code < isa.NumCodes; code++ {
			op, ok := isa.Decode(code)
			Expect(ok).To(BeTrue())
			Expect(int64(op)).To(Equal(code))
		}

		_, ok := isa.Decode(-1)
		Expect(ok).To(BeFalse())
		_, ok = isa.Decode(12)
		Expect(ok).To(BeFalse())
		_, ok = isa.Decode(255)
		Expect(ok).To(BeFalse())
	})

	It("should treat the sentinel as a non-source opcode", func() {
		Expect(isa.EndOfProgram.Valid()).To(BeFalse())
		Expect(isa.EndOfProgram.String()).To(Equal("EOF"))
		Expect(isa.EndOfProgram.Role()).To(Equal("EndOfProgram"))
		_, ok := isa.EndOfProgram.Code()
		Expect(ok).To(BeFalse())
	})

	It("should name roles", func() {
		Expect(isa.LoopStart.Role()).To(Equal("LoopStart"))
		Expect(isa.RegisterToggle.Role()).To(Equal("RegisterToggle"))
	})

	It("should return a copy of the mnemonics", func() {
		m := isa.Mnemonics()
		Expect(m).To(HaveLen(isa.NumCodes))
		m[0] = "xxx"
		Expect(isa.LoopReturn.String()).To(Equal("moo"))
	})
})

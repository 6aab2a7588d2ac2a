package core_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/moosim/core"
)

var _ = Describe("Register", func() {
	var (
		r core.Register
		t *core.Tape
	)

	BeforeEach(func() {
		r = core.Register{}
		t = core.NewTape()
	})

	It("should start empty", func() {
		Expect(r.State()).To(Equal(core.RegisterEmpty))
		_, ok := r.Holding()
		Expect(ok).To(BeFalse())
		Expect(r.String()).To(Equal("empty"))
	})

	It("should capture without clearing the cell", func() {
		t.WriteInt64(5)

		r.Toggle(t)

		Expect(t.Read().Int64()).To(Equal(int64(5)))
		v, ok := r.Holding()
		Expect(ok).To(BeTrue())
		Expect(v.Int64()).To(Equal(int64(5)))
	})

	It("should paste into the current cell and empty itself", func() {
		t.WriteInt64(5)
		r.Toggle(t)

		t.MoveForward()
		t.WriteInt64(42)
		r.Toggle(t)

		Expect(t.Read().Int64()).To(Equal(int64(5)))
		Expect(r.State()).To(Equal(core.RegisterEmpty))
		Expect(t.Cell(0).Int64()).To(Equal(int64(5)))
	})

	It("should keep a snapshot independent of later cell changes", func() {
		t.WriteInt64(3)
		r.Capture(t)
		t.Increment()

		v, _ := r.Holding()
		Expect(v.Int64()).To(Equal(int64(3)))
	})

	It("should ignore paste when empty and capture when holding", func() {
		t.WriteInt64(9)
		r.Paste(t)
		Expect(t.Read().Int64()).To(Equal(int64(9)))

		r.Capture(t)
		t.WriteInt64(1)
		r.Capture(t)
		v, _ := r.Holding()
		Expect(v.Int64()).To(Equal(int64(9)))
	})
})

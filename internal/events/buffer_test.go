package events

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("buffer", func() {
	It("pushes to the tail", func() {
		buffer := newBuffer(0)
		Expect(buffer.capacity).To(Equal(defaultBufferCapacity))

		Expect(buffer.PushBack(&message{Kind: EstimationMessageKind, Data: []byte("msg1")})).To(BeFalse())
		Expect(buffer.Size()).To(Equal(1))
		Expect(buffer.head).To(BeIdenticalTo(buffer.tail))

		buffer.PushBack(&message{Kind: DatasetMessageKind, Data: []byte("msg2")})
		buffer.PushBack(&message{Kind: EstimationMessageKind, Data: []byte("msg3")})
		Expect(buffer.Size()).To(Equal(3))

		Expect(buffer.head.Data).To(Equal([]byte("msg1")))
		Expect(buffer.tail.Data).To(Equal([]byte("msg3")))
	})

	It("pops in insertion order", func() {
		buffer := newBuffer(4)
		buffer.PushBack(&message{Kind: EstimationMessageKind, Data: []byte("msg1")})
		buffer.PushBack(&message{Kind: DatasetMessageKind, Data: []byte("msg2")})

		msg := buffer.Pop()
		Expect(msg.Data).To(Equal([]byte("msg1")))
		Expect(msg.next).To(BeNil())
		Expect(buffer.Size()).To(Equal(1))

		msg = buffer.Pop()
		Expect(msg.Kind).To(Equal(DatasetMessageKind))
		Expect(buffer.Size()).To(Equal(0))
		Expect(buffer.head).To(BeNil())
		Expect(buffer.tail).To(BeNil())

		Expect(buffer.Pop()).To(BeNil())
	})

	It("evicts the oldest message when full", func() {
		buffer := newBuffer(2)
		Expect(buffer.PushBack(&message{Data: []byte("msg1")})).To(BeFalse())
		Expect(buffer.PushBack(&message{Data: []byte("msg2")})).To(BeFalse())
		Expect(buffer.PushBack(&message{Data: []byte("msg3")})).To(BeTrue())

		Expect(buffer.Size()).To(Equal(2))
		Expect(buffer.Dropped()).To(Equal(1))
		Expect(buffer.Pop().Data).To(Equal([]byte("msg2")))
		Expect(buffer.Pop().Data).To(Equal([]byte("msg3")))
	})
})

package events

import "sync"

const defaultBufferCapacity = 1024

type message struct {
	Kind string
	Data []byte
	next *message
}

// buffer is a FIFO of pending messages. Once capacity is reached the oldest
// message is evicted to make room.
type buffer struct {
	lock     sync.Mutex
	head     *message
	tail     *message
	size     int
	capacity int
	dropped  int
}

func newBuffer(capacity int) *buffer {
	if capacity <= 0 {
		capacity = defaultBufferCapacity
	}
	return &buffer{capacity: capacity}
}

// PushBack appends msg and reports whether an older message was evicted.
func (b *buffer) PushBack(msg *message) bool {
	b.lock.Lock()
	defer b.lock.Unlock()

	evicted := false
	if b.size == b.capacity {
		b.popLocked()
		b.dropped++
		evicted = true
	}

	if b.tail == nil {
		b.head = msg
	} else {
		b.tail.next = msg
	}
	b.tail = msg
	b.size++

	return evicted
}

func (b *buffer) Pop() *message {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.popLocked()
}

func (b *buffer) popLocked() *message {
	msg := b.head
	if msg == nil {
		return nil
	}
	b.head = msg.next
	if b.head == nil {
		b.tail = nil
	}
	msg.next = nil
	b.size--
	return msg
}

func (b *buffer) Size() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.size
}

// Dropped is the number of messages evicted since creation.
func (b *buffer) Dropped() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.dropped
}

package main

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrOutboxClosed means the paired connection has gone away
var ErrOutboxClosed = errors.New("outbox closed")

// Frame is one queued websocket message
type Frame struct {
	Type int // websocket.BinaryMessage or websocket.CloseMessage
	Data []byte
}

// closeFrame asks the write pump to send a normal closure
var closeFrame = Frame{
	Type: websocket.CloseMessage,
	Data: websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
}

// Outbox is an unbounded outbound queue shared by a connection's registry
// entry, its tank and its write pump. Sends never block. Close is idempotent
// and every holder observes it through Send returning ErrOutboxClosed.
type Outbox struct {
	mu     sync.Mutex
	queue  []Frame
	closed bool
	ready  chan struct{}
	done   chan struct{}
}

// NewOutbox creates an open, empty outbox
func NewOutbox() *Outbox {
	return &Outbox{
		ready: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Send enqueues a frame
func (o *Outbox) Send(f Frame) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrOutboxClosed
	}
	o.queue = append(o.queue, f)
	o.mu.Unlock()

	select {
	case o.ready <- struct{}{}:
	default:
	}
	return nil
}

// SendBinary enqueues pre-serialized packet bytes
func (o *Outbox) SendBinary(data []byte) error {
	return o.Send(Frame{Type: websocket.BinaryMessage, Data: data})
}

// SendPacket serializes and enqueues a packet
func (o *Outbox) SendPacket(p ClientboundPacket) error {
	data, err := p.MarshalBinary()
	if err != nil {
		return err
	}
	return o.SendBinary(data)
}

// Close stops accepting frames. Frames already queued can still be drained.
func (o *Outbox) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.closed {
		return
	}
	o.closed = true
	close(o.done)
}

// Closed reports whether Close has been called
func (o *Outbox) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.closed
}

// Ready fires after at least one Send since the last Drain
func (o *Outbox) Ready() <-chan struct{} {
	return o.ready
}

// Done is closed once the outbox is closed
func (o *Outbox) Done() <-chan struct{} {
	return o.done
}

// Drain appends every queued frame to dst and empties the queue
func (o *Outbox) Drain(dst []Frame) []Frame {
	o.mu.Lock()
	defer o.mu.Unlock()
	dst = append(dst, o.queue...)
	clear(o.queue)
	o.queue = o.queue[:0]
	return dst
}

// Len returns the number of queued frames
func (o *Outbox) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.queue)
}

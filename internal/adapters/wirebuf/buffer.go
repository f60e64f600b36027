// Package wirebuf implements the bounded send buffer: a
// fixed-capacity byte arena with reserve/commit/release/read
// hand-off between a single producer (the send-packet encoder) and a
// single consumer (the transport). One mutex guards a byte slice and a
// set of offsets, and every reservation must be resolved (committed or
// released) before the buffer is read again.
package wirebuf

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBufferExhausted is returned by Reserve when the requested size
// does not fit in the remaining unread capacity.
var ErrBufferExhausted = errors.New("armnn: buffer exhausted")

// Handle identifies an in-flight reservation. It must be passed back
// to either Commit or Release before another Reserve is attempted.
type Handle struct {
	offset int
	size   int
	valid  bool
}

// Buffer is a bounded arena of bytes. Reserve carves out a writable
// region at the current write offset; Commit advances the write
// offset by the actual number of bytes written; Release discards the
// reservation without advancing anything. Read drains everything
// committed so far and resets the arena, freeing its full capacity
// for the next round of reservations.
type Buffer struct {
	mu       sync.Mutex
	data     []byte
	writeOff int
	pending  *Handle
}

// New returns a buffer with the given fixed capacity.
func New(capacity int) *Buffer {
	return &Buffer{data: make([]byte, capacity)}
}

// Reserve returns a writable view of size bytes and a handle to
// commit or release it. Only one reservation may be outstanding at a
// time, matching the single-producer usage the encoder makes of it.
func (b *Buffer) Reserve(size int) ([]byte, *Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		return nil, nil, fmt.Errorf("armnn: reservation already outstanding")
	}
	if b.writeOff+size > len(b.data) {
		return nil, nil, ErrBufferExhausted
	}

	h := &Handle{offset: b.writeOff, size: size, valid: true}
	b.pending = h
	return b.data[h.offset : h.offset+size], h, nil
}

// Commit finalises a reservation, advancing the write offset by
// actualSize (which may be less than the reserved size).
func (b *Buffer) Commit(h *Handle, actualSize int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validatePendingLocked(h); err != nil {
		return err
	}
	if actualSize < 0 || actualSize > h.size {
		return fmt.Errorf("armnn: commit size %d out of range for reservation of %d", actualSize, h.size)
	}
	b.writeOff += actualSize
	h.valid = false
	b.pending = nil
	return nil
}

// Release discards a reservation, leaving the write offset unchanged.
func (b *Buffer) Release(h *Handle) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.validatePendingLocked(h); err != nil {
		return err
	}
	h.valid = false
	b.pending = nil
	return nil
}

func (b *Buffer) validatePendingLocked(h *Handle) error {
	if h == nil || !h.valid || b.pending != h {
		return fmt.Errorf("armnn: handle does not match the outstanding reservation")
	}
	return nil
}

// Read drains everything committed since the last Read and resets the
// arena. The returned slice is an owned copy; the caller may hold onto
// it after the buffer's internal storage is reused.
func (b *Buffer) Read() ([]byte, int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]byte, b.writeOff)
	copy(out, b.data[:b.writeOff])
	b.writeOff = 0
	return out, len(out)
}

// Len reports how many committed bytes are currently readable.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writeOff
}

// Cap reports the buffer's fixed capacity.
func (b *Buffer) Cap() int {
	return len(b.data)
}

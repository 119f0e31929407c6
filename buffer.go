package hlog

import (
	"sync"

	"github.com/pkg/errors"
)

// buffer is an append-only byte buffer that starts in a fixed array and moves
// to allocator memory on its first growth, doubling its capacity each time.
// A buffer must not be copied after init, and release (or putBuffer) must be
// deferred right after acquisition so heap memory goes back on every return path.
type buffer struct {
	fixed [InitialBufferSize]byte
	data  []byte // len(data) is the capacity in use; bytes [0:n] are valid.
	n     int
	alloc Allocator
	heap  bool
}

var bufferPool sync.Pool

// getBuffer returns an initialised buffer from the pool.
//
// Return it with putBuffer, which also releases any heap growth.
func getBuffer(alloc Allocator) *buffer {
	b, _ := bufferPool.Get().(*buffer) // only *buffer values are put into the pool
	if b == nil {
		b = new(buffer)
	}
	b.init(alloc)
	return b
}

// putBuffer releases b and returns it to the pool. b cannot be used afterwards.
func putBuffer(b *buffer) {
	b.release()
	b.alloc = nil
	bufferPool.Put(b)
}

func (b *buffer) init(alloc Allocator) {
	b.data = b.fixed[:]
	b.n = 0
	b.alloc = alloc
	b.heap = false
}

// release hands heap memory back to the allocator and resets to the fixed array.
func (b *buffer) release() {
	if b.heap {
		b.alloc.Deallocate(b.data)
	}
	b.data = b.fixed[:]
	b.n = 0
	b.heap = false
}

// reserve makes room for n more bytes, doubling the capacity until it fits.
func (b *buffer) reserve(n int) error {
	need := b.n + n
	if need <= len(b.data) {
		return nil
	}
	size := len(b.data)
	for size < need {
		if size > int(^uint(0)>>2) {
			return errors.Wrapf(ErrAllocationFailure, "buffer cannot grow to %d bytes", need)
		}
		size *= 2
	}
	var next []byte
	if b.heap {
		next = b.alloc.Reallocate(b.data[:b.n], size)
	} else {
		next = b.alloc.Allocate(size)
		if next != nil {
			copy(next, b.data[:b.n])
		}
	}
	if next == nil {
		return errors.Wrapf(ErrAllocationFailure, "buffer growth to %d bytes refused", size)
	}
	b.data = next[:cap(next)]
	b.heap = true
	return nil
}

func (b *buffer) writeString(s string) error {
	if err := b.reserve(len(s)); err != nil {
		return err
	}
	b.n += copy(b.data[b.n:], s)
	return nil
}

func (b *buffer) writeByte(c byte) error {
	if err := b.reserve(1); err != nil {
		return err
	}
	b.data[b.n] = c
	b.n++
	return nil
}

func (b *buffer) write(p []byte) error {
	if err := b.reserve(len(p)); err != nil {
		return err
	}
	b.n += copy(b.data[b.n:], p)
	return nil
}

func (b *buffer) bytes() []byte {
	return b.data[:b.n]
}

func (b *buffer) len() int {
	return b.n
}

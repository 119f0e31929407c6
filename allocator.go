package hlog

import (
	"math/bits"
	"sync"
)

// Allocator provides the heap storage used once a message or rendered line
// outgrows InitialBufferSize. A nil result from Allocate or Reallocate means
// the request was refused; callers must check every call.
type Allocator interface {
	// Allocate returns a slice of length size, or nil.
	Allocate(size int) []byte
	// Reallocate returns a slice of length size holding the contents of buf,
	// or nil, in which case buf is still owned by the caller.
	Reallocate(buf []byte, size int) []byte
	// Deallocate gives buf back; it must not be used afterwards.
	Deallocate(buf []byte)
}

const (
	minPooledShift = 11 // 2 KiB, the first size past the fixed buffer.
	maxPooledShift = 20 // 1 MiB; bigger buffers go straight to the garbage collector.
)

// poolAllocator recycles power-of-two sized buffers through one sync.Pool per
// size class.
type poolAllocator struct {
	pools [maxPooledShift - minPooledShift + 1]sync.Pool
}

var defaultAllocator = &poolAllocator{}

// DefaultAllocator returns the process-wide pooled allocator.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

func sizeClass(size int) (int, bool) {
	if size <= 1<<minPooledShift {
		return 0, true
	}
	shift := bits.Len(uint(size - 1))
	if shift > maxPooledShift {
		return 0, false
	}
	return shift - minPooledShift, true
}

func (p *poolAllocator) Allocate(size int) []byte {
	if size < 0 {
		return nil
	}
	class, ok := sizeClass(size)
	if !ok {
		return make([]byte, size)
	}
	if v := p.pools[class].Get(); v != nil {
		b, _ := v.(*[]byte) // only *[]byte values are put into the pools
		return (*b)[:size]
	}
	return make([]byte, size, 1<<(class+minPooledShift))
}

func (p *poolAllocator) Reallocate(buf []byte, size int) []byte {
	if size <= cap(buf) {
		return buf[:size]
	}
	next := p.Allocate(size)
	if next == nil {
		return nil
	}
	copy(next, buf)
	p.Deallocate(buf)
	return next
}

func (p *poolAllocator) Deallocate(buf []byte) {
	c := cap(buf)
	if c == 0 || c&(c-1) != 0 {
		return
	}
	class, ok := sizeClass(c)
	if !ok || 1<<(class+minPooledShift) != c {
		return
	}
	buf = buf[:0]
	p.pools[class].Put(&buf)
}

// limitAllocator refuses any request above max bytes.
type limitAllocator struct {
	next Allocator
	max  int
}

// LimitAllocator wraps next so that requests larger than max bytes fail.
// It bounds the memory a single log line may consume when messages come from
// untrusted input.
func LimitAllocator(next Allocator, max int) Allocator {
	if next == nil {
		next = DefaultAllocator()
	}
	return &limitAllocator{next: next, max: max}
}

func (l *limitAllocator) Allocate(size int) []byte {
	if size > l.max {
		return nil
	}
	return l.next.Allocate(size)
}

func (l *limitAllocator) Reallocate(buf []byte, size int) []byte {
	if size > l.max {
		return nil
	}
	return l.next.Reallocate(buf, size)
}

func (l *limitAllocator) Deallocate(buf []byte) {
	l.next.Deallocate(buf)
}

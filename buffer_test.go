package hlog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingAllocator tracks outstanding heap buffers and can refuse requests.
type countingAllocator struct {
	live      int
	allocs    int
	failAfter int // refuse once allocs reaches this count; 0 never refuses
}

func (a *countingAllocator) refuse() bool {
	return a.failAfter > 0 && a.allocs >= a.failAfter
}

func (a *countingAllocator) Allocate(size int) []byte {
	if a.refuse() {
		return nil
	}
	a.allocs++
	a.live++
	return make([]byte, size)
}

func (a *countingAllocator) Reallocate(buf []byte, size int) []byte {
	if a.refuse() {
		return nil
	}
	a.allocs++
	next := make([]byte, size)
	copy(next, buf)
	return next
}

func (a *countingAllocator) Deallocate(_ []byte) {
	a.live--
}

func TestBuffer_StaysFixedBelowCapacity(t *testing.T) {
	assert := assert.New(t)
	alloc := &countingAllocator{}
	b := getBuffer(alloc)
	defer putBuffer(b)

	require.NoError(t, b.writeString(strings.Repeat("a", InitialBufferSize)))
	assert.False(b.heap)
	assert.Equal(0, alloc.allocs)
	assert.Equal(InitialBufferSize, b.len())
}

func TestBuffer_DoublesAndReleases(t *testing.T) {
	assert := assert.New(t)
	alloc := &countingAllocator{}
	b := getBuffer(alloc)

	require.NoError(t, b.writeString(strings.Repeat("a", InitialBufferSize)))
	require.NoError(t, b.writeByte('b'))
	assert.True(b.heap)
	assert.Equal(2*InitialBufferSize, len(b.data))

	// one append several times larger doubles repeatedly in a single step
	require.NoError(t, b.writeString(strings.Repeat("c", 5*InitialBufferSize)))
	assert.Equal(8*InitialBufferSize, len(b.data))
	assert.Equal(2, alloc.allocs)

	want := strings.Repeat("a", InitialBufferSize) + "b" + strings.Repeat("c", 5*InitialBufferSize)
	assert.Equal(want, string(b.bytes()))

	putBuffer(b)
	assert.Equal(0, alloc.live, "heap buffer must be handed back")
}

func TestBuffer_GrowthFailureKeepsContent(t *testing.T) {
	assert := assert.New(t)
	alloc := &countingAllocator{failAfter: 1}
	b := getBuffer(alloc)
	defer putBuffer(b)

	require.NoError(t, b.writeString(strings.Repeat("a", 2*InitialBufferSize)))
	err := b.writeString(strings.Repeat("b", 4*InitialBufferSize))
	assert.ErrorIs(err, ErrAllocationFailure)
	assert.Equal(strings.Repeat("a", 2*InitialBufferSize), string(b.bytes()))
}

func TestPoolAllocator(t *testing.T) {
	assert := assert.New(t)
	a := DefaultAllocator()

	b := a.Allocate(3000)
	require.NotNil(t, b)
	assert.Len(b, 3000)
	assert.Equal(4096, cap(b))

	copy(b, "hello")
	grown := a.Reallocate(b[:5], 9000)
	require.NotNil(t, grown)
	assert.Equal("hello", string(grown[:5]))
	assert.Equal(16384, cap(grown))
	a.Deallocate(grown)

	// oversized requests bypass the pools
	huge := a.Allocate(2 << 20)
	assert.Len(huge, 2<<20)
	a.Deallocate(huge)

	assert.Nil(a.Allocate(-1))
}

func TestLimitAllocator(t *testing.T) {
	assert := assert.New(t)
	a := LimitAllocator(nil, 4096)

	assert.Nil(a.Allocate(4097))
	b := a.Allocate(4096)
	require.NotNil(t, b)
	assert.Nil(a.Reallocate(b, 8192))
	a.Deallocate(b)
}

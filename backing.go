package arena

// Allocator reserves and releases the single region an Arena carves up.
// An Arena calls Allocate once in New and Free once in Release, so an
// implementation only needs to be as concurrent as the arenas sharing it.
type Allocator interface {
	// Allocate returns exactly size bytes. Contents are unspecified.
	Allocate(size int) ([]byte, error)
	// Free releases a slice previously returned by Allocate.
	Free(b []byte) error
}

// HeapAllocator backs regions with ordinary Go heap memory.
// Free is a no-op; the garbage collector reclaims the region once the
// Arena is unreachable.
type HeapAllocator struct{}

// NewHeapAllocator returns the default backing allocator.
func NewHeapAllocator() *HeapAllocator { return &HeapAllocator{} }

// Allocate implements Allocator.
func (*HeapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidCapacity
	}
	return make([]byte, size), nil
}

// Free implements Allocator.
func (*HeapAllocator) Free([]byte) error { return nil }

// DefaultAllocator is used when no WithBacking option is given.
var DefaultAllocator Allocator = NewHeapAllocator()

// callerBuffer wraps a buffer handed to NewFromBuffer. It never allocates
// and never frees: the caller keeps ownership of the memory.
type callerBuffer struct {
	buf []byte
}

func (c callerBuffer) Allocate(size int) ([]byte, error) {
	if size != len(c.buf) {
		return nil, ErrInvalidCapacity
	}
	return c.buf, nil
}

func (callerBuffer) Free([]byte) error { return nil }

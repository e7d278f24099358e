//go:build !unix

package arena

// MmapAllocator is unavailable on this platform; Allocate always fails
// with ErrUnsupported.
type MmapAllocator struct{}

// NewMmapAllocator returns an allocator that always fails.
func NewMmapAllocator() *MmapAllocator { return &MmapAllocator{} }

// Allocate implements Allocator.
func (*MmapAllocator) Allocate(int) ([]byte, error) { return nil, ErrUnsupported }

// Free implements Allocator.
func (*MmapAllocator) Free([]byte) error { return nil }

//go:build unix

package arena

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// MmapAllocator backs each region with its own anonymous private mapping.
// The pages live outside the Go heap and are returned to the kernel by
// Free, so an arena using it must be released explicitly.
type MmapAllocator struct{}

// NewMmapAllocator returns an allocator that maps regions with mmap(2).
func NewMmapAllocator() *MmapAllocator { return &MmapAllocator{} }

// Allocate implements Allocator.
func (*MmapAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidCapacity
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, errors.Wrap(err, "mmap")
	}
	return b, nil
}

// Free implements Allocator.
func (*MmapAllocator) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return errors.Wrap(unix.Munmap(b), "munmap")
}

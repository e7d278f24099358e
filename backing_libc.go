package arena

import (
	"sync"

	"github.com/pkg/errors"
	"modernc.org/memory"
)

// LibcAllocator backs regions with a malloc-style allocator that manages
// its own mmap'ed pages outside the Go heap. Several arenas may share one
// LibcAllocator; calls are serialized internally.
type LibcAllocator struct {
	mu    sync.Mutex
	alloc memory.Allocator
}

// NewLibcAllocator returns an empty malloc-style allocator.
func NewLibcAllocator() *LibcAllocator { return &LibcAllocator{} }

// Allocate implements Allocator.
func (l *LibcAllocator) Allocate(size int) ([]byte, error) {
	if size <= 0 {
		return nil, ErrInvalidCapacity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	b, err := l.alloc.Malloc(size)
	if err != nil {
		return nil, errors.Wrap(err, "malloc")
	}
	return b, nil
}

// Free implements Allocator.
func (l *LibcAllocator) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Wrap(l.alloc.Free(b), "free")
}

// Close unmaps every page still held by the allocator. Regions handed out
// earlier become invalid.
func (l *LibcAllocator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Wrap(l.alloc.Close(), "close")
}

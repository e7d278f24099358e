package arena

import "sync"

// SafeArena is a mutex-protected wrapper around Arena for concurrent access.
// Arena itself never locks; wrap it only when several goroutines share one.
type SafeArena struct {
	mu sync.Mutex
	a  *Arena
}

// NewSafeArena creates a new thread-safe arena of the given capacity.
func NewSafeArena(capacity int, opts ...Option) (*SafeArena, error) {
	a, err := New(capacity, opts...)
	if err != nil {
		return nil, err
	}
	return &SafeArena{a: a}, nil
}

// Alloc thread-safely allocates size bytes at the default alignment.
// Returns nil on failure.
func (s *SafeArena) Alloc(size int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Alloc(size)
}

// AllocAligned thread-safely allocates size bytes at the given alignment.
func (s *SafeArena) AllocAligned(size, alignment int) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.AllocAligned(size, alignment)
}

// Reserve thread-safely reserves size bytes and returns their offset.
func (s *SafeArena) Reserve(size, alignment int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Reserve(size, alignment)
}

// Reset thread-safely resets the cursor to zero for arena reuse.
func (s *SafeArena) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Reset()
}

// Release thread-safely returns the region to its backing allocator.
func (s *SafeArena) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.a.Release()
}

// Allocations thread-safely returns a copy of the allocation records.
func (s *SafeArena) Allocations() []Allocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Allocations()
}

// Lookup thread-safely finds the allocation starting at p.
func (s *SafeArena) Lookup(p []byte) (Allocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Lookup(p)
}

// CopyFrom thread-safely copies the live bytes of src into s. src is only
// read; the caller must not mutate it concurrently.
func (s *SafeArena) CopyFrom(src *Arena) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Copy(s.a, src)
}

// Do runs fn with exclusive access to the underlying arena, for sequences
// of calls that must not interleave with other goroutines.
func (s *SafeArena) Do(fn func(a *Arena)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.a)
}

// Generic allocation functions for SafeArena

// SafeAlloc thread-safely returns a pointer to a zeroed T inside the arena.
func SafeAlloc[T any](s *SafeArena) *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Alloc[T](s.a)
}

// SafeAllocSlice thread-safely allocates a slice of n elements of type T.
func SafeAllocSlice[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSlice[T](s.a, n)
}

// SafeAllocSliceZeroed thread-safely allocates a slice of n zeroed elements.
func SafeAllocSliceZeroed[T any](s *SafeArena, n int) []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return AllocSliceZeroed[T](s.a, n)
}

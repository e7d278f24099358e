package arena

import "github.com/cespare/xxhash/v2"

// Used returns the number of bytes currently carved out of the region,
// including alignment padding.
func (a *Arena) Used() int {
	if a.Released() {
		return 0
	}
	return a.cursor
}

// Capacity returns the size of the region in bytes, or 0 once released.
func (a *Arena) Capacity() int {
	if a.Released() {
		return 0
	}
	return len(a.region)
}

// Remaining returns the number of bytes still available before padding.
func (a *Arena) Remaining() int {
	return a.Capacity() - a.Used()
}

// Peak returns the highest used length observed since the arena was
// created. Reset does not lower it.
func (a *Arena) Peak() int {
	if a == nil {
		return 0
	}
	return a.peak
}

// Utilization returns the ratio of bytes in use to capacity (0.0 to 1.0).
// Returns 0.0 if the arena has no capacity.
func (a *Arena) Utilization() float64 {
	capacity := a.Capacity()
	if capacity == 0 {
		return 0
	}
	return float64(a.Used()) / float64(capacity)
}

// Digest returns the xxhash of the live bytes region[0:Used()]. Two arenas
// holding the same live bytes have the same digest, which makes it handy
// for checking the result of Copy.
func (a *Arena) Digest() uint64 {
	if a.Released() {
		return xxhash.Sum64(nil)
	}
	return xxhash.Sum64(a.region[:a.cursor])
}

// Metrics returns a snapshot of arena statistics.
func (a *Arena) Metrics() Stats {
	return Stats{
		Used:        a.Used(),
		Capacity:    a.Capacity(),
		Peak:        a.Peak(),
		Allocations: a.AllocationCount(),
		Utilization: a.Utilization(),
		Released:    a.Released(),
	}
}

// Stats contains statistical information about an arena.
type Stats struct {
	Used        int     // Bytes currently allocated, padding included
	Capacity    int     // Region size in bytes
	Peak        int     // High-water mark of Used
	Allocations int     // Tracked allocations since last Reset
	Utilization float64 // Ratio of used to capacity (0.0-1.0)
	Released    bool
}

// Thread-safe metrics for SafeArena

// Used thread-safely returns the number of bytes currently allocated.
func (s *SafeArena) Used() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Used()
}

// Capacity thread-safely returns the region size.
func (s *SafeArena) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Capacity()
}

// Remaining thread-safely returns the bytes still available.
func (s *SafeArena) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Remaining()
}

// Utilization thread-safely returns the ratio of bytes in use to capacity.
func (s *SafeArena) Utilization() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Utilization()
}

// Digest thread-safely returns the xxhash of the live bytes.
func (s *SafeArena) Digest() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Digest()
}

// Metrics thread-safely returns a snapshot of arena statistics.
func (s *SafeArena) Metrics() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Metrics()
}

package arena

import "unsafe"

// Allocation describes one span handed out by an arena created with
// WithTracking.
type Allocation struct {
	Offset int // start of the span within the region, after padding
	Length int // requested size
}

// End returns the offset one past the last byte of the span.
func (al Allocation) End() int { return al.Offset + al.Length }

// Tracking reports whether the arena records its allocations.
func (a *Arena) Tracking() bool {
	return a != nil && a.tracking
}

// AllocationCount returns the number of allocations made since the last
// Reset. It is always 0 for an arena without tracking.
func (a *Arena) AllocationCount() int {
	if a == nil {
		return 0
	}
	return len(a.records)
}

// Allocations returns a copy of the allocation records in allocation order.
func (a *Arena) Allocations() []Allocation {
	if a == nil || len(a.records) == 0 {
		return nil
	}
	out := make([]Allocation, len(a.records))
	copy(out, a.records)
	return out
}

// Lookup returns the record of the allocation that starts exactly where p
// starts. A slice that begins in the middle of an allocation, or outside
// the region, is not found. Empty slices are never found: their data
// pointer need not point at the offset they were sliced from.
func (a *Arena) Lookup(p []byte) (Allocation, bool) {
	if a.Released() || !a.tracking || len(p) == 0 {
		return Allocation{}, false
	}
	ptr := unsafe.SliceData(p)
	if ptr == nil {
		return Allocation{}, false
	}
	addr, base := uintptr(unsafe.Pointer(ptr)), a.base()
	if addr < base || addr >= base+uintptr(len(a.region)) {
		return Allocation{}, false
	}
	return a.LookupOffset(int(addr - base))
}

// LookupOffset returns the record of the allocation starting at off.
// The scan is linear in the number of records.
func (a *Arena) LookupOffset(off int) (Allocation, bool) {
	if a == nil || !a.tracking {
		return Allocation{}, false
	}
	for _, r := range a.records {
		if r.Offset == off {
			return r, true
		}
	}
	return Allocation{}, false
}

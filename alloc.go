package arena

import "unsafe"

// Types placed in an arena by the helpers below must not contain Go
// pointers: the garbage collector does not scan arena memory, and regions
// from MmapAllocator or LibcAllocator are not Go memory at all.

// Alloc returns a pointer to a zeroed T stored inside the arena, aligned
// for T. Returns nil when the arena cannot fit it or T has zero size.
func Alloc[T any](a *Arena) *T {
	p := AllocUninitialized[T](a)
	if p != nil {
		var zero T
		*p = zero
	}
	return p
}

// AllocZeroed is identical to Alloc - provided for API consistency.
func AllocZeroed[T any](a *Arena) *T {
	return Alloc[T](a)
}

// AllocUninitialized returns a *T located in the arena without zeroing memory.
// This is faster than Alloc but the memory contents are undefined.
func AllocUninitialized[T any](a *Arena) *T {
	var zero T
	size := int(unsafe.Sizeof(zero))
	b := a.AllocAligned(size, int(unsafe.Alignof(zero)))
	if b == nil {
		return nil
	}
	return (*T)(unsafe.Pointer(unsafe.SliceData(b)))
}

// AllocSlice allocates a slice of n elements of type T inside the arena.
// The slice elements are not initialized (contain garbage data).
// Returns nil if n <= 0 or the arena is out of space.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 || n > maxInt/elemSize {
		return nil
	}
	b := a.AllocAligned(elemSize*n, int(unsafe.Alignof(zero)))
	if b == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(b))), n)
}

// AllocSliceZeroed allocates a slice of n elements of type T with zeroed memory.
func AllocSliceZeroed[T any](a *Arena, n int) []T {
	s := AllocSlice[T](a, n)
	clear(s)
	return s
}

// Clone copies b into the arena and returns the copy.
// Returns nil if b is empty or does not fit.
func Clone(a *Arena, b []byte) []byte {
	dst := a.Alloc(len(b))
	copy(dst, b)
	return dst
}

// AllocString copies s into the arena and returns a string backed by the
// arena's bytes. The string must not be used after Reset or Release.
func AllocString(a *Arena, s string) string {
	b := a.Alloc(len(s))
	if b == nil {
		return ""
	}
	copy(b, s)
	return unsafe.String(unsafe.SliceData(b), len(b))
}

const maxInt = int(^uint(0) >> 1)

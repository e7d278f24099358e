// Package arena implements a fixed-capacity region allocator (memory arena) for Go.
//
// # Overview
//
// An arena reserves one contiguous region up front and hands out
// sub-slices of it by advancing a cursor. There is no per-allocation free:
// Reset makes the whole region reusable at once and Release gives it back.
// This is useful for:
//
//   - Request-scoped buffers in servers
//   - Per-frame or per-parse-pass scratch memory
//   - Groups of values whose lifetimes end together
//
// # Basic Usage
//
//	a, err := arena.New(64 << 10)
//	if err != nil {
//		return err
//	}
//	defer a.Release()
//
//	buf := a.Alloc(1024)             // nil if the region is exhausted
//	hdr := a.AllocAligned(16, 8)     // 8-byte aligned address
//	n := arena.AllocSlice[uint32](a, 100)
//
//	a.Reset() // every slice above is now invalid
//
// # Alignment
//
// Alloc does not pad by default; WithDefaultAlignment changes that.
// AllocAligned rounds the absolute address of the next byte up to a
// multiple of the requested alignment. Any positive alignment is accepted,
// powers of two or not; 0 disables padding. Padding never exceeds
// alignment-1 bytes.
//
// # Backing Memory
//
// The region comes from an Allocator chosen with WithBacking: the Go heap
// (default), an anonymous mmap, or a malloc-style allocator outside the Go
// heap. NewFromBuffer carves allocations out of a caller-owned buffer.
//
// # Tracking
//
// With WithTracking the arena records the offset and length of every
// allocation since the last Reset. Allocations lists them in order and
// Lookup finds the record whose span starts exactly at a given slice.
//
// # Thread Safety
//
// Arena never locks. Wrap it in SafeArena when goroutines share one, or use
// a Pool to give each request its own arena.
//
// # Failure Reporting
//
// Slice-returning calls return nil on failure. Reserve and New return one
// of the package's sentinel errors. Nothing panics on bad input, and
// Reset and Release are no-ops on nil or released arenas.
package arena

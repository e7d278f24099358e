package arena

import (
	"log/slog"
	"unsafe"

	"github.com/pkg/errors"
)

// Arena hands out sub-slices of a single region reserved at construction.
// Not goroutine-safe. Use SafeArena for concurrent access.
type Arena struct {
	raw     []byte // exactly what the backing allocator returned
	region  []byte // raw[:capacity:capacity]
	cursor  int    // next free offset in region
	peak    int    // highest cursor seen since New
	align   int    // alignment used by Alloc
	backing Allocator
	logger  *slog.Logger

	tracking bool
	records  []Allocation
}

// New reserves a region of exactly capacity bytes and returns an empty
// arena over it. It fails with ErrInvalidCapacity when capacity <= 0 and
// with ErrBackingAlloc when the backing allocator cannot supply the region.
func New(capacity int, opts ...Option) (*Arena, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	raw, err := o.backing.Allocate(capacity)
	if err != nil {
		o.logger.Debug("arena: backing allocation failed", "capacity", capacity, "error", err)
		return nil, backingError(err, capacity)
	}
	if len(raw) < capacity {
		// Hand back whatever was reserved before reporting failure.
		if ferr := o.backing.Free(raw); ferr != nil {
			o.logger.Error("arena: free short region", "error", ferr)
		}
		return nil, backingError(errors.Errorf("short region of %d bytes", len(raw)), capacity)
	}

	a := newArena(raw, capacity, o)
	o.logger.Debug("arena: created", "capacity", capacity, "tracking", o.tracking, "alignment", o.alignment)
	return a, nil
}

// NewFromBuffer returns an arena carving allocations out of buf. The caller
// keeps ownership of buf: Release forgets it but never frees it, and any
// WithBacking option is ignored.
func NewFromBuffer(buf []byte, opts ...Option) (*Arena, error) {
	if len(buf) == 0 {
		return nil, ErrInvalidCapacity
	}
	opts = append(opts, WithBacking(callerBuffer{buf: buf}))
	return New(len(buf), opts...)
}

func newArena(raw []byte, capacity int, o options) *Arena {
	return &Arena{
		raw:      raw,
		region:   raw[:capacity:capacity],
		align:    o.alignment,
		backing:  o.backing,
		logger:   o.logger,
		tracking: o.tracking,
	}
}

// Alloc returns size bytes at the arena's default alignment.
// The returned slice has len and cap equal to size and stays valid until
// the next Reset or Release. Its contents are unspecified.
// Returns nil if size <= 0, the arena is nil or released, or the region
// does not have size bytes left after padding.
func (a *Arena) Alloc(size int) []byte {
	if a == nil {
		return nil
	}
	return a.AllocAligned(size, a.align)
}

// AllocAligned is like Alloc but starts the returned slice at an address
// that is a multiple of alignment. Alignment is measured on the absolute
// address of the byte, not on its offset within the region, and is not
// required to be a power of two: 3, 6 or 12 are honoured with modulo
// arithmetic. An alignment of 0 means no padding.
func (a *Arena) AllocAligned(size, alignment int) []byte {
	off, err := a.Reserve(size, alignment)
	if err != nil {
		return nil
	}
	return a.region[off : off+size : off+size]
}

// Reserve advances the cursor past alignment padding and size bytes and
// returns the offset of the reserved span within the region. On failure the
// cursor is left untouched and the error says why.
func (a *Arena) Reserve(size, alignment int) (int, error) {
	switch {
	case a == nil:
		return 0, ErrNilArena
	case a.region == nil:
		return 0, ErrReleased
	case size <= 0:
		return 0, ErrInvalidSize
	case alignment < 0:
		return 0, ErrInvalidAlignment
	}

	pad := a.padding(alignment)
	free := len(a.region) - a.cursor
	if pad > free || free-pad < size {
		a.logger.Debug("arena: out of space",
			"size", size, "alignment", alignment, "padding", pad, "remaining", free)
		return 0, ErrOutOfSpace
	}

	off := a.cursor + pad
	a.cursor = off + size
	if a.cursor > a.peak {
		a.peak = a.cursor
	}
	if a.tracking {
		a.records = append(a.records, Allocation{Offset: off, Length: size})
	}
	return off, nil
}

// padding returns how many bytes must be skipped so that the next
// allocation starts on a multiple of alignment.
func (a *Arena) padding(alignment int) int {
	if alignment == 0 {
		return 0
	}
	addr := a.base() + uintptr(a.cursor)
	rem := addr % uintptr(alignment)
	if rem == 0 {
		return 0
	}
	return int(uintptr(alignment) - rem)
}

// base returns the address of the first byte of the region.
func (a *Arena) base() uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(a.region)))
}

// Reset makes the whole region available again without releasing it.
// Every slice previously returned by the arena now aliases future
// allocations. Allocation records are dropped. No-op on a nil or released
// arena.
func (a *Arena) Reset() {
	if a == nil || a.region == nil {
		return
	}
	a.cursor = 0
	clear(a.records)
	a.records = a.records[:0]
}

// Release returns the region to the backing allocator and drops all
// allocation records. The arena and every slice obtained from it must not
// be used afterwards; allocating calls on a released arena return nil.
// Calling Release on a nil or already released arena is a no-op.
func (a *Arena) Release() {
	if a == nil || a.region == nil {
		return
	}
	if err := a.backing.Free(a.raw); err != nil {
		a.logger.Error("arena: backing free failed", "capacity", len(a.region), "error", err)
	}
	a.logger.Debug("arena: released", "capacity", len(a.region), "peak", a.peak)
	a.raw = nil
	a.region = nil
	a.cursor = 0
	a.records = nil
}

// Released reports whether Release has been called.
func (a *Arena) Released() bool {
	return a == nil || a.region == nil
}

// Copy copies the live bytes of src, region[0:src.Used()], into the start
// of dst, truncating to dst's capacity, and returns the number of bytes
// copied. dst's used length is overwritten with that number rather than
// appended to, and dst's allocation records are dropped. Copy returns 0 and
// touches nothing if either arena is nil or released.
func Copy(dst, src *Arena) int {
	if dst.Released() || src.Released() {
		return 0
	}
	n := copy(dst.region, src.region[:src.cursor])
	dst.cursor = n
	if n > dst.peak {
		dst.peak = n
	}
	if dst != src {
		clear(dst.records)
		dst.records = dst.records[:0]
	}
	return n
}

package arena

import "github.com/pkg/errors"

// Invalid arguments.
var (
	ErrInvalidCapacity  = errors.New("arena: capacity must be greater than zero")
	ErrInvalidSize      = errors.New("arena: size must be greater than zero")
	ErrInvalidAlignment = errors.New("arena: alignment must not be negative")
	ErrNilArena         = errors.New("arena: nil arena")
)

// Exhaustion and lifecycle.
var (
	ErrOutOfSpace = errors.New("arena: not enough space left in region")
	ErrReleased   = errors.New("arena: use after Release()")
)

// Backing allocator failures.
var (
	ErrBackingAlloc = errors.New("arena: backing allocator failed")
	ErrUnsupported  = errors.New("arena: backing allocator not supported on this platform")
)

// backingError annotates a failure reported by a backing allocator so that
// errors.Cause still reaches ErrBackingAlloc while the message carries the
// allocator's own reason.
func backingError(cause error, size int) error {
	return errors.Wrapf(ErrBackingAlloc, "reserve %d bytes: %v", size, cause)
}

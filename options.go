package arena

import (
	"log/slog"
	"unsafe"
)

const (
	// DefaultAlignment is the alignment Alloc uses unless WithDefaultAlignment
	// overrides it. Zero means plain bump allocation with no padding.
	DefaultAlignment = 0

	// WordAlignment is the machine word size, a common choice for
	// WithDefaultAlignment.
	WordAlignment = int(unsafe.Sizeof(uintptr(0)))
)

type options struct {
	backing   Allocator
	tracking  bool
	alignment int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		backing:   DefaultAllocator,
		alignment: DefaultAlignment,
		logger:    slog.New(slog.DiscardHandler),
	}
}

// Option configures an Arena at construction time.
type Option func(*options)

// WithBacking sets the allocator the region is reserved from and returned to.
// A nil allocator keeps the default.
func WithBacking(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.backing = a
		}
	}
}

// WithTracking records the offset and length of every allocation so it can
// be inspected with Allocations and Lookup.
func WithTracking() Option {
	return func(o *options) { o.tracking = true }
}

// WithDefaultAlignment sets the alignment used by Alloc. Negative values are
// ignored.
func WithDefaultAlignment(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.alignment = n
		}
	}
}

// WithLogger sets the logger for lifecycle and exhaustion events, all of
// which are emitted at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

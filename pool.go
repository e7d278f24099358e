package arena

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrPoolClosed is returned by Get after Close.
var ErrPoolClosed = errors.New("arena: pool closed")

// Pool recycles arenas of one capacity so that per-request arenas do not
// reserve a fresh region each time. Pool is safe for concurrent use; the
// arenas it hands out are not, and each belongs to one caller between Get
// and Put.
type Pool struct {
	mu       sync.Mutex
	capacity int
	opts     []Option
	idle     []*Arena
	stats    PoolStats
	closed   bool
}

// PoolStats counts pool activity.
type PoolStats struct {
	Capacity int // region size of every pooled arena
	Created  int // arenas reserved through the backing allocator
	Reused   int // Get calls served from the idle list
	Idle     int // arenas waiting to be reused
}

// NewPool returns a pool whose arenas have the given capacity and options.
func NewPool(capacity int, opts ...Option) (*Pool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Pool{capacity: capacity, opts: opts, stats: PoolStats{Capacity: capacity}}, nil
}

// Get returns an empty arena, reusing an idle one when available.
func (p *Pool) Get() (*Arena, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	if n := len(p.idle); n > 0 {
		a := p.idle[n-1]
		p.idle[n-1] = nil
		p.idle = p.idle[:n-1]
		p.stats.Reused++
		p.mu.Unlock()
		return a, nil
	}
	p.mu.Unlock()

	a, err := New(p.capacity, p.opts...)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.stats.Created++
	p.mu.Unlock()
	return a, nil
}

// Put resets a and keeps it for a later Get. Arenas that are released, of
// another capacity, or returned after Close are released instead.
func (p *Pool) Put(a *Arena) {
	if a.Released() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || a.Capacity() != p.capacity {
		a.Release()
		return
	}
	a.Reset()
	p.idle = append(p.idle, a)
}

// Close releases every idle arena. Arenas still checked out are released
// when they are Put back.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, a := range p.idle {
		a.Release()
		p.idle[i] = nil
	}
	p.idle = nil
	p.closed = true
}

// Stats returns a snapshot of the pool counters.
func (p *Pool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := p.stats
	s.Idle = len(p.idle)
	return s
}

package arena

import (
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaMetrics(t *testing.T) {
	a := mustNew(t, 1024, WithTracking())

	// Initial state
	assert.Equal(t, 0, a.Used())
	assert.Equal(t, 1024, a.Capacity())
	assert.Equal(t, 1024, a.Remaining())
	assert.Equal(t, 0, a.Peak())
	assert.Zero(t, a.Utilization())

	require.NotNil(t, a.Alloc(100))
	require.NotNil(t, a.Alloc(156))

	assert.Equal(t, 256, a.Used())
	assert.Equal(t, 768, a.Remaining())
	assert.Equal(t, 256, a.Peak())
	assert.InDelta(t, 0.25, a.Utilization(), 1e-9)

	m := a.Metrics()
	assert.Equal(t, Stats{
		Used:        256,
		Capacity:    1024,
		Peak:        256,
		Allocations: 2,
		Utilization: 0.25,
	}, m)

	// Peak survives Reset.
	a.Reset()
	require.NotNil(t, a.Alloc(10))
	assert.Equal(t, 10, a.Used())
	assert.Equal(t, 256, a.Peak())
}

func TestArenaMetricsReleased(t *testing.T) {
	a, err := New(64)
	require.NoError(t, err)
	require.NotNil(t, a.Alloc(32))
	a.Release()

	m := a.Metrics()
	assert.True(t, m.Released)
	assert.Equal(t, 0, m.Used)
	assert.Equal(t, 0, m.Capacity)
	assert.Equal(t, 32, m.Peak)
	assert.Zero(t, m.Utilization)

	var nilArena *Arena
	assert.Equal(t, Stats{Released: true}, nilArena.Metrics())
}

func TestDigest(t *testing.T) {
	a := mustNew(t, 64)
	assert.Equal(t, xxhash.Sum64(nil), a.Digest())

	copy(a.Alloc(5), "hello")
	assert.Equal(t, xxhash.Sum64String("hello"), a.Digest())

	b := mustNew(t, 128)
	copy(b.Alloc(5), "hellO")
	assert.NotEqual(t, a.Digest(), b.Digest())

	Copy(b, a)
	assert.Equal(t, a.Digest(), b.Digest())
}

func TestSafeArenaMetrics(t *testing.T) {
	s, err := NewSafeArena(200)
	require.NoError(t, err)
	defer s.Release()

	require.NotNil(t, s.Alloc(50))
	assert.Equal(t, 50, s.Used())
	assert.Equal(t, 200, s.Capacity())
	assert.Equal(t, 150, s.Remaining())
	assert.InDelta(t, 0.25, s.Utilization(), 1e-9)
	assert.Equal(t, s.Metrics().Used, 50)
	assert.NotZero(t, s.Digest())
}

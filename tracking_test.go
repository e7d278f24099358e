package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackingRecordsInOrder(t *testing.T) {
	a := mustNew(t, 128, WithTracking())
	assert.True(t, a.Tracking())
	assert.Equal(t, 0, a.AllocationCount())
	assert.Nil(t, a.Allocations())

	require.NotNil(t, a.Alloc(5))
	require.NotNil(t, a.Alloc(25))
	require.NotNil(t, a.AllocAligned(4, 8))

	want := []Allocation{
		{Offset: 0, Length: 5},
		{Offset: 5, Length: 25},
	}
	got := a.Allocations()
	require.Len(t, got, 3)
	assert.Equal(t, want, got[:2])

	// The aligned record carries the offset after padding.
	last := got[2]
	assert.Equal(t, 4, last.Length)
	assert.GreaterOrEqual(t, last.Offset, 30)
	assert.Zero(t, (a.base()+uintptr(last.Offset))%8)
	assert.Equal(t, last.End(), a.Used())
	assert.Equal(t, 3, a.AllocationCount())
}

func TestTrackingFailedAllocationsNotRecorded(t *testing.T) {
	a := mustNew(t, 8, WithTracking())
	require.NotNil(t, a.Alloc(8))
	assert.Nil(t, a.Alloc(1))
	assert.Nil(t, a.Alloc(0))
	assert.Equal(t, 1, a.AllocationCount())
}

func TestTrackingReset(t *testing.T) {
	a := mustNew(t, 64, WithTracking())
	for i := 0; i < 4; i++ {
		require.NotNil(t, a.Alloc(8))
	}
	assert.Equal(t, 4, a.AllocationCount())

	a.Reset()
	assert.Equal(t, 0, a.AllocationCount())
	assert.Empty(t, a.Allocations())

	require.NotNil(t, a.Alloc(3))
	assert.Equal(t, []Allocation{{Offset: 0, Length: 3}}, a.Allocations())
}

func TestAllocationsReturnsCopy(t *testing.T) {
	a := mustNew(t, 16, WithTracking())
	require.NotNil(t, a.Alloc(4))
	recs := a.Allocations()
	recs[0].Length = 99
	assert.Equal(t, 4, a.Allocations()[0].Length)
}

func TestLookup(t *testing.T) {
	a := mustNew(t, 1024, WithTracking())
	x := a.Alloc(5)
	y := a.Alloc(25)
	require.NotNil(t, x)
	require.NotNil(t, y)

	rec, ok := a.Lookup(x)
	require.True(t, ok)
	assert.Equal(t, Allocation{Offset: 0, Length: 5}, rec)

	rec, ok = a.Lookup(y)
	require.True(t, ok)
	assert.Equal(t, Allocation{Offset: 5, Length: 25}, rec)

	// A shorter view of the same start still matches.
	rec, ok = a.Lookup(y[:1])
	require.True(t, ok)
	assert.Equal(t, 25, rec.Length)

	tests := []struct {
		name string
		p    []byte
	}{
		{"middle of allocation", y[1:]},
		{"last byte of allocation", y[24:]},
		{"unallocated tail", a.region[30:]},
		{"foreign slice", make([]byte, 5)},
		{"nil slice", nil},
		{"empty view", y[:0]},
		{"zero-cap tail", x[len(x):]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := a.Lookup(tt.p)
			assert.False(t, ok)
		})
	}
}

func TestLookupOffset(t *testing.T) {
	a := mustNew(t, 32, WithTracking())
	require.NotNil(t, a.Alloc(4))
	require.NotNil(t, a.Alloc(4))

	rec, ok := a.LookupOffset(4)
	require.True(t, ok)
	assert.Equal(t, Allocation{Offset: 4, Length: 4}, rec)

	_, ok = a.LookupOffset(2)
	assert.False(t, ok)
	_, ok = a.LookupOffset(-1)
	assert.False(t, ok)
}

func TestLookupWithoutTracking(t *testing.T) {
	a := mustNew(t, 32)
	b := a.Alloc(4)
	require.NotNil(t, b)

	assert.False(t, a.Tracking())
	assert.Equal(t, 0, a.AllocationCount())
	assert.Nil(t, a.Allocations())
	_, ok := a.Lookup(b)
	assert.False(t, ok)
	_, ok = a.LookupOffset(0)
	assert.False(t, ok)
}

func TestLookupAfterResetAndRelease(t *testing.T) {
	a, err := New(32, WithTracking())
	require.NoError(t, err)
	b := a.Alloc(4)
	require.NotNil(t, b)

	a.Reset()
	_, ok := a.Lookup(b)
	assert.False(t, ok, "records are dropped by Reset")

	require.NotNil(t, a.Alloc(4))
	a.Release()
	_, ok = a.Lookup(b)
	assert.False(t, ok)
	assert.Equal(t, 0, a.AllocationCount())

	var nilArena *Arena
	_, ok = nilArena.Lookup(b)
	assert.False(t, ok)
	assert.False(t, nilArena.Tracking())
}

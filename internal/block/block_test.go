package block

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPushPopRoundTrip(t *testing.T) {
	b := New()
	for i := 0; i < 100; i++ {
		require.True(t, b.PushBack(byte(i)))
	}
	require.Equal(t, 100, b.Len())

	for i := 0; i < 100; i++ {
		v, ok := b.PopFront()
		require.True(t, ok)
		require.Equal(t, byte(i), v)
	}
	require.True(t, b.IsEmpty())
}

func TestExtendBackWraps(t *testing.T) {
	b := New()
	// Fill the block completely, then pop some off the front so the next
	// extend wraps across the end of the backing array.
	full := make([]byte, Size)
	for i := range full {
		full[i] = byte(i)
	}
	require.Equal(t, Size, b.ExtendBack(full))

	var drop [100]byte
	require.Equal(t, 100, b.DrainFront(drop[:]))

	wrapped := []byte{1, 2, 3, 4, 5}
	n := b.ExtendBack(wrapped)
	require.Equal(t, len(wrapped), n)

	a, c := b.AsSlices()
	total := append(append([]byte(nil), a...), c...)
	require.Equal(t, Size-100+len(wrapped), len(total))
	require.Equal(t, wrapped, total[len(total)-len(wrapped):])
}

func TestCloneIsShared(t *testing.T) {
	b := New()
	b.PushBack('x')
	require.False(t, b.IsShared())

	clone := b.Clone()
	require.True(t, b.IsShared())
	require.True(t, clone.IsShared())
	require.Equal(t, -1, b.ExtendBack([]byte{'y'}))

	clone.Release()
	require.False(t, b.IsShared())
	require.Equal(t, 1, b.ExtendBack([]byte{'y'}))
}

func TestShiftContiguous(t *testing.T) {
	b := New()
	full := make([]byte, Size)
	for i := range full {
		full[i] = byte(i)
	}
	b.ExtendBack(full)

	var drop [Size - 10]byte
	b.DrainFront(drop[:])
	b.ExtendBack(full[:Size-10])

	require.False(t, b.IsContiguous())
	s, ok := b.Shift(context.Background())
	require.True(t, ok)
	require.Equal(t, b.Len(), len(s))
}

func TestSpareCapacityRoundTrip(t *testing.T) {
	b := New()
	b.ExtendBack(make([]byte, Size-10))

	a, c := b.SpareCapacityMut()
	require.Equal(t, 10, len(a)+len(c))
	for i := range a {
		a[i] = 0xAB
	}
	for i := range c {
		c[i] = 0xCD
	}
	b.IncLen(len(a) + len(c))
	require.True(t, b.IsFull())
}

package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NightEule5/orio-sub000/internal/block"
)

func TestBlockWriteReadRoundTrip(t *testing.T) {
	s := FromBlock(block.New())
	n, ok := s.Write([]byte("hello world"))
	require.True(t, ok)
	require.Equal(t, 11, n)

	dst := make([]byte, 11)
	got := s.Read(dst)
	require.Equal(t, 11, got)
	require.Equal(t, "hello world", string(dst))
	require.True(t, s.IsEmpty())
}

func TestShareThenWriteFails(t *testing.T) {
	s := FromBlock(block.New())
	s.Write([]byte("abcde"))

	shared := s.Share(0, 5)
	require.True(t, s.IsShared())
	require.True(t, shared.IsShared())

	_, ok := s.Write([]byte("x"))
	require.False(t, ok)

	a, _ := shared.AsSlices()
	require.Equal(t, "abcde", string(a))
}

func TestShareZeroLengthIsEmpty(t *testing.T) {
	s := FromBlock(block.New())
	s.Write([]byte("abcde"))
	empty := s.Share(0, 0)
	require.True(t, empty.IsEmpty())
}

func TestForkConvertsSharedToExclusive(t *testing.T) {
	s := FromBlock(block.New())
	s.Write([]byte("abcde"))
	shared := s.Share(0, 5)
	require.True(t, shared.IsShared())

	_, forked, overflow := shared.Fork(context.Background(), func() *block.Block { return block.New() })
	require.True(t, forked)
	require.False(t, overflow)
	require.False(t, shared.IsShared())

	ok := shared.Push('f')
	require.True(t, ok)

	dst := make([]byte, 6)
	shared.Read(dst)
	require.Equal(t, "abcdef", string(dst))
}

func TestSliceSegmentIsAlwaysShared(t *testing.T) {
	s := FromSlice([]byte("borrowed"))
	require.True(t, s.IsShared())
	_, ok := s.Write([]byte("x"))
	require.False(t, ok)

	dst := make([]byte, 8)
	s.Read(dst)
	require.Equal(t, "borrowed", string(dst))
}

func TestBoxedWriteReadRoundTrip(t *testing.T) {
	s := FromBoxed(16)
	n, ok := s.Write([]byte("boxed data"))
	require.True(t, ok)
	require.Equal(t, 10, n)

	dst := make([]byte, 10)
	s.Read(dst)
	require.Equal(t, "boxed data", string(dst))
}

package segring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NightEule5/orio-sub000/internal/block"
	"github.com/NightEule5/orio-sub000/internal/segment"
)

func segWith(data string) segment.Segment {
	s := segment.FromBlock(block.New())
	s.Write([]byte(data))
	return s
}

func TestPushBackReadableOrdering(t *testing.T) {
	r := New()
	r.PushBack(context.Background(), segWith("abc"))
	r.PushBack(context.Background(), segWith("def"))

	require.Equal(t, 2, r.Len())
	require.Equal(t, 6, r.Count())

	first, ok := r.PopFront()
	require.True(t, ok)
	a, _ := first.AsSlices()
	require.Equal(t, "abc", string(a))
	require.Equal(t, 3, r.Count())
}

func TestPushBackEmptyExclusiveBecomesSpare(t *testing.T) {
	r := New()
	r.PushBack(context.Background(), segment.FromBlock(block.New()))
	require.Equal(t, 0, r.Len())
	require.Equal(t, 1, r.SpareLen())
}

func TestDrainReleasesFrontSegments(t *testing.T) {
	r := New()
	r.PushBack(context.Background(), segWith("abc"))
	r.PushBack(context.Background(), segWith("def"))
	r.PushBack(context.Background(), segWith("ghi"))

	n := r.Drain(2)
	require.Equal(t, 2, n)
	require.Equal(t, 1, r.Len())
	require.Equal(t, 3, r.Count())
}

func TestSlicesIteratesInOrder(t *testing.T) {
	r := New()
	r.PushBack(context.Background(), segWith("abc"))
	r.PushBack(context.Background(), segWith("def"))

	it := r.Slices()
	var out []byte
	for {
		s, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, s...)
	}
	require.Equal(t, "abcdef", string(out))
}

func TestFrontSyncDemotesEmptiedSegment(t *testing.T) {
	r := New()
	r.PushBack(context.Background(), segWith("abc"))

	front := r.Front()
	startLen := front.Len()
	front.Consume(3)
	r.SyncFront(startLen)

	require.Equal(t, 0, r.Len())
	require.Equal(t, 0, r.Count())
	require.Equal(t, 1, r.SpareLen())
}

package orio

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NightEule5/orio-sub000/bufferr"
	"github.com/NightEule5/orio-sub000/internal/segment"
	"github.com/NightEule5/orio-sub000/pool"
)

// busyOnceClaimer reports bufferr.ErrPoolBusy on its first ClaimSize call,
// then delegates to a real Pool, simulating a synchronized pool that lost
// one contended claim before becoming available again.
type busyOnceClaimer struct {
	inner    *pool.Pool
	usedBusy bool
}

func (c *busyOnceClaimer) ClaimSize(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	if !c.usedBusy {
		c.usedBusy = true
		return nil, bufferr.ErrPoolBusy
	}
	return c.inner.ClaimSize(ctx, minBytes)
}

func (c *busyOnceClaimer) TryClaimCached(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	return c.inner.TryClaimCached(ctx, minBytes)
}

func (c *busyOnceClaimer) CollectOne(ctx context.Context, seg segment.Segment) error {
	return c.inner.CollectOne(ctx, seg)
}

func (c *busyOnceClaimer) Collect(ctx context.Context, segs []segment.Segment) error {
	return c.inner.Collect(ctx, segs)
}

func TestWriteSliceThenReadSliceRoundTrip(t *testing.T) {
	ctx := context.Background()
	b := Lean()

	src := make([]byte, 12345)
	for i := range src {
		src[i] = byte(i)
	}
	n, err := b.WriteSlice(ctx, src)
	require.NoError(t, err)
	require.Equal(t, len(src), n)

	dst := make([]byte, len(src))
	require.NoError(t, b.ReadSliceExact(dst))
	require.Equal(t, src, dst)
	require.Equal(t, 0, b.Count())
}

func TestWriteAcrossSegmentBoundary(t *testing.T) {
	ctx := context.Background()
	b := Lean()

	// Leave one unread byte at a misaligned offset in the first block, then
	// write a full block-sized payload after it so the payload spans the
	// boundary between that block and a newly claimed one.
	_, err := b.WriteSlice(ctx, []byte("0123456789"))
	require.NoError(t, err)
	require.Equal(t, 9, b.Skip(ctx, 9))

	payload := make([]byte, 8192)
	for i := range payload {
		payload[i] = byte(i)
	}
	_, err = b.WriteSlice(ctx, payload)
	require.NoError(t, err)

	lead, err := b.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte('9'), lead)

	dst := make([]byte, len(payload))
	require.NoError(t, b.ReadSliceExact(dst))
	require.Equal(t, payload, dst)
}

func TestCopyToSharesLargeSegment(t *testing.T) {
	ctx := context.Background()
	a := Lean()
	payload := make([]byte, 4096)
	for i := range payload {
		payload[i] = byte(i)
	}
	a.WriteSlice(ctx, payload)

	bOpts := DefaultBufferOptions()
	bOpts.ShareThreshold = 1024
	sink := New(bOpts)

	require.NoError(t, a.CopyTo(ctx, sink, 4096))
	require.Equal(t, 4096, a.Count())
	require.Equal(t, 4096, sink.Count())

	dst := make([]byte, 4096)
	require.NoError(t, sink.ReadSliceExact(dst))
	require.Equal(t, payload, dst)
}

func TestSkipConsumesFrontBytes(t *testing.T) {
	ctx := context.Background()
	b := Lean()
	payload := make([]byte, 4000)
	b.WriteSlice(ctx, payload)

	skipped := b.Skip(ctx, 1000)
	require.Equal(t, 1000, skipped)
	require.Equal(t, 3000, b.Count())
}

func TestCompactReclaimsFragmentation(t *testing.T) {
	ctx := context.Background()
	b := Lean()

	seg1 := make([]byte, 7000)
	seg2 := make([]byte, 3000)
	seg3 := make([]byte, 1000)
	b.WriteSlice(ctx, seg1)
	b.WriteSlice(ctx, seg2)
	b.WriteSlice(ctx, seg3)

	b.Skip(ctx, 4000)
	b.Compact(ctx)

	require.Equal(t, 7000, b.Count())
}

func TestFindByte(t *testing.T) {
	ctx := context.Background()
	b := Lean()
	b.WriteSlice(ctx, []byte("hello world"))

	idx, ok := b.Find(byte('w'))
	require.True(t, ok)
	require.Equal(t, 6, idx)
}

func TestFindRuneAcrossBoundary(t *testing.T) {
	ctx := context.Background()

	// Build each half in its own buffer and merge them with Fill, which
	// moves whole segments rather than concatenating bytes into one tail
	// segment. Auto-compaction is disabled on b so the two segments stay
	// separate: the search has to cross the boundary, and the em dash's
	// 3-byte encoding begins the second segment.
	first := Lean()
	first.WriteSlice(ctx, []byte("Hello "))
	second := Lean()
	second.WriteSlice(ctx, []byte("— World!\n"))

	bOpts := DefaultBufferOptions()
	bOpts.CompactThreshold = Unbounded
	b := New(bOpts)
	first.Fill(ctx, b, first.Count())
	second.Fill(ctx, b, second.Count())

	idx, ok := b.Find('—')
	require.True(t, ok)
	require.Equal(t, 6, idx)

	idx, ok = b.Find('\n')
	require.True(t, ok)
	require.Equal(t, 16, idx)
}

func TestWriteSliceAtSharedSegmentFails(t *testing.T) {
	ctx := context.Background()
	a := Lean()
	a.WriteSlice(ctx, []byte("hello world"))

	sinkOpts := DefaultBufferOptions()
	sinkOpts.ShareThreshold = 1
	sink := New(sinkOpts)
	require.NoError(t, a.CopyTo(ctx, sink, a.Count()))

	err := sink.WriteSliceAt(0, []byte("H"))
	require.Error(t, err)
}

func TestAllocationNeverFailsWithoutCachedBlocks(t *testing.T) {
	ctx := context.Background()
	opts := DefaultBufferOptions()
	opts.AllocationMode = AllocationNever
	b := New(opts)

	_, err := b.WriteSlice(ctx, make([]byte, 10))
	require.ErrorIs(t, err, bufferr.ErrPoolExhausted)
}

func TestAllocationOnErrorRecoversFromPoolBusy(t *testing.T) {
	ctx := context.Background()
	claimer := &busyOnceClaimer{inner: pool.New(0)}
	opts := DefaultBufferOptions()
	opts.AllocationMode = AllocationOnError
	b := NewWithPool(claimer, opts)

	n, err := b.WriteSlice(ctx, make([]byte, 10))
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.True(t, claimer.usedBusy)
}

func TestBufferOverSynchronizedPoolRoundTrip(t *testing.T) {
	ctx := context.Background()
	sp := pool.NewSynchronized(pool.New(0))
	b := NewWithPool(sp, DefaultBufferOptions())

	_, err := b.WriteSlice(ctx, []byte("shared pool"))
	require.NoError(t, err)

	dst := make([]byte, len("shared pool"))
	require.NoError(t, b.ReadSliceExact(dst))
	require.Equal(t, "shared pool", string(dst))
}

func TestSeekForwardSkipsBytes(t *testing.T) {
	ctx := context.Background()
	b := Lean()
	b.WriteSlice(ctx, []byte("abcdefghij"))

	n, err := b.Seek(ctx, SeekForward(4))
	require.NoError(t, err)
	require.Equal(t, int64(4), n)
	require.Equal(t, int64(6), b.SeekLen())
	require.Equal(t, int64(0), b.SeekPos())

	n, err = b.Seek(ctx, SeekBack(2))
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}

package pool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/NightEule5/orio-sub000/bufferr"
)

func TestSynchronizedReportsBusyOnReentry(t *testing.T) {
	ctx := context.Background()
	s := NewSynchronized(New(0))

	require.True(t, s.tryLock())
	_, err := s.ClaimOne(ctx)
	require.ErrorIs(t, err, bufferr.ErrPoolBusy)

	s.unlock()
	_, err = s.ClaimOne(ctx)
	require.NoError(t, err)
}

func TestSynchronizedTryClaimCachedDistinguishesBusyFromExhausted(t *testing.T) {
	ctx := context.Background()
	s := NewSynchronized(New(0))

	_, err := s.TryClaimCached(ctx, 1)
	require.ErrorIs(t, err, bufferr.ErrPoolExhausted)

	require.True(t, s.tryLock())
	_, err = s.TryClaimCached(ctx, 1)
	require.ErrorIs(t, err, bufferr.ErrPoolBusy)
	s.unlock()
}

func TestSynchronizedClaimSizeRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewSynchronized(New(0))

	segs, err := s.ClaimSize(ctx, 20000)
	require.NoError(t, err)
	require.NotEmpty(t, segs)

	require.NoError(t, s.CollectOne(ctx, segs[0]))
}

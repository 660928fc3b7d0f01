package pool

import (
	"context"

	"golang.org/x/sync/semaphore"

	"github.com/NightEule5/orio-sub000/bufferr"
	"github.com/NightEule5/orio-sub000/internal/segment"
)

// Synchronized wraps a Pool with a non-blocking try-lock, so concurrent
// goroutines may share one pool without risking a deadlock: a conflicting
// claim/collect returns bufferr.ErrPoolBusy instead of blocking.
type Synchronized struct {
	inner *Pool
	sem   *semaphore.Weighted
}

// NewSynchronized wraps p for safe (one-at-a-time) use across goroutines.
func NewSynchronized(p *Pool) *Synchronized {
	return &Synchronized{inner: p, sem: semaphore.NewWeighted(1)}
}

func (s *Synchronized) tryLock() bool {
	return s.sem.TryAcquire(1)
}

func (s *Synchronized) unlock() {
	s.sem.Release(1)
}

// ClaimOne behaves like Pool.ClaimOne, returning bufferr.ErrPoolBusy if
// another goroutine is currently using the pool.
func (s *Synchronized) ClaimOne(ctx context.Context) (segment.Segment, error) {
	if !s.tryLock() {
		return segment.Segment{}, bufferr.ErrPoolBusy
	}
	defer s.unlock()
	return s.inner.ClaimOne(ctx), nil
}

// ClaimSize behaves like Pool.ClaimSize, returning bufferr.ErrPoolBusy if
// another goroutine is currently using the pool.
func (s *Synchronized) ClaimSize(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	if !s.tryLock() {
		return nil, bufferr.ErrPoolBusy
	}
	defer s.unlock()
	return s.inner.ClaimSize(ctx, minBytes)
}

// TryClaimCached behaves like Pool.TryClaimCached, returning
// bufferr.ErrPoolBusy if another goroutine is currently using the pool
// (in preference to bufferr.ErrPoolExhausted, since the cache couldn't
// even be inspected).
func (s *Synchronized) TryClaimCached(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	if !s.tryLock() {
		return nil, bufferr.ErrPoolBusy
	}
	defer s.unlock()
	return s.inner.TryClaimCached(ctx, minBytes)
}

// CollectOne behaves like Pool.CollectOne, returning bufferr.ErrPoolBusy
// if another goroutine is currently using the pool. On busy, the segment
// is released rather than silently leaked.
func (s *Synchronized) CollectOne(ctx context.Context, seg segment.Segment) error {
	if !s.tryLock() {
		seg.Release()
		return bufferr.ErrPoolBusy
	}
	defer s.unlock()
	return s.inner.CollectOne(ctx, seg)
}

// Collect behaves like Pool.Collect, returning bufferr.ErrPoolBusy if
// another goroutine is currently using the pool. On busy, every segment is
// released rather than silently leaked.
func (s *Synchronized) Collect(ctx context.Context, segs []segment.Segment) error {
	if !s.tryLock() {
		for _, seg := range segs {
			seg.Release()
		}
		return bufferr.ErrPoolBusy
	}
	defer s.unlock()
	return s.inner.Collect(ctx, segs)
}

// Shed behaves like Pool.Shed, returning bufferr.ErrPoolBusy if another
// goroutine is currently using the pool.
func (s *Synchronized) Shed() error {
	if !s.tryLock() {
		return bufferr.ErrPoolBusy
	}
	defer s.unlock()
	s.inner.Shed()
	return nil
}

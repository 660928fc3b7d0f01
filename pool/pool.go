// Package pool implements the recycler of empty, exclusive blocks that a
// Buffer claims segments from and collects emptied segments back into.
package pool

import (
	"context"

	"github.com/NightEule5/orio-sub000/bufferr"
	"github.com/NightEule5/orio-sub000/internal/block"
	"github.com/NightEule5/orio-sub000/internal/segment"
	"github.com/NightEule5/orio-sub000/logging"
)

var log = logging.GetContextLoggerFunc("pool")

// Claimer is the claim/collect surface a Buffer needs from its block
// recycler. Both *Pool and *Synchronized satisfy it, so a Buffer can be
// built over either a plain, single-owner pool or one shared across
// goroutines behind a non-blocking try-lock; the latter surfaces
// bufferr.ErrPoolBusy from any method instead of blocking.
type Claimer interface {
	ClaimSize(ctx context.Context, minBytes int) ([]segment.Segment, error)
	TryClaimCached(ctx context.Context, minBytes int) ([]segment.Segment, error)
	CollectOne(ctx context.Context, seg segment.Segment) error
	Collect(ctx context.Context, segs []segment.Segment) error
}

// Pool is a LIFO cache of empty, exclusive blocks. It is not safe for
// concurrent use; wrap with Synchronized to share one pool across
// goroutines that never claim/collect at the same instant.
type Pool struct {
	free []*block.Block
	max  int
}

// New returns a pool that caches at most max blocks; collected blocks
// beyond that are released immediately. max <= 0 means unbounded.
func New(max int) *Pool {
	return &Pool{max: max}
}

// ClaimOne returns one empty, exclusive, block-backed segment, reusing a
// cached block if available or allocating a fresh one otherwise.
func (p *Pool) ClaimOne(ctx context.Context) segment.Segment {
	if n := len(p.free); n > 0 {
		b := p.free[n-1]
		p.free = p.free[:n-1]
		log(ctx).Debug("claimed cached block", "cacheLen", n-1)
		return segment.FromBlock(b)
	}
	log(ctx).Debug("allocated fresh block")
	return segment.FromBlock(block.New())
}

// ClaimCount returns n empty segments.
func (p *Pool) ClaimCount(ctx context.Context, n int) []segment.Segment {
	out := make([]segment.Segment, n)
	for i := range out {
		out[i] = p.ClaimOne(ctx)
	}
	return out
}

// ClaimSize returns enough empty segments to cover minBytes, i.e.
// ceil(minBytes / block.Size) segments. A plain Pool never fails to
// claim, so the returned error is always nil; it exists to satisfy
// Claimer alongside Synchronized's busy-reporting counterpart.
func (p *Pool) ClaimSize(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	if minBytes <= 0 {
		return nil, nil
	}
	n := (minBytes + block.Size - 1) / block.Size
	return p.ClaimCount(ctx, n), nil
}

// TryClaimCached returns enough segments to cover minBytes using only
// blocks already cached in the pool, without allocating a fresh block. It
// returns bufferr.ErrPoolExhausted if the cache doesn't hold enough.
func (p *Pool) TryClaimCached(ctx context.Context, minBytes int) ([]segment.Segment, error) {
	if minBytes <= 0 {
		return nil, nil
	}
	n := (minBytes + block.Size - 1) / block.Size
	if len(p.free) < n {
		return nil, bufferr.ErrPoolExhausted
	}
	return p.ClaimCount(ctx, n), nil
}

// CollectOne returns seg's backing block to the pool, cleared, if it is an
// exclusive, block-backed segment (any bytes it still holds are
// discarded); otherwise the segment (and any shared/boxed/slice backing)
// is simply released/dropped. A plain Pool
// never fails to collect, so the returned error is always nil.
func (p *Pool) CollectOne(ctx context.Context, seg segment.Segment) error {
	b := seg.IntoBlock()
	if b == nil {
		seg.Release()
		return nil
	}
	b.Clear()
	if p.max > 0 && len(p.free) >= p.max {
		b.Release()
		log(ctx).Debug("pool full, discarding block", "max", p.max)
		return nil
	}
	p.free = append(p.free, b)
	return nil
}

// Collect returns every segment in segs to the pool via CollectOne.
func (p *Pool) Collect(ctx context.Context, segs []segment.Segment) error {
	for _, s := range segs {
		_ = p.CollectOne(ctx, s)
	}
	return nil
}

// Shed releases every cached block, shrinking the pool to empty.
func (p *Pool) Shed() {
	for _, b := range p.free {
		b.Release()
	}
	p.free = nil
}

// Len reports how many blocks are currently cached.
func (p *Pool) Len() int { return len(p.free) }

// Package orio implements a segmented byte-buffer engine: a byte queue
// backed by a reusable pool of fixed-size blocks, composed with
// copy-on-write segment sharing and zero-copy borrowing of caller slices.
package orio

import (
	"context"

	"github.com/NightEule5/orio-sub000/bufferr"
	"github.com/NightEule5/orio-sub000/internal/block"
	"github.com/NightEule5/orio-sub000/internal/segment"
	"github.com/NightEule5/orio-sub000/internal/segring"
	"github.com/NightEule5/orio-sub000/logging"
	"github.com/NightEule5/orio-sub000/pool"
)

var log = logging.GetContextLoggerFunc("buffer")

// Buffer is the user-facing byte queue: a (pool, ring, options) triple.
// It is not safe for concurrent use; to share a pool across goroutines,
// build each Buffer with NewWithPool over a *pool.Synchronized instead of
// sharing one Buffer itself.
type Buffer struct {
	ring *segring.Ring
	pool pool.Claimer
	opts BufferOptions
}

// New returns an empty Buffer backed by a fresh pool that caches at most
// opts.PoolMax blocks (unbounded when PoolMax <= 0), and the given options.
func New(opts BufferOptions) *Buffer {
	return &Buffer{
		ring: segring.New(),
		pool: pool.New(opts.PoolMax),
		opts: opts,
	}
}

// NewWithPool returns an empty Buffer sharing p as its block claimer. p
// may be a plain *pool.Pool or a *pool.Synchronized shared across
// goroutines; the latter surfaces bufferr.ErrPoolBusy from claim/collect
// calls instead of blocking, which AllocationOnError recovers from
// locally (see claim).
func NewWithPool(p pool.Claimer, opts BufferOptions) *Buffer {
	return &Buffer{ring: segring.New(), pool: p, opts: opts}
}

// Lean returns an empty Buffer with default options.
func Lean() *Buffer {
	return New(DefaultBufferOptions())
}

// FromSlice returns a Buffer whose entire content is a borrowed view over
// data; the caller must not mutate data while the buffer (or any value it
// shares bytes with) is alive.
func FromSlice(data []byte) *Buffer {
	b := Lean()
	if len(data) > 0 {
		b.ring.PushBack(context.Background(), segment.FromSlice(data))
	}
	return b
}

// Count returns the number of readable bytes.
func (b *Buffer) Count() int { return b.ring.Count() }

// IsEmpty reports whether the buffer holds no readable bytes.
func (b *Buffer) IsEmpty() bool { return b.ring.IsEmpty() }

// Limit returns the number of bytes currently writable without claiming
// additional segments from the pool.
func (b *Buffer) Limit() int {
	total := 0
	for i := 0; i < b.ring.Len(); i++ {
		total += b.ring.ReadableAt(i).Limit()
	}
	total += b.ring.SpareLen() * block.Size
	return total
}

// Clear returns every segment to the pool and resets the buffer to empty.
func (b *Buffer) Clear(ctx context.Context) {
	for i := 0; i < b.ring.Len(); i++ {
		b.ring.ReadableAt(i).Clear()
	}
	all := b.ring.TakeAll()
	spare := b.ring.DrainAllEmpty()
	if err := b.pool.Collect(ctx, all); err != nil {
		log(ctx).Warnf("collecting readable segments: %v", err)
	}
	if err := b.pool.Collect(ctx, spare); err != nil {
		log(ctx).Warnf("collecting spare segments: %v", err)
	}
	log(ctx).Debug("cleared buffer")
}

// Reserve ensures Limit() >= n, compacting first and claiming additional
// segments from the pool as needed.
func (b *Buffer) Reserve(ctx context.Context, n int) error {
	b.CompactUntil(ctx, n)
	for b.Limit() < n {
		need := n - b.Limit()
		segs, err := b.claim(ctx, need)
		if err != nil {
			return bufferr.Wrap(err, bufferr.Reserve)
		}
		for _, s := range segs {
			b.ring.PushBack(ctx, s)
		}
	}
	return nil
}

// claim obtains segments covering at least n bytes, honoring
// AllocationMode. Per §7's recovery rules, AllocationOnError recovers
// locally from a busy synchronized pool by allocating ad-hoc instead of
// surfacing bufferr.ErrPoolBusy.
func (b *Buffer) claim(ctx context.Context, n int) ([]segment.Segment, error) {
	switch b.opts.AllocationMode {
	case AllocationAlways:
		return adHocClaim(n), nil
	case AllocationNever:
		return b.pool.TryClaimCached(ctx, n)
	default: // AllocationOnError
		segs, err := b.pool.ClaimSize(ctx, n)
		if err != nil {
			if bufferr.Is(err, bufferr.ErrPoolBusy) {
				log(ctx).Debug("pool busy, allocating ad-hoc", "need", n)
				return adHocClaim(n), nil
			}
			return nil, err
		}
		return segs, nil
	}
}

// adHocClaim allocates count(n) fresh blocks bypassing the pool entirely.
func adHocClaim(n int) []segment.Segment {
	count := (n + block.Size - 1) / block.Size
	out := make([]segment.Segment, count)
	for i := range out {
		out[i] = segment.FromBlock(block.New())
	}
	return out
}

// At returns the byte at logical position i without consuming it.
func (b *Buffer) At(i int) (byte, bool) {
	if i < 0 || i >= b.Count() {
		return 0, false
	}
	remaining := i
	for n := 0; n < b.ring.Len(); n++ {
		seg := b.ring.ReadableAt(n)
		l := seg.Len()
		if remaining < l {
			a, c := seg.AsSlices()
			if remaining < len(a) {
				return a[remaining], true
			}
			return c[remaining-len(a)], true
		}
		remaining -= l
	}
	return 0, false
}

// fragmentLen returns the total spare capacity inside readable-but-not-
// full segments: the quantity compared against CompactThreshold.
func (b *Buffer) fragmentLen() int {
	total := 0
	for i := 0; i < b.ring.Len(); i++ {
		total += b.ring.ReadableAt(i).Limit()
	}
	return total
}

// checkCompact runs Compact if fragmentation has crossed CompactThreshold.
func (b *Buffer) checkCompact(ctx context.Context) {
	if b.opts.CompactThreshold != Unbounded && b.fragmentLen() > b.opts.CompactThreshold {
		b.Compact(ctx)
	}
}

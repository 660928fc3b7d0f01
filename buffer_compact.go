package orio

import (
	"context"

	"github.com/NightEule5/orio-sub000/internal/block"
)

// Compact reduces the number of readable segments by merging partial
// segments together and defragmenting small shared segments, reclaiming
// spare capacity inside earlier segments. It returns the number of bytes
// of fragmentation recovered.
func (b *Buffer) Compact(ctx context.Context) int {
	return b.compactWhile(ctx, func(int) bool { return true })
}

// CompactUntil compacts only until Limit() >= n, or until no further
// progress is possible.
func (b *Buffer) CompactUntil(ctx context.Context, n int) int {
	return b.compactWhile(ctx, func(recovered int) bool { return b.Limit() < n })
}

// compactWhile runs the compaction walk while pred(recoveredSoFar) is
// true, per §4.5.2: for each exclusive partial segment, pull bytes from
// the following segment's front into its tail; for a shared partial
// segment no larger than one block, claim a fresh block and copy its live
// bytes in, replacing the shared entry; shared segments larger than one
// block are left untouched.
func (b *Buffer) compactWhile(ctx context.Context, pred func(recovered int) bool) int {
	before := b.fragmentLen()
	i := 0
	for i < b.ring.Len()-1 {
		if !pred(before - b.fragmentLen()) {
			break
		}
		cur := b.ring.ReadableAt(i)
		switch {
		case cur.IsShared():
			if cur.Len() <= block.Size {
				b.defragShared(ctx, i)
			}
			i++
		case cur.Limit() > 0:
			next := b.ring.ReadableAt(i + 1)
			cur.WriteFrom(next)
			b.ring.Recount()
			if next.IsEmpty() {
				b.ring.RemoveReadableAt(i + 1)
				continue
			}
			i++
		default:
			i++
		}
	}
	b.ring.Invalidate()
	spare := b.ring.DrainAllEmpty()
	if err := b.pool.Collect(ctx, spare); err != nil {
		log(ctx).Warnf("collecting compacted spares: %v", err)
	}
	recovered := before - b.fragmentLen()
	log(ctx).Debug("compacted", "recovered", recovered)
	return recovered
}

// defragShared replaces the shared segment at readable index i with a
// fresh, exclusive, block-backed copy of the same bytes. If no segment
// can currently be claimed (e.g. a busy synchronized pool under
// AllocationNever), the shared segment is left in place for a later pass.
func (b *Buffer) defragShared(ctx context.Context, i int) {
	old := b.ring.ReadableAt(i)
	a, c := old.AsSlices()
	segs, err := b.claim(ctx, 1)
	if err != nil || len(segs) == 0 {
		log(ctx).Debug("defrag claim failed, leaving segment shared", "err", err)
		return
	}
	fresh := segs[0]
	buf := make([]byte, 0, len(a)+len(c))
	buf = append(buf, a...)
	buf = append(buf, c...)
	fresh.Write(buf)
	old.Release()
	*old = fresh
}

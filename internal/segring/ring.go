// Package segring implements the ordered deque of segments partitioned
// into a readable prefix and a spare suffix, as composed by the Buffer
// engine.
package segring

import (
	"context"

	"github.com/NightEule5/orio-sub000/internal/segment"
	"github.com/NightEule5/orio-sub000/logging"
)

var log = logging.GetContextLoggerFunc("segring")

// Ring is an ordered sequence of segments, with segments[0:readable] being
// non-empty and readable in FIFO order, and segments[readable:] being
// empty, exclusive, spare capacity reserved for future writes.
type Ring struct {
	segs     []segment.Segment
	readable int
	count    int
}

// New returns an empty ring.
func New() *Ring { return &Ring{} }

// Len returns the number of readable segments.
func (r *Ring) Len() int { return r.readable }

// Count returns the total number of readable bytes.
func (r *Ring) Count() int { return r.count }

// SpareLen returns the number of spare (empty, exclusive) segments.
func (r *Ring) SpareLen() int { return len(r.segs) - r.readable }

// IsEmpty reports whether there are no readable bytes.
func (r *Ring) IsEmpty() bool { return r.count == 0 }

// PushBack appends seg to the ring. An empty exclusive segment becomes a
// spare; an empty shared segment is dropped (released); otherwise it is
// appended to the readable prefix.
func (r *Ring) PushBack(ctx context.Context, seg segment.Segment) {
	if seg.IsEmpty() {
		if seg.IsShared() {
			seg.Release()
			return
		}
		r.segs = append(r.segs, seg)
		return
	}
	r.insertReadableAt(ctx, r.readable, seg)
}

// PushFront behaves like PushBack but inserts at the head of the readable
// prefix; empties are dropped/sparsed and never promoted to readable.
func (r *Ring) PushFront(ctx context.Context, seg segment.Segment) {
	if seg.IsEmpty() {
		if seg.IsShared() {
			seg.Release()
			return
		}
		r.segs = append(r.segs, seg)
		return
	}
	r.insertReadableAt(ctx, 0, seg)
}

// insertReadableAt inserts a non-empty segment at readable index idx,
// rotating the spare suffix aside and back to preserve the partition
// invariant in O(segment count).
func (r *Ring) insertReadableAt(ctx context.Context, idx int, seg segment.Segment) {
	spares := append([]segment.Segment(nil), r.segs[r.readable:]...)
	head := append([]segment.Segment(nil), r.segs[:idx]...)
	tail := append([]segment.Segment(nil), r.segs[idx:r.readable]...)

	if len(tail) > 0 || len(spares) > 0 {
		log(ctx).Debug("rotating ring to insert segment", "idx", idx, "tailLen", len(tail), "spareLen", len(spares))
	}

	out := make([]segment.Segment, 0, len(r.segs)+1)
	out = append(out, head...)
	out = append(out, seg)
	out = append(out, tail...)
	out = append(out, spares...)

	r.segs = out
	r.readable++
	r.count += seg.Len()
}

// PopFront removes and returns the first readable segment.
func (r *Ring) PopFront() (segment.Segment, bool) {
	if r.readable == 0 {
		return segment.Segment{}, false
	}
	seg := r.segs[0]
	r.segs = r.segs[1:]
	r.readable--
	r.count -= seg.Len()
	return seg, true
}

// PopBack removes and returns a writable tail segment: the last spare
// segment if any spare exists, else the last readable segment if it has
// remaining capacity.
func (r *Ring) PopBack() (segment.Segment, bool) {
	if n := len(r.segs); n > 0 {
		last := n - 1
		if last >= r.readable || r.segs[last].Limit() > 0 {
			seg := r.segs[last]
			r.segs = r.segs[:last]
			if last < r.readable {
				r.readable--
				r.count -= seg.Len()
			}
			return seg, true
		}
	}
	return segment.Segment{}, false
}

// Front returns a pointer to the first readable segment, or nil if empty.
// Callers mutating through the pointer must call SyncFront afterward to
// reconcile the ring's counters with any length change.
func (r *Ring) Front() *segment.Segment {
	if r.readable == 0 {
		return nil
	}
	return &r.segs[0]
}

// SyncFront reconciles ring.count after a caller has mutated the segment
// returned by Front via Consume/Truncate/Write. If the front segment
// became empty, it is demoted out of the readable prefix into the spare
// suffix (exclusive) or dropped (shared, already released by Consume).
func (r *Ring) SyncFront(startLen int) {
	if r.readable == 0 {
		return
	}
	seg := &r.segs[0]
	delta := seg.Len() - startLen
	r.count += delta
	if seg.IsEmpty() {
		empty := r.segs[0]
		r.segs = r.segs[1:]
		r.readable--
		if !empty.IsShared() {
			r.segs = append(r.segs, empty)
		}
	}
}

// Back returns a pointer to the writable tail segment (see PopBack for
// selection rule), or nil if none exists. Call SyncBack after mutating.
func (r *Ring) Back() *segment.Segment {
	n := len(r.segs)
	if n == 0 {
		return nil
	}
	last := n - 1
	if last >= r.readable || r.segs[last].Limit() > 0 {
		return &r.segs[last]
	}
	return nil
}

// SyncBack reconciles ring.count and the readable/spare partition after a
// caller has mutated the segment returned by Back.
func (r *Ring) SyncBack(startLen int) {
	n := len(r.segs)
	if n == 0 {
		return
	}
	last := n - 1
	seg := &r.segs[last]
	if last < r.readable {
		r.count += seg.Len() - startLen
	} else if !seg.IsEmpty() {
		// a spare segment was written through: move it to the front of the
		// spare suffix and promote it to readable, leaving any other
		// (still empty) spares behind it.
		r.count += seg.Len()
		r.segs[r.readable], r.segs[last] = r.segs[last], r.segs[r.readable]
		r.readable++
	}
}

// Drain removes up to k readable segments from the front, releasing them,
// and returns the number removed.
func (r *Ring) Drain(k int) int {
	if k > r.readable {
		k = r.readable
	}
	for i := 0; i < k; i++ {
		r.count -= r.segs[i].Len()
		r.segs[i].Release()
	}
	r.segs = r.segs[k:]
	r.readable -= k
	return k
}

// DrainAllEmpty removes the entire spare suffix, returning the removed
// segments so the caller (Buffer) can hand their blocks back to a pool.
func (r *Ring) DrainAllEmpty() []segment.Segment {
	spares := r.segs[r.readable:]
	out := append([]segment.Segment(nil), spares...)
	r.segs = r.segs[:r.readable]
	return out
}

// TakeAll removes and returns every readable segment, resetting the ring's
// readable state to empty (spares are preserved).
func (r *Ring) TakeAll() []segment.Segment {
	out := append([]segment.Segment(nil), r.segs[:r.readable]...)
	r.segs = r.segs[r.readable:]
	r.readable = 0
	r.count = 0
	return out
}

// AppendAllReadable appends pre-built readable segments directly (used by
// Buffer.Fill's fast path when taking another ring's entire contents).
func (r *Ring) AppendAllReadable(ctx context.Context, segs []segment.Segment) {
	for _, s := range segs {
		r.insertReadableAt(ctx, r.readable, s)
	}
}

// ReadableAt returns the i-th readable segment (0-indexed from the front).
func (r *Ring) ReadableAt(i int) *segment.Segment {
	if i < 0 || i >= r.readable {
		return nil
	}
	return &r.segs[i]
}

// RemoveReadableAt removes the readable segment at index i, used after a
// compaction step empties a middle segment. An empty exclusive segment is
// demoted to the spare suffix; a shared (or already-released) one is
// simply dropped from the slice.
func (r *Ring) RemoveReadableAt(i int) {
	if i < 0 || i >= r.readable {
		return
	}
	seg := r.segs[i]
	r.segs = append(r.segs[:i], r.segs[i+1:]...)
	r.readable--
	if !seg.IsShared() {
		r.segs = append(r.segs, seg)
	}
}

// Recount recomputes ring.count from the current readable segments' own
// lengths. Used after direct mutation through ReadableAt pointers (e.g.
// compaction) that bypasses the push/pop bookkeeping.
func (r *Ring) Recount() {
	total := 0
	for i := 0; i < r.readable; i++ {
		total += r.segs[i].Len()
	}
	r.count = total
}

// SliceIter iterates the contiguous byte slices composing the readable
// prefix, in order; each call to Next yields at most one physical half of
// one segment.
type SliceIter struct {
	r      *Ring
	seg    int
	second bool
}

// Slices returns a fresh iterator over the readable prefix.
func (r *Ring) Slices() *SliceIter { return &SliceIter{r: r} }

// Next returns the next slice and true, or nil, false when exhausted.
func (it *SliceIter) Next() ([]byte, bool) {
	for it.seg < it.r.readable {
		s := &it.r.segs[it.seg]
		a, c := s.AsSlices()
		if !it.second {
			it.second = true
			if len(a) > 0 {
				return a, true
			}
		}
		it.second = false
		it.seg++
		if len(c) > 0 {
			return c, true
		}
	}
	return nil, false
}

// Invalidate is a no-op placeholder matching the upstream contract: this
// implementation keeps counters consistent eagerly, so there is nothing to
// rescan. Kept for API symmetry with the ported design.
func (r *Ring) Invalidate() {}

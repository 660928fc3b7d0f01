package orio

import (
	"context"

	"github.com/NightEule5/orio-sub000/bufferr"
)

// ReadSlice copies up to len(dst) readable bytes into dst, consuming them
// in FIFO order, and returns the number of bytes copied.
func (b *Buffer) ReadSlice(dst []byte) int {
	read := 0
	for read < len(dst) {
		front := b.ring.Front()
		if front == nil {
			break
		}
		startLen := front.Len()
		n := front.Read(dst[read:])
		b.ring.SyncFront(startLen)
		if n == 0 {
			break
		}
		read += n
	}
	return read
}

// ReadSliceExact is like ReadSlice but returns an error wrapping
// bufferr.ErrEndOfStream if fewer than len(dst) bytes were available; the
// bytes that were available are still consumed into dst.
func (b *Buffer) ReadSliceExact(dst []byte) error {
	n := b.ReadSlice(dst)
	if n < len(dst) {
		return endOfStream()
	}
	return nil
}

// ReadByte consumes and returns the first byte.
func (b *Buffer) ReadByte() (byte, error) {
	var buf [1]byte
	if b.ReadSlice(buf[:]) == 0 {
		return 0, endOfStream()
	}
	return buf[0], nil
}

// Skip consumes up to n bytes without copying them anywhere, releasing
// fully-consumed segments back to the pool, and returns the number of
// bytes actually skipped (min(n, Count())).
func (b *Buffer) Skip(ctx context.Context, n int) int {
	if n >= b.Count() {
		total := b.Count()
		b.Clear(ctx)
		return total
	}
	skipped := 0
	for skipped < n {
		front := b.ring.Front()
		if front == nil {
			break
		}
		l := front.Len()
		remaining := n - skipped
		if remaining >= l {
			seg, _ := b.ring.PopFront()
			skipped += l
			if err := b.pool.CollectOne(ctx, seg); err != nil {
				log(ctx).Warnf("collecting skipped segment: %v", err)
			}
			continue
		}
		front.Consume(remaining)
		b.ring.SyncFront(l)
		skipped += remaining
	}
	return skipped
}

// CopyTo copies up to n logical bytes from b into sink without consuming
// b, sharing large segments and copying small ones per sink's
// ShareThreshold, then compacting sink if warranted.
func (b *Buffer) CopyTo(ctx context.Context, sink *Buffer, n int) error {
	if n > b.Count() {
		n = b.Count()
	}
	remaining := n
	for i := 0; i < b.ring.Len() && remaining > 0; i++ {
		seg := b.ring.ReadableAt(i)
		l := seg.Len()
		take := l
		if take > remaining {
			take = remaining
		}
		if take >= sink.opts.ShareThreshold && sink.opts.ShareThreshold != Unbounded {
			shared := seg.Share(0, take)
			sink.ring.PushBack(ctx, shared)
		} else {
			a, c := seg.AsSlices()
			buf := make([]byte, 0, take)
			if len(a) > take {
				a = a[:take]
			}
			buf = append(buf, a...)
			if need := take - len(a); need > 0 {
				if len(c) > need {
					c = c[:need]
				}
				buf = append(buf, c...)
			}
			if _, err := sink.WriteSlice(ctx, buf); err != nil {
				return bufferr.Wrap(err, bufferr.Copy)
			}
		}
		remaining -= take
	}
	sink.checkCompact(ctx)
	return nil
}

// Fill transfers up to n bytes from b into sink (another Buffer),
// consuming them from b. If n >= Count(), the entire readable ring moves
// in one O(segment-count) operation; this is the Source.Fill contract.
func (b *Buffer) Fill(ctx context.Context, sink *Buffer, n int) int {
	if n >= b.Count() {
		total := b.ring.Count()
		all := b.ring.TakeAll()
		sink.ring.AppendAllReadable(ctx, all)
		sink.checkCompact(ctx)
		return total
	}
	moved := 0
	for moved < n {
		front := b.ring.Front()
		if front == nil {
			break
		}
		l := front.Len()
		remaining := n - moved
		if remaining >= l {
			seg, _ := b.ring.PopFront()
			sink.ring.PushBack(ctx, seg)
			moved += l
			continue
		}
		if remaining >= sink.opts.ShareThreshold && sink.opts.ShareThreshold != Unbounded {
			shared := front.Share(0, remaining)
			front.Consume(remaining)
			b.ring.SyncFront(l)
			sink.ring.PushBack(ctx, shared)
		} else {
			a, c := front.AsSlices()
			buf := make([]byte, 0, remaining)
			if len(a) > remaining {
				a = a[:remaining]
			}
			buf = append(buf, a...)
			if need := remaining - len(a); need > 0 {
				if len(c) > need {
					c = c[:need]
				}
				buf = append(buf, c...)
			}
			front.Consume(remaining)
			b.ring.SyncFront(l)
			sink.WriteSlice(ctx, buf)
		}
		moved += remaining
	}
	sink.checkCompact(ctx)
	return moved
}

// Drain delegates to source.Fill(b, n), matching the Sink.Drain contract.
func (b *Buffer) Drain(ctx context.Context, source *Buffer, n int) int {
	return source.Fill(ctx, b, n)
}

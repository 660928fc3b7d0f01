package orio

import "context"

// SeekOffset selects the reference point and distance for a Seek call.
type SeekOffset struct {
	kind seekKind
	n    int
}

type seekKind int

const (
	seekReset seekKind = iota
	seekForward
	seekBack
	seekFromStart
	seekFromEnd
)

// SeekReset returns to the logical origin; since a Buffer can only be
// skipped forward, this is only meaningful as a no-op marker.
func SeekReset() SeekOffset { return SeekOffset{kind: seekReset} }

// SeekForward advances n bytes forward.
func SeekForward(n int) SeekOffset { return SeekOffset{kind: seekForward, n: n} }

// SeekBack requests moving n bytes backward; Buffers cannot rewind, so
// this is always a no-op returning 0.
func SeekBack(n int) SeekOffset { return SeekOffset{kind: seekBack, n: n} }

// SeekFromStart advances to absolute position n from the logical start.
func SeekFromStart(n int) SeekOffset { return SeekOffset{kind: seekFromStart, n: n} }

// SeekFromEnd advances to i bytes before the logical end.
func SeekFromEnd(i int) SeekOffset { return SeekOffset{kind: seekFromEnd, n: i} }

// Seek implements the core's monotonic, forward-only seek semantics:
// seeking forward consumes bytes via Skip; seeking backward is always a
// no-op returning 0; seeking from the start or end translates into a
// forward skip. It returns the number of bytes actually skipped.
func (b *Buffer) Seek(ctx context.Context, off SeekOffset) (int64, error) {
	switch off.kind {
	case seekReset:
		return 0, nil
	case seekBack:
		return 0, nil
	case seekForward:
		return int64(b.Skip(ctx, off.n)), nil
	case seekFromStart:
		return int64(b.Skip(ctx, off.n)), nil
	case seekFromEnd:
		n := b.Count() - off.n
		if n < 0 {
			n = 0
		}
		return int64(b.Skip(ctx, n)), nil
	default:
		return 0, outOfBounds()
	}
}

// SeekLen returns the number of readable bytes, matching count().
func (b *Buffer) SeekLen() int64 { return int64(b.Count()) }

// SeekPos always returns 0: a Buffer has no notion of an absolute read
// position other than "everything before the head has been consumed".
func (b *Buffer) SeekPos() int64 { return 0 }

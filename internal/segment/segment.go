// Package segment implements the polymorphic view over one physical block,
// boxed byte container, or borrowed slice that composes a segment ring.
package segment

import (
	"context"

	"github.com/NightEule5/orio-sub000/internal/block"
	"github.com/NightEule5/orio-sub000/logging"
)

var log = logging.GetContextLoggerFunc("segment")

// Size is the nominal segment size, mirroring block.Size. A boxed or slice
// segment may be larger or smaller; block-backed segments are always
// exactly this size.
const Size = block.Size

// Segment is a tagged view over one of three backings: a Block, a boxed
// variable-length byte slice, or a borrowed slice of caller memory. Zero
// value is not valid; use one of the New* constructors.
type Segment struct {
	blk   *block.Block
	boxed *boxed
	slice []byte

	// off/ln give a sub-view into boxed or slice backings. Block-backed
	// segments use the block's own head/len bookkeeping instead.
	off, ln int
}

// boxed is a reference-counted variable-length byte container, the
// "boxed" backing of a Segment. Several Segments may share one boxed
// buffer; mutation requires refs == 1.
type boxed struct {
	refs int
	data []byte
}

// FromBlock wraps an exclusively-owned Block as a new segment.
func FromBlock(b *block.Block) Segment {
	return Segment{blk: b}
}

// FromBoxed creates a new exclusive segment owning a freshly allocated
// variable-length buffer of the given capacity, initially empty.
func FromBoxed(capacity int) Segment {
	return Segment{boxed: &boxed{refs: 1, data: make([]byte, 0, capacity)}}
}

// FromSlice creates a read-only segment borrowing caller-provided memory.
// The caller must ensure data outlives the segment and any of its shares.
func FromSlice(data []byte) Segment {
	return Segment{slice: data, ln: len(data)}
}

func (s *Segment) isBlock() bool { return s.blk != nil }
func (s *Segment) isBoxed() bool { return s.boxed != nil }
func (s *Segment) isSlice() bool { return s.blk == nil && s.boxed == nil }

// Len returns the number of readable bytes.
func (s *Segment) Len() int {
	switch {
	case s.isBlock():
		return s.blk.Len()
	case s.isBoxed():
		return s.ln
	default:
		return s.ln
	}
}

// Limit returns the number of bytes writable before the segment is full.
// Zero for shared or slice segments.
func (s *Segment) Limit() int {
	switch {
	case s.isBlock():
		if s.blk.IsShared() {
			return 0
		}
		return s.blk.Limit()
	case s.isBoxed():
		if s.boxed.refs > 1 {
			return 0
		}
		return cap(s.boxed.data) - s.off - s.ln
	default:
		return 0
	}
}

// Size returns the physical capacity of the backing: block.Size for a
// block-backed segment, the boxed capacity, or the slice length.
func (s *Segment) Size() int {
	switch {
	case s.isBlock():
		return block.Size
	case s.isBoxed():
		return cap(s.boxed.data)
	default:
		return len(s.slice)
	}
}

// IsShared reports whether the segment's backing cannot currently be
// written through this view.
func (s *Segment) IsShared() bool {
	switch {
	case s.isBlock():
		return s.blk.IsShared()
	case s.isBoxed():
		return s.boxed.refs > 1
	default:
		return true
	}
}

// IsFull reports whether the segment is physically at capacity.
func (s *Segment) IsFull() bool { return s.Len() == s.Size() }

// IsEmpty reports whether the segment holds no readable bytes.
func (s *Segment) IsEmpty() bool { return s.Len() == 0 }

// AsSlices returns the readable bytes as up to two slices (block-backed
// segments may wrap; boxed and slice segments are always contiguous, so
// the second slice is empty).
func (s *Segment) AsSlices() (a, c []byte) {
	switch {
	case s.isBlock():
		return s.blk.AsSlices()
	case s.isBoxed():
		return s.boxed.data[s.off : s.off+s.ln], nil
	default:
		return s.slice[s.off : s.off+s.ln], nil
	}
}

// AsMutSlices returns the readable bytes as mutable slices, or ok=false if
// the segment is not exclusively owned.
func (s *Segment) AsMutSlices() (a, c []byte, ok bool) {
	if s.IsShared() {
		return nil, nil, false
	}
	switch {
	case s.isBlock():
		return s.blk.AsMutSlices()
	case s.isBoxed():
		return s.boxed.data[s.off : s.off+s.ln], nil, true
	default:
		return nil, nil, false
	}
}

// Read copies up to len(dst) bytes from the front of the segment into dst,
// consuming them, and returns the number of bytes copied.
func (s *Segment) Read(dst []byte) int {
	switch {
	case s.isBlock():
		return s.blk.DrainFront(dst)
	default:
		a, _ := s.AsSlices()
		n := copy(dst, a)
		s.Consume(n)
		return n
	}
}

// Write appends as much of src as fits into remaining capacity, returning
// the bytes written and whether the segment was writable at all.
func (s *Segment) Write(src []byte) (int, bool) {
	if s.IsShared() {
		return 0, false
	}
	switch {
	case s.isBlock():
		n := s.blk.ExtendBack(src)
		if n < 0 {
			return 0, false
		}
		return n, true
	case s.isBoxed():
		free := cap(s.boxed.data) - s.off - s.ln
		n := len(src)
		if n > free {
			n = free
		}
		tail := s.boxed.data[s.off+s.ln : s.off+s.ln+n]
		copy(tail, src[:n])
		s.boxed.data = s.boxed.data[:s.off+s.ln+n]
		s.ln += n
		return n, true
	default:
		return 0, false
	}
}

// WriteFrom moves bytes from the front of other into the tail of s,
// returning the count moved and whether the write was attempted (false if
// s is not writable).
func (s *Segment) WriteFrom(other *Segment) (int, bool) {
	if s.IsShared() {
		return 0, false
	}
	limit := s.Limit()
	if limit == 0 {
		return 0, true
	}
	a, c := other.AsSlices()
	buf := make([]byte, 0, limit)
	need := limit
	if len(a) > need {
		a = a[:need]
	}
	buf = append(buf, a...)
	need -= len(a)
	if need > 0 {
		if len(c) > need {
			c = c[:need]
		}
		buf = append(buf, c...)
	}
	n, _ := s.Write(buf)
	other.Consume(n)
	return n, true
}

// Consume drops n bytes from the front, releasing underlying storage if
// the segment becomes empty and was shared.
func (s *Segment) Consume(n int) {
	if n == 0 {
		return
	}
	switch {
	case s.isBlock():
		s.blk.RemoveCount(n)
		if s.blk.IsEmpty() && s.blk.IsShared() {
			s.blk.Release()
			s.blk = nil
		}
	case s.isBoxed():
		s.off += n
		s.ln -= n
		if s.ln == 0 && s.boxed.refs > 1 {
			s.boxed.refs--
			s.boxed = nil
		}
	default:
		s.off += n
		s.ln -= n
	}
}

// Truncate shortens the segment to n readable bytes from the front,
// dropping bytes from the back.
func (s *Segment) Truncate(n int) {
	switch {
	case s.isBlock():
		s.blk.Truncate(n)
	default:
		s.ln = n
	}
}

// Push appends a single byte, reporting whether the segment accepted it.
func (s *Segment) Push(b byte) bool {
	n, ok := s.Write([]byte{b})
	return ok && n == 1
}

// Share returns a new segment viewing the logical range [off, off+n) of s,
// sharing the same underlying storage. The original is unchanged. A
// zero-length range yields an empty segment (callers must not push this
// into a ring).
func (s *Segment) Share(off, n int) Segment {
	if n == 0 {
		return Segment{slice: nil}
	}
	switch {
	case s.isBlock():
		cl := s.blk.Clone()
		// Re-home the clone so its logical view starts exactly at the
		// shared range: drop off bytes from the front and n.. from back.
		cl.RemoveCount(off)
		cl.Truncate(n)
		return Segment{blk: cl}
	case s.isBoxed():
		s.boxed.refs++
		return Segment{boxed: s.boxed, off: s.off + off, ln: n}
	default:
		return Segment{slice: s.slice, off: s.off + off, ln: n}
	}
}

// ShareAll is equivalent to Share(0, s.Len()).
func (s *Segment) ShareAll() Segment { return s.Share(0, s.Len()) }

// Fork converts a shared or slice segment into an exclusively-owned
// block-backed segment, copying the live bytes. If the data is larger than
// block.Size, the returned remainder segment (hadOverflow=true) carries the
// overflow as a shared view; otherwise remainder is the zero value and
// hadOverflow is false. forked is false if the segment was already
// exclusive (no fork needed).
func (s *Segment) Fork(ctx context.Context, claim func() *block.Block) (remainder Segment, forked bool, hadOverflow bool) {
	if !s.IsShared() {
		return Segment{}, false, false
	}
	a, c := s.AsSlices()
	total := len(a) + len(c)
	nb := claim()
	head := total
	if head > block.Size {
		head = block.Size
	}
	buf := make([]byte, 0, head)
	if len(a) >= head {
		buf = append(buf, a[:head]...)
	} else {
		buf = append(buf, a...)
		buf = append(buf, c[:head-len(a)]...)
	}
	nb.ExtendBack(buf)

	overflow := total - head
	var rem Segment
	if overflow > 0 {
		log(ctx).Debug("fork overflowed one block, sharing remainder", "total", total, "overflow", overflow)
		// overflow bytes are the remaining original shared bytes.
		rem = s.Share(head, overflow)
	}

	s.releaseBacking()
	s.blk = nb
	s.boxed = nil
	s.slice = nil
	s.off = 0
	s.ln = 0

	return rem, true, overflow > 0
}

func (s *Segment) releaseBacking() {
	switch {
	case s.isBlock():
		s.blk.Release()
	case s.isBoxed():
		s.boxed.refs--
	}
}

// Release drops this segment's claim on its backing storage. Must be
// called when a segment is discarded (popped from a ring and not reused)
// to keep reference counts accurate.
func (s *Segment) Release() {
	s.releaseBacking()
	s.blk = nil
	s.boxed = nil
	s.slice = nil
}

// Clear resets the segment to empty without releasing storage.
func (s *Segment) Clear() {
	switch {
	case s.isBlock():
		s.blk.Clear()
	case s.isBoxed():
		s.off = 0
		s.ln = 0
		s.boxed.data = s.boxed.data[:0]
	default:
		s.off = 0
		s.ln = 0
	}
}

// IntoBlock returns the underlying block if this segment is block-backed
// and exclusive, for returning to a pool. Returns nil otherwise.
func (s *Segment) IntoBlock() *block.Block {
	if s.isBlock() && !s.blk.IsShared() {
		b := s.blk
		s.blk = nil
		return b
	}
	return nil
}

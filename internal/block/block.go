// Package block implements a fixed-capacity, reference-counted ring deque of
// bytes. It is the smallest unit of owned memory in the buffer engine: every
// pool-backed segment is ultimately a view over one Block.
package block

import (
	"context"

	"github.com/NightEule5/orio-sub000/logging"
)

var log = logging.GetContextLoggerFunc("block")

// Size is the fixed capacity, in bytes, of a single Block.
const Size = 8192

// storage is the backing array shared by every clone of a Block. refs tracks
// how many Blocks currently reference it; it is not safe for concurrent use,
// matching the single-threaded contract of the rest of the engine.
type storage struct {
	refs int
	buf  [Size]byte
}

// Block is a fixed-capacity circular deque of bytes. Cloning a Block is O(1)
// and shares the same backing array between clones: the clone may be read,
// but writes require the Block to be exclusively owned (refs == 1).
//
// A Block's logical contents are storage.buf[(head+i)%Size] for i in
// [0, len), and may wrap around the end of the array.
type Block struct {
	store *storage
	head  int
	len   int
}

// New allocates a fresh, empty, exclusively-owned Block. The backing array is
// not zeroed; bytes outside [0, len) must never be read.
func New() *Block {
	return &Block{store: &storage{refs: 1}}
}

// Len returns the number of readable bytes in the block.
func (b *Block) Len() int { return b.len }

// Limit returns the number of bytes that can still be written before the
// block is full.
func (b *Block) Limit() int { return Size - b.len }

// IsEmpty reports whether the block holds no bytes.
func (b *Block) IsEmpty() bool { return b.len == 0 }

// IsFull reports whether the block has no remaining write capacity.
func (b *Block) IsFull() bool { return b.len == Size }

// IsShared reports whether the block's storage is referenced by more than
// one Block, meaning it cannot be written to.
func (b *Block) IsShared() bool { return b.store.refs > 1 }

// IsContiguous reports whether the readable bytes do not wrap past the end
// of the backing array.
func (b *Block) IsContiguous() bool { return b.head+b.len <= Size }

// Clone shares the block's storage with a new Block, incrementing the
// reference count. The clone starts with the same head/len as the original,
// so it views the same logical bytes; callers typically narrow the clone's
// view immediately afterward (see segment.Segment.Share).
func (b *Block) Clone() *Block {
	b.store.refs++
	return &Block{store: b.store, head: b.head, len: b.len}
}

// Release drops this Block's claim on its storage. It must be called
// exactly once for every Block obtained via New or Clone once the Block is
// no longer in use; forgetting to call it leaves a sibling clone permanently
// marked as shared.
func (b *Block) Release() {
	if b.store != nil {
		b.store.refs--
		b.store = nil
	}
}

func (b *Block) wrap(i int) int {
	i += b.head
	if i >= Size {
		i -= Size
	}
	return i
}

func (b *Block) wrapSub(i int) int {
	i = b.head - i
	if i < 0 {
		i += Size
	}
	return i
}

// Clear resets the deque to empty without releasing or zeroing storage.
func (b *Block) Clear() {
	b.head = 0
	b.len = 0
}

// sliceRanges returns up to two physical ranges covering the logical range
// [start, start+n).
func (b *Block) sliceRanges(start, n int) (a, c [2]int) {
	if n == 0 {
		return [2]int{0, 0}, [2]int{0, 0}
	}
	s := b.wrap(start)
	headLen := Size - s
	if headLen >= n {
		return [2]int{s, s + n}, [2]int{0, 0}
	}
	tailLen := n - headLen
	return [2]int{s, Size}, [2]int{0, tailLen}
}

// AsSlices returns the readable bytes as up to two slices, in order. The
// second slice is non-empty only if the deque wraps.
func (b *Block) AsSlices() (a, c []byte) {
	return b.AsSlicesInRange(0, b.len)
}

// AsSlicesInRange returns the readable bytes within [start, start+n) as up
// to two slices, in order.
func (b *Block) AsSlicesInRange(start, n int) (a, c []byte) {
	ra, rc := b.sliceRanges(start, n)
	return b.store.buf[ra[0]:ra[1]], b.store.buf[rc[0]:rc[1]]
}

// AsMutSlices returns the readable bytes as up to two mutable slices, or
// false if the block is shared.
func (b *Block) AsMutSlices() (a, c []byte, ok bool) {
	if b.IsShared() {
		return nil, nil, false
	}
	ra, rc := b.sliceRanges(0, b.len)
	return b.store.buf[ra[0]:ra[1]], b.store.buf[rc[0]:rc[1]], true
}

// spareRanges returns the two physical ranges of uninitialized capacity
// between the tail and the head.
func (b *Block) spareRanges() (a, c [2]int) {
	if b.IsFull() {
		return [2]int{0, 0}, [2]int{0, 0}
	}
	back := b.wrap(b.len)
	if back >= b.head {
		return [2]int{back, Size}, [2]int{0, b.head}
	}
	return [2]int{back, b.head}, [2]int{0, 0}
}

// SpareCapacityMut returns the two uninitialized byte ranges between the
// tail and head that a caller may fill before calling IncLen to mark the
// bytes initialized. Returns empty slices if the block is shared.
func (b *Block) SpareCapacityMut() (a, c []byte) {
	if b.IsEmpty() {
		b.Clear()
	}
	if b.IsShared() {
		return nil, nil
	}
	ra, rc := b.spareRanges()
	return b.store.buf[ra[0]:ra[1]], b.store.buf[rc[0]:rc[1]]
}

// IncLen marks n additional bytes, previously written into the slices
// returned by SpareCapacityMut, as initialized and readable.
func (b *Block) IncLen(n int) {
	b.len += n
}

// SetLen sets the tracked length directly.
func (b *Block) SetLen(n int) {
	b.len = n
}

// PushBack appends one byte to the tail, failing if the block is full or
// shared.
func (b *Block) PushBack(v byte) bool {
	if b.IsFull() || b.IsShared() {
		return false
	}
	b.store.buf[b.wrap(b.len)] = v
	b.len++
	return true
}

// PopFront removes and returns the first byte, or false if empty.
func (b *Block) PopFront() (byte, bool) {
	if b.IsEmpty() {
		return 0, false
	}
	v := b.store.buf[b.head]
	b.head = b.wrap(1)
	b.len--
	return v, true
}

// ExtendBack copies as much of values as fits into the remaining capacity,
// returning the number of bytes written. Returns -1 if the block is shared.
func (b *Block) ExtendBack(values []byte) int {
	if b.IsShared() {
		return -1
	}
	if b.IsEmpty() {
		n := len(values)
		if n > Size {
			n = Size
		}
		copy(b.store.buf[:n], values[:n])
		b.head = 0
		b.len = n
		return n
	}

	head := b.head
	written := 0

	backIdx := b.wrap(b.len)
	if backIdx > head {
		dst := b.store.buf[backIdx:Size]
		n := len(values)
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], values[:n])
		values = values[n:]
		b.len += n
		written = n
	}

	backIdx = b.wrap(b.len)
	if backIdx <= head {
		dst := b.store.buf[backIdx:head]
		n := len(values)
		if n > len(dst) {
			n = len(dst)
		}
		copy(dst[:n], values[:n])
		b.len += n
		written += n
	}

	return written
}

// DrainFront copies up to len(target) readable bytes into target, removing
// them from the deque, and returns the number of bytes copied.
func (b *Block) DrainFront(target []byte) int {
	n := len(target)
	if n > b.len {
		n = b.len
	}
	a, c := b.AsSlicesInRange(0, n)
	k := copy(target, a)
	k += copy(target[k:], c)
	b.RemoveCount(n)
	return n
}

// RemoveCount removes count bytes from the front of the deque.
func (b *Block) RemoveCount(count int) {
	if count > b.len {
		panic("block: remove count exceeds length")
	}
	b.head = b.wrap(count)
	b.len -= count
}

// Truncate shortens the deque to count bytes, dropping bytes from the back.
func (b *Block) Truncate(count int) {
	if count > b.len {
		panic("block: truncate count exceeds length")
	}
	b.len = count
}

// Shift rearranges the backing storage so the readable bytes occupy one
// contiguous range starting at some offset, returning that range, or false
// if the block is shared. It picks the cheapest of four strategies based on
// how much free space and how large each wrapped half is.
func (b *Block) Shift(ctx context.Context) ([]byte, bool) {
	if b.IsShared() {
		return nil, false
	}
	if b.IsContiguous() {
		return b.store.buf[b.head : b.head+b.len], true
	}

	head, length := b.head, b.len
	free := Size - length
	headLen := Size - head
	tailLen := length - headLen

	buf := &b.store.buf
	switch {
	case free >= headLen:
		log(ctx).Debug("shifting block: room for head half", "headLen", headLen, "tailLen", tailLen)
		copy(buf[headLen:headLen+tailLen], buf[:tailLen])
		copy(buf[:headLen], buf[head:head+headLen])
		b.head = 0
	case free >= tailLen:
		log(ctx).Debug("shifting block: room for tail half", "headLen", headLen, "tailLen", tailLen)
		copy(buf[tailLen:tailLen+headLen], buf[head:head+headLen])
		copy(buf[tailLen+headLen:tailLen+headLen+tailLen], buf[:tailLen])
		b.head = tailLen
	case headLen > tailLen:
		log(ctx).Debug("shifting block: rotating left", "headLen", headLen, "tailLen", tailLen, "free", free)
		if free != 0 {
			copy(buf[free:free+tailLen], buf[:tailLen])
		}
		rotateLeft(buf[free:], tailLen)
		b.head = free
	default:
		log(ctx).Debug("shifting block: rotating right", "headLen", headLen, "tailLen", tailLen, "free", free)
		if free != 0 {
			copy(buf[tailLen:tailLen+headLen], buf[head:head+headLen])
		}
		rotateRight(buf[:length], headLen)
		b.head = 0
	}

	return b.store.buf[b.head : b.head+b.len], true
}

func rotateLeft(s []byte, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	reverse(s[:k])
	reverse(s[k:])
	reverse(s)
}

func rotateRight(s []byte, k int) {
	if len(s) == 0 {
		return
	}
	rotateLeft(s, len(s)-k%len(s))
}

func reverse(s []byte) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

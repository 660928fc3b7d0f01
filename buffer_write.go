package orio

import (
	"context"
	"encoding/binary"

	"github.com/NightEule5/orio-sub000/internal/segment"
)

// WriteSlice appends all of src, claiming segments from the pool as
// needed, and returns the number of bytes written (always len(src) unless
// AllocationNever runs out of pool capacity, in which case it returns an
// error alongside the partial count already written).
func (b *Buffer) WriteSlice(ctx context.Context, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	if err := b.Reserve(ctx, len(src)); err != nil {
		return 0, err
	}
	written := 0
	for written < len(src) {
		tail := b.ring.Back()
		if tail == nil {
			segs, err := b.claim(ctx, len(src)-written)
			if err != nil {
				return written, err
			}
			for _, s := range segs {
				b.ring.PushBack(ctx, s)
			}
			continue
		}
		startLen := tail.Len()
		n, _ := tail.Write(src[written:])
		b.ring.SyncBack(startLen)
		if n == 0 {
			break
		}
		written += n
	}
	b.checkCompact(ctx)
	return written, nil
}

// WriteByte appends a single byte, claiming a segment if necessary.
func (b *Buffer) WriteByte(ctx context.Context, v byte) error {
	_, err := b.WriteSlice(ctx, []byte{v})
	return err
}

// WriteBorrowed appends src as a zero-copy borrow if its length is at
// least BorrowThreshold; otherwise it is copied via WriteSlice. The caller
// must not mutate src for as long as the buffer (or anything it later
// shares bytes with) is alive when the borrow path is taken.
func (b *Buffer) WriteBorrowed(ctx context.Context, src []byte) (int, error) {
	if len(src) == 0 {
		return 0, nil
	}
	if b.opts.BorrowThreshold != Unbounded && len(src) >= b.opts.BorrowThreshold {
		b.ring.PushBack(ctx, segment.FromSlice(src))
		return len(src), nil
	}
	return b.WriteSlice(ctx, src)
}

// WriteSliceAt overwrites count(src) bytes starting at logical position
// pos, in place. It fails with bufferr.ErrOutOfBounds if pos+len(src) >
// Count(), and returns a wrapped error if any touched segment is shared
// (the caller must Fork or otherwise arrange exclusive ownership first).
func (b *Buffer) WriteSliceAt(pos int, src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if pos < 0 || pos+len(src) > b.Count() {
		return outOfBounds()
	}
	remaining := pos
	written := 0
	for i := 0; i < b.ring.Len() && written < len(src); i++ {
		seg := b.ring.ReadableAt(i)
		l := seg.Len()
		if remaining >= l {
			remaining -= l
			continue
		}
		if seg.IsShared() {
			return sharedSegment()
		}
		a, c, ok := seg.AsMutSlices()
		if !ok {
			return sharedSegment()
		}
		off := remaining
		remaining = 0
		if off < len(a) {
			n := copy(a[off:], src[written:])
			written += n
			off = 0
			if written >= len(src) {
				break
			}
		} else {
			off -= len(a)
		}
		if off < len(c) {
			n := copy(c[off:], src[written:])
			written += n
		}
	}
	return nil
}

// WriteUint8At overwrites the byte at pos with v, in place.
func (b *Buffer) WriteUint8At(pos int, v uint8) error {
	return b.WriteSliceAt(pos, []byte{v})
}

// WriteInt8At overwrites the byte at pos with v, in place.
func (b *Buffer) WriteInt8At(pos int, v int8) error {
	return b.WriteUint8At(pos, uint8(v))
}

// WriteUint16AtBE overwrites the two bytes at pos with v, big-endian.
func (b *Buffer) WriteUint16AtBE(pos int, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteUint16AtLE overwrites the two bytes at pos with v, little-endian.
func (b *Buffer) WriteUint16AtLE(pos int, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteInt16AtBE overwrites the two bytes at pos with v, big-endian.
func (b *Buffer) WriteInt16AtBE(pos int, v int16) error {
	return b.WriteUint16AtBE(pos, uint16(v))
}

// WriteInt16AtLE overwrites the two bytes at pos with v, little-endian.
func (b *Buffer) WriteInt16AtLE(pos int, v int16) error {
	return b.WriteUint16AtLE(pos, uint16(v))
}

// WriteUint32AtBE overwrites the four bytes at pos with v, big-endian.
func (b *Buffer) WriteUint32AtBE(pos int, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteUint32AtLE overwrites the four bytes at pos with v, little-endian.
func (b *Buffer) WriteUint32AtLE(pos int, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteInt32AtBE overwrites the four bytes at pos with v, big-endian.
func (b *Buffer) WriteInt32AtBE(pos int, v int32) error {
	return b.WriteUint32AtBE(pos, uint32(v))
}

// WriteInt32AtLE overwrites the four bytes at pos with v, little-endian.
func (b *Buffer) WriteInt32AtLE(pos int, v int32) error {
	return b.WriteUint32AtLE(pos, uint32(v))
}

// WriteUint64AtBE overwrites the eight bytes at pos with v, big-endian.
func (b *Buffer) WriteUint64AtBE(pos int, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteUint64AtLE overwrites the eight bytes at pos with v, little-endian.
func (b *Buffer) WriteUint64AtLE(pos int, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return b.WriteSliceAt(pos, buf[:])
}

// WriteInt64AtBE overwrites the eight bytes at pos with v, big-endian.
func (b *Buffer) WriteInt64AtBE(pos int, v int64) error {
	return b.WriteUint64AtBE(pos, uint64(v))
}

// WriteInt64AtLE overwrites the eight bytes at pos with v, little-endian.
func (b *Buffer) WriteInt64AtLE(pos int, v int64) error {
	return b.WriteUint64AtLE(pos, uint64(v))
}

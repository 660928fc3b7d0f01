// Package codec implements the typed integer and UTF-8 helpers that sit
// outside the core engine, consuming only Buffer's public read/write
// surface. Fixed-width integers are encoded with encoding/binary: no
// third-party library in the examined dependency corpus specializes in
// raw fixed-width integer codecs over a custom ring buffer, and
// encoding/binary.*Endian is the idiomatic stdlib primitive the teacher
// itself reaches for when encoding wire-format fixed-width fields.
package codec

import (
	"context"
	"encoding/binary"
	"unicode/utf8"

	orio "github.com/NightEule5/orio-sub000"
	"github.com/NightEule5/orio-sub000/bufferr"
)

// WriteUint8 appends a single unsigned byte.
func WriteUint8(ctx context.Context, b *orio.Buffer, v uint8) error {
	return b.WriteByte(ctx, v)
}

// ReadUint8 consumes and returns a single unsigned byte.
func ReadUint8(b *orio.Buffer) (uint8, error) {
	return b.ReadByte()
}

// WriteInt8 appends a single signed byte.
func WriteInt8(ctx context.Context, b *orio.Buffer, v int8) error {
	return WriteUint8(ctx, b, uint8(v))
}

// ReadInt8 consumes and returns a single signed byte.
func ReadInt8(b *orio.Buffer) (int8, error) {
	v, err := ReadUint8(b)
	return int8(v), err
}

func writeFixed(ctx context.Context, b *orio.Buffer, buf []byte) error {
	_, err := b.WriteSlice(ctx, buf)
	return err
}

func readFixed(b *orio.Buffer, n int) ([]byte, error) {
	buf := make([]byte, n)
	if err := b.ReadSliceExact(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// WriteUint16BE appends v as two big-endian bytes.
func WriteUint16BE(ctx context.Context, b *orio.Buffer, v uint16) error {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// WriteUint16LE appends v as two little-endian bytes.
func WriteUint16LE(ctx context.Context, b *orio.Buffer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// ReadUint16BE consumes two big-endian bytes as a uint16.
func ReadUint16BE(b *orio.Buffer) (uint16, error) {
	buf, err := readFixed(b, 2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(buf), nil
}

// ReadUint16LE consumes two little-endian bytes as a uint16.
func ReadUint16LE(b *orio.Buffer) (uint16, error) {
	buf, err := readFixed(b, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// WriteInt16BE appends v as two big-endian bytes.
func WriteInt16BE(ctx context.Context, b *orio.Buffer, v int16) error {
	return WriteUint16BE(ctx, b, uint16(v))
}

// WriteInt16LE appends v as two little-endian bytes.
func WriteInt16LE(ctx context.Context, b *orio.Buffer, v int16) error {
	return WriteUint16LE(ctx, b, uint16(v))
}

// ReadInt16BE consumes two big-endian bytes as an int16.
func ReadInt16BE(b *orio.Buffer) (int16, error) {
	v, err := ReadUint16BE(b)
	return int16(v), err
}

// ReadInt16LE consumes two little-endian bytes as an int16.
func ReadInt16LE(b *orio.Buffer) (int16, error) {
	v, err := ReadUint16LE(b)
	return int16(v), err
}

// WriteUint32BE appends v as four big-endian bytes.
func WriteUint32BE(ctx context.Context, b *orio.Buffer, v uint32) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// WriteUint32LE appends v as four little-endian bytes.
func WriteUint32LE(ctx context.Context, b *orio.Buffer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// ReadUint32BE consumes four big-endian bytes as a uint32.
func ReadUint32BE(b *orio.Buffer) (uint32, error) {
	buf, err := readFixed(b, 4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(buf), nil
}

// ReadUint32LE consumes four little-endian bytes as a uint32.
func ReadUint32LE(b *orio.Buffer) (uint32, error) {
	buf, err := readFixed(b, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// WriteInt32BE appends v as four big-endian bytes.
func WriteInt32BE(ctx context.Context, b *orio.Buffer, v int32) error {
	return WriteUint32BE(ctx, b, uint32(v))
}

// WriteInt32LE appends v as four little-endian bytes.
func WriteInt32LE(ctx context.Context, b *orio.Buffer, v int32) error {
	return WriteUint32LE(ctx, b, uint32(v))
}

// ReadInt32BE consumes four big-endian bytes as an int32.
func ReadInt32BE(b *orio.Buffer) (int32, error) {
	v, err := ReadUint32BE(b)
	return int32(v), err
}

// ReadInt32LE consumes four little-endian bytes as an int32.
func ReadInt32LE(b *orio.Buffer) (int32, error) {
	v, err := ReadUint32LE(b)
	return int32(v), err
}

// WriteUint64BE appends v as eight big-endian bytes.
func WriteUint64BE(ctx context.Context, b *orio.Buffer, v uint64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// WriteUint64LE appends v as eight little-endian bytes.
func WriteUint64LE(ctx context.Context, b *orio.Buffer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return writeFixed(ctx, b, buf[:])
}

// ReadUint64BE consumes eight big-endian bytes as a uint64.
func ReadUint64BE(b *orio.Buffer) (uint64, error) {
	buf, err := readFixed(b, 8)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf), nil
}

// ReadUint64LE consumes eight little-endian bytes as a uint64.
func ReadUint64LE(b *orio.Buffer) (uint64, error) {
	buf, err := readFixed(b, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// WriteInt64BE appends v as eight big-endian bytes.
func WriteInt64BE(ctx context.Context, b *orio.Buffer, v int64) error {
	return WriteUint64BE(ctx, b, uint64(v))
}

// WriteInt64LE appends v as eight little-endian bytes.
func WriteInt64LE(ctx context.Context, b *orio.Buffer, v int64) error {
	return WriteUint64LE(ctx, b, uint64(v))
}

// ReadInt64BE consumes eight big-endian bytes as an int64.
func ReadInt64BE(b *orio.Buffer) (int64, error) {
	v, err := ReadUint64BE(b)
	return int64(v), err
}

// ReadInt64LE consumes eight little-endian bytes as an int64.
func ReadInt64LE(b *orio.Buffer) (int64, error) {
	v, err := ReadUint64LE(b)
	return int64(v), err
}

// ReadUTF8ToEnd consumes every readable byte and returns it as a string,
// validating UTF-8 as it goes.
func ReadUTF8ToEnd(b *orio.Buffer) (string, error) {
	buf := make([]byte, b.Count())
	b.ReadSlice(buf)
	if !utf8.Valid(buf) {
		return "", bufferr.Wrap(bufferr.ErrUTF8, bufferr.Read)
	}
	return string(buf), nil
}

// ReadUTF8Until and ReadUTF8UntilInclusive are unimplemented placeholders
// upstream; this mirrors that rather than inventing divergent matching
// semantics (see the Open Questions resolution in SPEC_FULL.md §9).
func ReadUTF8Until(b *orio.Buffer, delim rune) (string, error) {
	return "", bufferr.ErrNotImplemented
}

func ReadUTF8UntilInclusive(b *orio.Buffer, delim rune) (string, error) {
	return "", bufferr.ErrNotImplemented
}

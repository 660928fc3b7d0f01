package streams

import (
	"context"
	"hash"

	"github.com/zeebo/blake3"

	orio "github.com/NightEule5/orio-sub000"
)

// HashingSink wraps an inner Sink, updating a running digest with every
// byte drained through it, satisfying the core's "hash-digest update
// interface" collaborator contract (§6). The digest backend is BLAKE3,
// matching the teacher's own choice for content-addressed hashing.
type HashingSink struct {
	inner Sink
	h     hash.Hash
}

// NewHashingSink wraps inner with a fresh BLAKE3 digest.
func NewHashingSink(inner Sink) *HashingSink {
	return &HashingSink{inner: inner, h: blake3.New()}
}

// Drain drains up to n bytes from src through the inner sink, updating the
// digest with exactly the bytes that were actually written downstream.
func (s *HashingSink) Drain(ctx context.Context, src *orio.Buffer, n int) (int, error) {
	if n > src.Count() {
		n = src.Count()
	}
	buf := make([]byte, n)
	read := src.ReadSlice(buf)
	staging := orio.FromSlice(buf[:read])
	written, err := s.inner.Drain(ctx, staging, read)
	if written > 0 {
		s.h.Write(buf[:written])
	}
	return written, err
}

// DrainAll drains every readable byte of src through the inner sink.
func (s *HashingSink) DrainAll(ctx context.Context, src *orio.Buffer) (int, error) {
	return s.Drain(ctx, src, src.Count())
}

// Flush flushes the inner sink.
func (s *HashingSink) Flush() error { return s.inner.Flush() }

// Sum returns the BLAKE3 digest of every byte drained so far.
func (s *HashingSink) Sum() []byte { return s.h.Sum(nil) }

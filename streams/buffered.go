package streams

import (
	"context"

	orio "github.com/NightEule5/orio-sub000"
	"github.com/NightEule5/orio-sub000/bufferr"
)

// BufferedSource pairs a Buffer with an upstream Source, pulling more data
// on demand so callers can Require a minimum number of buffered bytes
// before reading. Require synthesizes EndOfStream when the upstream
// Source ends before enough bytes are buffered.
type BufferedSource struct {
	Buf    *orio.Buffer
	Source Source
}

// NewBufferedSource returns a BufferedSource reading from source into a
// fresh default Buffer.
func NewBufferedSource(source Source) *BufferedSource {
	return &BufferedSource{Buf: orio.Lean(), Source: source}
}

// Request attempts to ensure at least n bytes are buffered, pulling from
// the upstream Source as needed, and reports whether it succeeded.
func (s *BufferedSource) Request(ctx context.Context, n int) bool {
	for s.Buf.Count() < n {
		if s.Source.IsEOS() {
			return false
		}
		read, err := s.Source.Fill(ctx, s.Buf, n-s.Buf.Count())
		if err != nil || read == 0 {
			return s.Buf.Count() >= n
		}
	}
	return true
}

// Require behaves like Request but returns bufferr.ErrEndOfStream instead
// of a boolean on failure.
func (s *BufferedSource) Require(ctx context.Context, n int) error {
	if s.Request(ctx, n) {
		return nil
	}
	return bufferr.Wrap(bufferr.ErrEndOfStream, bufferr.Fill)
}

// ReadSliceExact requires len(dst) bytes to be available, then reads them.
func (s *BufferedSource) ReadSliceExact(ctx context.Context, dst []byte) error {
	if err := s.Require(ctx, len(dst)); err != nil {
		return err
	}
	s.Buf.ReadSlice(dst)
	return nil
}

// BufferedSink pairs a Buffer with a downstream Sink, forwarding buffered
// bytes to it on demand.
type BufferedSink struct {
	Buf  *orio.Buffer
	Sink Sink
}

// NewBufferedSink returns a BufferedSink staging writes in a fresh default
// Buffer before forwarding them to sink.
func NewBufferedSink(sink Sink) *BufferedSink {
	return &BufferedSink{Buf: orio.Lean(), Sink: sink}
}

// DrainBuffered forwards up to n currently-buffered bytes to the
// downstream sink.
func (s *BufferedSink) DrainBuffered(ctx context.Context, n int) (int, error) {
	return s.Sink.Drain(ctx, s.Buf, n)
}

// DrainAllBuffered forwards every currently-buffered byte to the
// downstream sink.
func (s *BufferedSink) DrainAllBuffered(ctx context.Context) (int, error) {
	return s.Sink.DrainAll(ctx, s.Buf)
}

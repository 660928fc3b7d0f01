package streams

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	orio "github.com/NightEule5/orio-sub000"
)

func TestCompressDecompressRoundTrip(t *testing.T) {
	ctx := context.Background()

	var compressed bytes.Buffer
	cs, err := NewCompressingSink(NewWriter(&compressed))
	require.NoError(t, err)

	src := orio.Lean()
	payload := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 64)
	src.WriteSlice(ctx, payload)

	_, err = cs.DrainAll(ctx, src)
	require.NoError(t, err)
	require.NoError(t, cs.Flush())
	require.NotZero(t, compressed.Len())

	ds, err := NewDecompressingSource(NewReader(bytes.NewReader(compressed.Bytes())))
	require.NoError(t, err)

	dst := orio.Lean()
	_, err = ds.FillAll(ctx, dst)
	require.NoError(t, err)

	out := make([]byte, len(payload))
	require.NoError(t, dst.ReadSliceExact(out))
	require.Equal(t, payload, out)
}
